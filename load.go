package amps

import (
	"os"
	"strings"

	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

var (
	ErrTemplateNotFound = errors.Base("template not found")
	ErrPermissionDenied = errors.Base("lack privilege to open template")
	ErrTemplateRead     = errors.Base("unexpected error reading template")
)

// LoadTemplateFile reads a template. Failures wrap ErrTemplateNotFound,
// ErrPermissionDenied or ErrTemplateRead.
func LoadTemplateFile(fsys afero.Fs, path string) (string, error) {
	path = strings.TrimSpace(path)

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		switch {
		case errors.Is(err, os.ErrNotExist):
			return "", errors.Errorf("%w: %q", ErrTemplateNotFound, path)
		case errors.Is(err, os.ErrPermission):
			return "", errors.Errorf("%w: %q", ErrPermissionDenied, path)
		default:
			return "", errors.Errorf("%w: %q: %s", ErrTemplateRead, path, err.Error())
		}
	}

	return string(data), nil
}
