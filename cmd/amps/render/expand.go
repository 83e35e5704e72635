package render

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// expand resolves every pattern to template paths. Plain paths are kept as
// they are; glob patterns (including **) are matched against fsys. The result
// keeps argument order, sorts each pattern's matches and drops duplicates.
func expand(fsys afero.Fs, patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string

	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, pattern := range patterns {
		if !isGlob(pattern) {
			add(pattern)
			continue
		}

		matches, err := glob(fsys, pattern)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, errors.Errorf("no templates match %q", pattern)
		}
		for _, m := range matches {
			add(m)
		}
	}

	return out, nil
}

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

func glob(fsys afero.Fs, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return nil, errors.Errorf("invalid pattern %q", pattern)
	}

	base, rel := doublestar.SplitPattern(filepath.ToSlash(pattern))

	// io/fs paths are unrooted, so match relative to the pattern's fixed prefix
	scoped := fsys
	if base != "." {
		scoped = afero.NewBasePathFs(fsys, base)
	}
	root := afero.NewIOFS(scoped)

	matches, err := doublestar.Glob(root, rel, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Errorf("expanding %q: %w", pattern, err)
	}

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, filepath.Join(base, filepath.FromSlash(m)))
	}
	sort.Strings(out)
	return out, nil
}
