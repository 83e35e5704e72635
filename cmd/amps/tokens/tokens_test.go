package tokens

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/amps"
)

func TestTokensListing(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/t.amps", []byte("Hi {= name =}\n{% if n gt 1 %}"), 0o644))

	out := &bytes.Buffer{}
	h := &Handler{fs: fs, out: out}

	require.NoError(t, h.Run(context.Background(), "/t.amps"))

	want := "" +
		"1 TEXT    \"Hi \"\n" +
		"    PRINT(\"print\")\n" +
		"    STRING(\"Hi \")\n" +
		"1 ECHO    \"{= name =}\"\n" +
		"    PRINT(\"print\")\n" +
		"    IDENTIFIER(\"name\")\n" +
		"1 TEXT    \"\\n\"\n" +
		"    PRINT(\"print\")\n" +
		"    STRING(\"\\n\")\n" +
		"2 CODE    \"{% if n gt 1 %}\"\n" +
		"    IF(\"if\")\n" +
		"    IDENTIFIER(\"n\")\n" +
		"    GT(\"gt\")\n" +
		"    NUMBER(\"1\")\n"

	assert.Equal(t, want, out.String())
}

func TestTokensPretty(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/t.amps", []byte("{= 1 =}"), 0o644))

	out := &bytes.Buffer{}
	h := &Handler{fs: fs, out: out, pretty: true}

	require.NoError(t, h.Run(context.Background(), "/t.amps"))
	assert.Contains(t, out.String(), "NUMBER")
}

func TestTokensMissingFile(t *testing.T) {
	h := &Handler{fs: afero.NewMemMapFs(), out: &bytes.Buffer{}}

	err := h.Run(context.Background(), "/nope.amps")
	assert.ErrorIs(t, err, amps.ErrTemplateNotFound)
}
