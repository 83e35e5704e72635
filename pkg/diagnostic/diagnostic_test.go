package diagnostic_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/amps/pkg/diagnostic"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

func sampleList() diagnostic.List {
	var l diagnostic.List
	l.Add(diagnostic.New(diagnostic.Semantic, 2, "invalid identifier %s", "x"))
	l.Add(diagnostic.New(diagnostic.Arithmetic, 3, "%d / %d division by 0", 10, 0))
	l.Add(diagnostic.New(diagnostic.Branch, 0, "mismatch endif"))
	return l
}

func TestListBasics(t *testing.T) {
	l := sampleList()
	assert.Equal(t, []string{"invalid identifier x", "10 / 0 division by 0", "mismatch endif"}, l.Messages())
	assert.Len(t, l.Filter(diagnostic.Arithmetic), 1)
	assert.Empty(t, l.Filter(diagnostic.Syntax))
	assert.Equal(t, "line 2: invalid identifier x", l[0].Detail())
	assert.Equal(t, "mismatch endif", l[2].Detail())
	assert.Equal(t, "mismatch endif", l[2].String())
}

func TestListErr(t *testing.T) {
	var empty diagnostic.List
	require.NoError(t, empty.Err())

	err := sampleList().Err()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
	assert.Contains(t, err.Error(), "line 3: 10 / 0 division by 0")
}

func TestFormatters(t *testing.T) {
	l := sampleList()

	f, err := diagnostic.NewFormatter("text", false)
	require.NoError(t, err)
	out, err := f.Format("page.amps", l)
	require.NoError(t, err)
	assert.Equal(t,
		"page.amps:2: semantic: invalid identifier x\n"+
			"page.amps:3: arithmetic: 10 / 0 division by 0\n"+
			"page.amps: branch: mismatch endif\n",
		string(out))

	f, err = diagnostic.NewFormatter("json", false)
	require.NoError(t, err)
	out, err = f.Format("page.amps", l)
	require.NoError(t, err)
	var decoded struct {
		Template    string                  `json:"template"`
		Diagnostics []diagnostic.Diagnostic `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "page.amps", decoded.Template)
	assert.Equal(t, []diagnostic.Diagnostic(l), decoded.Diagnostics)

	f, err = diagnostic.NewFormatter("yaml", false)
	require.NoError(t, err)
	out, err = f.Format("page.amps", nil)
	require.NoError(t, err)
	var y map[string]any
	require.NoError(t, yaml.Unmarshal(out, &y))
	assert.Equal(t, "page.amps", y["template"])
	assert.Empty(t, y["diagnostics"])

	_, err = diagnostic.NewFormatter("xml", false)
	require.Error(t, err)
}
