package env

import (
	"bytes"
	"io"
	"math"
	"math/big"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Format is an environment file syntax.
type Format string

const (
	YAML Format = "yaml"
	HCL  Format = "hcl"
)

// FormatForPath picks the format from the file extension. JSON is read as
// YAML.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return YAML, nil
	case ".hcl":
		return HCL, nil
	}
	return "", errors.Errorf("unsupported environment file extension %q", filepath.Ext(path))
}

// LoadFile reads an environment file from fs.
func LoadFile(fs afero.Fs, path string) (Environment, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Errorf("reading environment file: %w", err)
	}

	return Parse(data, path, format)
}

// Parse decodes an environment. name is only used in messages.
func Parse(data []byte, name string, format Format) (Environment, error) {
	switch format {
	case YAML:
		return parseYAML(data)
	case HCL:
		return parseHCL(data, name)
	}
	return nil, errors.Errorf("unsupported environment format %q", format)
}

func parseYAML(data []byte) (Environment, error) {
	raw := map[string]any{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return FromMap(raw)
}

// FromMap converts plain Go values (as produced by YAML or JSON decoders)
// into an environment, reporting every unconvertible key.
func FromMap(raw map[string]any) (Environment, error) {
	out := make(Environment, len(raw))
	var result *multierror.Error

	for _, name := range sortedKeys(raw) {
		v, err := fromAny(raw[name])
		if err != nil {
			result = multierror.Append(result, errors.Errorf("%s: %w", name, err))
			continue
		}
		out[name] = v
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

func fromAny(raw any) (Value, error) {
	if n, ok := asInt(raw); ok {
		return Number(n), nil
	}

	switch v := raw.(type) {
	case string:
		return Text(v), nil
	case []any:
		if len(v) == 0 {
			return TextVector{}, nil
		}
		if nums, ok := allInts(v); ok {
			return NumberVector(nums), nil
		}
		strs := make([]string, 0, len(v))
		for i, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, errors.Errorf("element %d: vectors hold only integers or only strings, got %T", i, e)
			}
			strs = append(strs, s)
		}
		return TextVector(strs), nil
	case map[string]any:
		if len(v) == 0 {
			return TextMap{}, nil
		}
		nums := make(NumberMap, len(v))
		for k, e := range v {
			n, ok := asInt(e)
			if !ok {
				nums = nil
				break
			}
			nums[k] = n
		}
		if nums != nil {
			return nums, nil
		}
		strs := make(TextMap, len(v))
		for _, k := range sortedKeys(v) {
			s, ok := v[k].(string)
			if !ok {
				return nil, errors.Errorf("key %q: maps hold only integers or only strings, got %T", k, v[k])
			}
			strs[k] = s
		}
		return strs, nil
	}

	return nil, errors.Errorf("unsupported value of type %T", raw)
}

func asInt(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	}
	return 0, false
}

func allInts(vs []any) ([]int64, bool) {
	out := make([]int64, 0, len(vs))
	for _, e := range vs {
		n, ok := asInt(e)
		if !ok {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

func parseHCL(data []byte, name string) (Environment, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, name)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	names := make([]string, 0, len(attrs))
	for k := range attrs {
		names = append(names, k)
	}
	sort.Strings(names)

	out := make(Environment, len(attrs))
	var result *multierror.Error

	for _, k := range names {
		val, diags := attrs[k].Expr.Value(nil)
		if diags.HasErrors() {
			result = multierror.Append(result, errors.Errorf("%s: %s", k, diags.Error()))
			continue
		}
		v, err := fromCty(val)
		if err != nil {
			result = multierror.Append(result, errors.Errorf("%s: %w", k, err))
			continue
		}
		out[k] = v
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

func fromCty(val cty.Value) (Value, error) {
	if val.IsNull() || !val.IsWhollyKnown() {
		return nil, errors.Errorf("null or unknown value")
	}

	ty := val.Type()
	switch {
	case ty.Equals(cty.String):
		return Text(val.AsString()), nil
	case ty.Equals(cty.Number):
		n, err := ctyInt(val)
		if err != nil {
			return nil, err
		}
		return Number(n), nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		items := []any{}
		for it := val.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			plain, err := ctyScalar(ev)
			if err != nil {
				return nil, err
			}
			items = append(items, plain)
		}
		return fromAny(items)
	case ty.IsObjectType() || ty.IsMapType():
		items := map[string]any{}
		for it := val.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			plain, err := ctyScalar(ev)
			if err != nil {
				return nil, errors.Errorf("key %q: %w", k.AsString(), err)
			}
			items[k.AsString()] = plain
		}
		return fromAny(items)
	}

	return nil, errors.Errorf("unsupported value of type %s", ty.FriendlyName())
}

func ctyScalar(val cty.Value) (any, error) {
	if val.IsNull() {
		return nil, errors.Errorf("null element")
	}
	switch {
	case val.Type().Equals(cty.String):
		return val.AsString(), nil
	case val.Type().Equals(cty.Number):
		return ctyInt(val)
	}
	return nil, errors.Errorf("unsupported element of type %s", val.Type().FriendlyName())
}

func ctyInt(val cty.Value) (int64, error) {
	bf := val.AsBigFloat()
	if !bf.IsInt() {
		return 0, errors.Errorf("%s is not an integer", bf.Text('g', -1))
	}
	n, acc := bf.Int64()
	if acc != big.Exact {
		return 0, errors.Errorf("%s does not fit in 64 bits", bf.Text('g', -1))
	}
	return n, nil
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
