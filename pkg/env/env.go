// Package env defines the read-only environment a template is rendered
// against and loads it from YAML or HCL files.
package env

import (
	"maps"
	"slices"
	"sort"
)

// Tag names the shape of an environment value.
type Tag uint8

const (
	NumberTag Tag = iota
	TextTag
	NumberVectorTag
	TextVectorTag
	NumberMapTag
	TextMapTag
)

func (t Tag) String() string {
	switch t {
	case NumberTag:
		return "Number"
	case TextTag:
		return "Text"
	case NumberVectorTag:
		return "NumberVector"
	case TextVectorTag:
		return "TextVector"
	case NumberMapTag:
		return "NumberMap"
	case TextMapTag:
		return "TextMap"
	}
	return "Unknown"
}

// Value is one of Number, Text, NumberVector, TextVector, NumberMap or
// TextMap.
type Value interface {
	Tag() Tag
	clone() Value
}

type (
	Number       int64
	Text         string
	NumberVector []int64
	TextVector   []string
	NumberMap    map[string]int64
	TextMap      map[string]string
)

func (Number) Tag() Tag       { return NumberTag }
func (Text) Tag() Tag         { return TextTag }
func (NumberVector) Tag() Tag { return NumberVectorTag }
func (TextVector) Tag() Tag   { return TextVectorTag }
func (NumberMap) Tag() Tag    { return NumberMapTag }
func (TextMap) Tag() Tag      { return TextMapTag }

func (v Number) clone() Value       { return v }
func (v Text) clone() Value         { return v }
func (v NumberVector) clone() Value { return NumberVector(slices.Clone(v)) }
func (v TextVector) clone() Value   { return TextVector(slices.Clone(v)) }
func (v NumberMap) clone() Value    { return NumberMap(maps.Clone(v)) }
func (v TextMap) clone() Value      { return TextMap(maps.Clone(v)) }

// Environment maps names to values. Renders never modify it.
type Environment map[string]Value

// Snapshot deep-copies the environment so a render is isolated from later
// mutation by the caller.
func (e Environment) Snapshot() Environment {
	out := make(Environment, len(e))
	for k, v := range e {
		if v == nil {
			continue
		}
		out[k] = v.clone()
	}
	return out
}

func (e Environment) Lookup(name string) (Value, bool) {
	v, ok := e[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Names returns the bound names in sorted order.
func (e Environment) Names() []string {
	out := make([]string, 0, len(e))
	for k := range e {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
