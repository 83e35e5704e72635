// Package value holds the runtime values the evaluator computes with. A Value
// is exactly one of Number (int64), Text or Bool; there are no implicit
// conversions between them.
package value

import (
	"fmt"
	"strconv"
)

type Kind uint8

const (
	NumberKind Kind = iota
	TextKind
	BoolKind
)

func (k Kind) String() string {
	switch k {
	case NumberKind:
		return "number"
	case TextKind:
		return "text"
	case BoolKind:
		return "bool"
	}
	return "unknown"
}

type Value struct {
	kind Kind
	num  int64
	text string
	bit  bool
}

func Number(n int64) Value { return Value{kind: NumberKind, num: n} }

func Text(s string) Value { return Value{kind: TextKind, text: s} }

func Bool(b bool) Value { return Value{kind: BoolKind, bit: b} }

// Null is the placeholder substituted for a missing operand.
func Null() Value { return Text("<null>") }

func (v Value) Kind() Kind { return v.kind }

func (v Value) Number() (int64, bool) { return v.num, v.kind == NumberKind }

func (v Value) Text() (string, bool) { return v.text, v.kind == TextKind }

func (v Value) Bool() (bool, bool) { return v.bit, v.kind == BoolKind }

// String is the rendered form of the value: text verbatim, numbers in
// decimal, booleans as true or false.
func (v Value) String() string {
	switch v.kind {
	case NumberKind:
		return strconv.FormatInt(v.num, 10)
	case BoolKind:
		return strconv.FormatBool(v.bit)
	}
	return v.text
}

// Describe tags the value with its kind, e.g. number(3) or text(abc).
func (v Value) Describe() string {
	return fmt.Sprintf("%s(%s)", v.kind, v.String())
}

func (v Value) Equal(o Value) bool {
	return v == o
}
