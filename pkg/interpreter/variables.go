package interpreter

import (
	"fmt"
	"strconv"

	"github.com/rhino1998/configlang/pkg/kinds"
)

// Value is an integer or a string. The zero Value has kind Unknown.
type Value struct {
	kind kinds.Kind
	i    int64
	s    string
}

func IntValue(n int64) Value {
	return Value{kind: kinds.Int, i: n}
}

func StringValue(s string) Value {
	return Value{kind: kinds.String, s: s}
}

func (v Value) Kind() kinds.Kind {
	return v.kind
}

func (v Value) AsInt() (int64, bool) {
	return v.i, v.kind == kinds.Int
}

func (v Value) AsString() (string, bool) {
	return v.s, v.kind == kinds.String
}

func (v Value) String() string {
	switch v.kind {
	case kinds.Int:
		return strconv.FormatInt(v.i, 10)
	case kinds.String:
		return strconv.Quote(v.s)
	default:
		return "<invalid>"
	}
}

type Variable struct {
	name      string
	value     Value
	immutable bool
}

func (v *Variable) Name() string {
	return v.name
}

func (v *Variable) Value() Value {
	return v.value
}

func (v *Variable) Kind() kinds.Kind {
	return v.value.kind
}

func (v *Variable) Immutable() bool {
	return v.immutable
}

func (v *Variable) Set(val Value) error {
	if v.immutable {
		return fmt.Errorf("%w: %q", ErrConstViolation, v.name)
	}

	v.value = val

	return nil
}
