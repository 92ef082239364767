package codec_test

import (
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/rhino1998/configlang/pkg/codec"
	"github.com/rhino1998/configlang/pkg/interpreter"
	"github.com/rhino1998/configlang/pkg/parser"
	"github.com/stretchr/testify/require"
)

func TestMarshal(t *testing.T) {
	r := require.New(t)

	store := interpreter.NewStore(0)
	_, err := store.Define("max", interpreter.IntValue(100), true)
	r.NoError(err)
	_, err = store.Define("value", interpreter.IntValue(-42), false)
	r.NoError(err)
	_, err = store.Define("name", interpreter.StringValue("Test Config"), false)
	r.NoError(err)
	_, err = store.Define("data", interpreter.StringValue("line1\nline2"), true)
	r.NoError(err)
	_, err = store.Define("quoted", interpreter.StringValue(`say "hi"`), false)
	r.NoError(err)
	_, err = store.Define("empty", interpreter.StringValue(""), false)
	r.NoError(err)

	out, err := codec.MarshalString(store)
	r.NoError(err)
	r.Equal("const set max = 100\n"+
		"set value = -42\n"+
		"set name = \"Test Config\"\n"+
		"const set data = #%%%\nline1\nline2\n%%%#\n"+
		"set quoted = #%%%\nsay \"hi\"\n%%%#\n"+
		"set empty = \"\"\n", out)
}

func TestMarshal_Empty(t *testing.T) {
	r := require.New(t)

	out, err := codec.MarshalString(interpreter.NewStore(0))
	r.NoError(err)
	r.Equal("", out)
}

func TestMarshal_Unrepresentable(t *testing.T) {
	r := require.New(t)

	store := interpreter.NewStore(0)
	_, err := store.Define("bad", interpreter.StringValue("a\n%%%#"), false)
	r.NoError(err)

	_, err = codec.MarshalString(store)
	r.Error(err)
}

func TestMarshal_RoundTrip(t *testing.T) {
	r := require.New(t)

	src := "const set max = 100\n" +
		"set value = 42\n" +
		"set name = \"Test Config\"\n" +
		"set data = #%%%\n\nfirst\n  indented\n\n%%%#\n" +
		"set copy = name\n" +
		"set crlf = \"a\r\"\n"

	first := interpreter.NewStore(0)
	err := interpreter.Execute(slogt.New(t), first, parser.NewLexer("first", src, parser.DefaultLimits), interpreter.Options{})
	r.NoError(err)

	text, err := codec.MarshalString(first)
	r.NoError(err)

	second := interpreter.NewStore(0)
	err = interpreter.Execute(slogt.New(t), second, parser.NewLexer("second", text, parser.DefaultLimits), interpreter.Options{})
	r.NoError(err)

	r.Equal(first.Len(), second.Len())
	for _, want := range first.Variables() {
		got, ok := second.Lookup(want.Name())
		r.True(ok, "variable %q missing after round trip", want.Name())
		r.Equal(want.Value(), got.Value(), "variable %q", want.Name())
		r.Equal(want.Immutable(), got.Immutable(), "variable %q", want.Name())
	}

	again, err := codec.MarshalString(second)
	r.NoError(err)
	r.Equal(text, again)
}

func TestMarshal_TrailingCarriageReturn(t *testing.T) {
	r := require.New(t)

	first := interpreter.NewStore(0)
	_, err := first.Define("s", interpreter.StringValue("a\nb\r"), false)
	r.NoError(err)
	_, err = first.Define("crlf", interpreter.StringValue("a\r\n"), false)
	r.NoError(err)

	text, err := codec.MarshalString(first)
	r.NoError(err)
	r.Equal("set s = #%%%\na\nb\r%%%#\nset crlf = #%%%\na\r\n\n%%%#\n", text)

	second := interpreter.NewStore(0)
	err = interpreter.Execute(slogt.New(t), second, parser.NewLexer("", text, parser.DefaultLimits), interpreter.Options{})
	r.NoError(err)

	for _, want := range first.Variables() {
		got, ok := second.Lookup(want.Name())
		r.True(ok)
		r.Equal(want.Value(), got.Value(), "variable %q", want.Name())
	}
}
