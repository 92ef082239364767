package codec

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rhino1998/configlang/pkg/interpreter"
	"github.com/rhino1998/configlang/pkg/kinds"
	"github.com/rhino1998/configlang/pkg/parser"
)

const (
	multilineOpen  = "#%%%"
	multilineClose = "%%%#"
)

func marshalValue(val interpreter.Value) ([]byte, error) {
	switch val.Kind() {
	case kinds.Int:
		n, _ := val.AsInt()
		return []byte(strconv.FormatInt(n, 10)), nil
	case kinds.String:
		s, _ := val.AsString()
		if !strings.ContainsAny(s, "\n\"") {
			return []byte(`"` + s + `"`), nil
		}

		if strings.Contains(s, multilineClose) {
			return nil, fmt.Errorf("string contains both a multiline terminator and a newline or quote")
		}

		// The lexer drops one line break before the terminator, so a trailing
		// '\r' must sit directly against it to survive a reload.
		if strings.HasSuffix(s, "\r") {
			return []byte(multilineOpen + "\n" + s + multilineClose), nil
		}

		return []byte(multilineOpen + "\n" + s + "\n" + multilineClose), nil
	default:
		return nil, fmt.Errorf("unhandled kind %v", val.Kind())
	}
}

// MarshalVariable renders one variable as a set statement without the
// trailing newline.
func MarshalVariable(v *interpreter.Variable) ([]byte, error) {
	valBytes, err := marshalValue(v.Value())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal value for variable %q: %w", v.Name(), err)
	}

	var buf bytes.Buffer
	if v.Immutable() {
		_, _ = io.WriteString(&buf, string(parser.KeywordConst)+" ")
	}
	_, _ = io.WriteString(&buf, fmt.Sprintf("%s %s = %s", parser.KeywordSet, v.Name(), valBytes))

	return buf.Bytes(), nil
}

// Marshal writes every variable in the store as a set statement, one per
// line, in creation order. The output is valid program text.
func Marshal(w io.Writer, store *interpreter.Store) (int64, error) {
	var written int64
	for _, v := range store.Variables() {
		line, err := MarshalVariable(v)
		if err != nil {
			return written, err
		}

		n, err := w.Write(append(line, '\n'))
		written += int64(n)
		if err != nil {
			return written, err
		}
	}

	return written, nil
}

func MarshalString(store *interpreter.Store) (string, error) {
	var sb strings.Builder
	_, err := Marshal(&sb, store)
	if err != nil {
		return "", err
	}

	return sb.String(), nil
}
