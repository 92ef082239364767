package configlang

import (
	"errors"
	"fmt"

	"github.com/rhino1998/configlang/pkg/interpreter"
	"github.com/rhino1998/configlang/pkg/parser"
)

var ErrNullArgument = errors.New("null argument")

// FileError reports a failure to read or write a file. Parse failures in a
// loaded file are reported as parser.PositionError instead.
type FileError struct {
	File string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

type ErrorSet struct {
	Errs []error
}

func newErrorSet() *ErrorSet {
	return new(ErrorSet)
}

func (e *ErrorSet) Add(err error) {
	if err == nil {
		return
	}

	var subErrs *ErrorSet
	if errors.As(err, &subErrs) {
		e.Errs = append(e.Errs, subErrs.Unwrap()...)
	} else {
		e.Errs = append(e.Errs, err)
	}
}

func (e *ErrorSet) Len() int {
	return len(e.Errs)
}

func (e *ErrorSet) Error() string {
	return errors.Join(e.Errs...).Error()
}

func (e *ErrorSet) Unwrap() []error {
	return e.Errs
}

// Err returns nil when no errors were added.
func (e *ErrorSet) Err() error {
	if len(e.Errs) == 0 {
		return nil
	}

	return e
}

// Code mirrors the numeric error codes of the C library.
type Code int

const (
	CodeOK               Code = 0
	CodeNullArgument     Code = -1
	CodeFileError        Code = -2
	CodeParseError       Code = -3
	CodeVariableNotFound Code = -4
	CodeConstViolation   Code = -5
	CodeCapacityExceeded Code = -6
	CodeTypeMismatch     Code = -7
	CodeUnknown          Code = -8
)

func (c Code) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeNullArgument:
		return "null argument"
	case CodeFileError:
		return "file error"
	case CodeParseError:
		return "parse error"
	case CodeVariableNotFound:
		return "variable not found"
	case CodeConstViolation:
		return "const violation"
	case CodeCapacityExceeded:
		return "capacity exceeded"
	case CodeTypeMismatch:
		return "type mismatch"
	default:
		return "unknown error"
	}
}

func CodeOf(err error) Code {
	var fileErr FileError

	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, ErrNullArgument):
		return CodeNullArgument
	case errors.As(err, &fileErr):
		return CodeFileError
	case errors.Is(err, parser.ErrSyntax):
		return CodeParseError
	case errors.Is(err, interpreter.ErrVariableNotFound):
		return CodeVariableNotFound
	case errors.Is(err, interpreter.ErrConstViolation):
		return CodeConstViolation
	case errors.Is(err, interpreter.ErrCapacityExceeded):
		return CodeCapacityExceeded
	case errors.Is(err, interpreter.ErrTypeMismatch):
		return CodeTypeMismatch
	default:
		return CodeUnknown
	}
}

// ErrorDescriptor is the last-error record kept by a ConfigLang instance.
type ErrorDescriptor struct {
	Code    Code
	Message string
	Line    int
}

var noError = ErrorDescriptor{Code: CodeOK, Message: "No error"}

func describe(err error) ErrorDescriptor {
	if err == nil {
		return noError
	}

	desc := ErrorDescriptor{
		Code:    CodeOf(err),
		Message: err.Error(),
	}

	var posErr parser.PositionError
	if errors.As(err, &posErr) {
		desc.Message = posErr.Err.Error()
		desc.Line = posErr.Line
	}

	return desc
}

func (d ErrorDescriptor) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("Line %d: %s", d.Line, d.Message)
	}

	return d.Message
}
