package parser

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax = errors.New("parse error")

	ErrUnterminatedMultiline = fmt.Errorf("%w: unterminated multiline literal", ErrSyntax)
	ErrUnterminatedString    = fmt.Errorf("%w: unterminated string literal", ErrSyntax)
	ErrUnexpectedToken       = fmt.Errorf("%w: unexpected token", ErrSyntax)
)

type Position struct {
	File string
	Line int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("line %d", p.Line)
	}

	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

func (p Position) WrapError(err error) error {
	if err == nil {
		return nil
	}

	var posErr PositionError
	if errors.As(err, &posErr) {
		return err
	}

	return PositionError{
		Position: p,
		Err:      err,
	}
}

type PositionError struct {
	Position
	Err error
}

func (e PositionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Position, e.Err)
}

func (e PositionError) Unwrap() error {
	return e.Err
}
