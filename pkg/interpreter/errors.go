package interpreter

import "errors"

var (
	ErrVariableNotFound = errors.New("variable not found")
	ErrConstViolation   = errors.New("cannot modify const variable")
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrCapacityExceeded = errors.New("too many variables")
	ErrDuplicateName    = errors.New("variable already exists")
)
