package operators

import (
	"fmt"
)

type Operator string

const (
	Equal              Operator = "=="
	NotEqual           Operator = "!="
	LessThan           Operator = "<"
	GreaterThan        Operator = ">"
	LessThanOrEqual    Operator = "<="
	GreaterThanOrEqual Operator = ">="
)

func (o Operator) IsComparison() bool {
	switch o {
	case Equal,
		NotEqual,
		LessThan,
		GreaterThan,
		LessThanOrEqual,
		GreaterThanOrEqual:
		return true
	default:
		return false
	}
}

// Compare applies a comparison operator to two integers.
func (o Operator) Compare(left, right int64) (bool, error) {
	switch o {
	case Equal:
		return left == right, nil
	case NotEqual:
		return left != right, nil
	case LessThan:
		return left < right, nil
	case GreaterThan:
		return left > right, nil
	case LessThanOrEqual:
		return left <= right, nil
	case GreaterThanOrEqual:
		return left >= right, nil
	default:
		return false, fmt.Errorf("operator %q is not a comparison operator", o)
	}
}
