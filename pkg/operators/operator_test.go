package operators_test

import (
	"testing"

	"github.com/rhino1998/configlang/pkg/operators"
	"github.com/stretchr/testify/require"
)

func TestOperator_Compare(t *testing.T) {
	r := require.New(t)

	cases := []struct {
		op          operators.Operator
		left, right int64
		want        bool
	}{
		{operators.GreaterThan, 10, 5, true},
		{operators.GreaterThan, 5, 5, false},
		{operators.LessThan, 10, 20, true},
		{operators.LessThan, -3, -3, false},
		{operators.GreaterThanOrEqual, 10, 10, true},
		{operators.GreaterThanOrEqual, 9, 10, false},
		{operators.LessThanOrEqual, 10, 10, true},
		{operators.LessThanOrEqual, 11, 10, false},
		{operators.Equal, 10, 10, true},
		{operators.Equal, 10, -10, false},
		{operators.NotEqual, 10, 5, true},
		{operators.NotEqual, 5, 5, false},
	}

	for _, c := range cases {
		got, err := c.op.Compare(c.left, c.right)
		r.NoError(err)
		r.Equal(c.want, got, "%d %s %d", c.left, c.op, c.right)
	}
}

func TestOperator_CompareInvalid(t *testing.T) {
	r := require.New(t)

	op := operators.Operator("=")
	r.False(op.IsComparison())

	_, err := op.Compare(1, 1)
	r.Error(err)
}
