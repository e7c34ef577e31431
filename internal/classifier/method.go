package classifier

import (
	"fmt"

	"gonum.org/v1/gonum/optimize"
)

var ErrUnknownMethod = fmt.Errorf("unknown optimization method")

type MethodType string

const (
	MethodTypeLBFGS           MethodType = "LBFGS"
	MethodTypeGradientDescent MethodType = "GRADIENT_DESCENT"
	MethodTypeNelderMead      MethodType = "NELDER_MEAD"
)

// MethodFor maps a method name onto a gonum optimizer.
func MethodFor(m MethodType) (optimize.Method, error) {
	switch m {
	case MethodTypeLBFGS:
		return &optimize.LBFGS{}, nil
	case MethodTypeGradientDescent:
		return &optimize.GradientDescent{}, nil
	case MethodTypeNelderMead:
		return &optimize.NelderMead{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, m)
	}
}
