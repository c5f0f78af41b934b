package template

import (
	"errors"
	"fmt"
	"math"

	"github.com/aescanero/dago-node-langjson/internal/value"
)

// ErrDivisionByZero is returned by divide and modulo
var ErrDivisionByZero = errors.New("division by zero")

// helperAdd sums numbers; when either side is not numeric it concatenates
func helperAdd(c *Call) (interface{}, error) {
	a, okA := value.ToNumber(c.Arg(0))
	b, okB := value.ToNumber(c.Arg(1))
	if okA && okB {
		return a + b, nil
	}
	return joinable(c.Arg(0)) + joinable(c.Arg(1)), nil
}

// binaryMath builds a helper over two numeric arguments
func binaryMath(op func(a, b float64) (float64, error)) HelperFunc {
	return func(c *Call) (interface{}, error) {
		a, err := c.Number(0)
		if err != nil {
			return nil, err
		}
		b, err := c.Number(1)
		if err != nil {
			return nil, err
		}
		result, err := op(a, b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.Name, err)
		}
		return result, nil
	}
}

var (
	helperSubtract = binaryMath(func(a, b float64) (float64, error) { return a - b, nil })
	helperMultiply = binaryMath(func(a, b float64) (float64, error) { return a * b, nil })

	helperDivide = binaryMath(func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	})

	helperModulo = binaryMath(func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return math.Mod(a, b), nil
	})
)

// numbers collects numeric arguments, flattening arrays one level
func numbers(c *Call) ([]float64, error) {
	var out []float64
	for i, arg := range c.Args {
		items := []interface{}{arg}
		if arr, ok := arg.([]interface{}); ok {
			items = arr
		}
		for _, item := range items {
			n, ok := value.ToNumber(item)
			if !ok || item == nil {
				return nil, argError(c, i, "number", item)
			}
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return nil, argError(c, 0, "number", nil)
	}
	return out, nil
}

func helperMax(c *Call) (interface{}, error) {
	ns, err := numbers(c)
	if err != nil {
		return nil, err
	}
	result := ns[0]
	for _, n := range ns[1:] {
		result = math.Max(result, n)
	}
	return result, nil
}

func helperMin(c *Call) (interface{}, error) {
	ns, err := numbers(c)
	if err != nil {
		return nil, err
	}
	result := ns[0]
	for _, n := range ns[1:] {
		result = math.Min(result, n)
	}
	return result, nil
}

// unaryMath builds a helper over one numeric argument
func unaryMath(op func(float64) float64) HelperFunc {
	return func(c *Call) (interface{}, error) {
		n, err := c.Number(0)
		if err != nil {
			return nil, err
		}
		return op(n), nil
	}
}

var (
	// halves round up, -2.5 becomes -2
	helperRound = unaryMath(func(n float64) float64 { return math.Floor(n + 0.5) })
	helperFloor = unaryMath(math.Floor)
	helperCeil  = unaryMath(math.Ceil)
	helperAbs   = unaryMath(math.Abs)
)

// helperAnd is true when every argument is truthy, so also with none
func helperAnd(c *Call) (interface{}, error) {
	for _, arg := range c.Args {
		if !value.Truthy(arg) {
			return false, nil
		}
	}
	return true, nil
}

func helperOr(c *Call) (interface{}, error) {
	for _, arg := range c.Args {
		if value.Truthy(arg) {
			return true, nil
		}
	}
	return false, nil
}

func helperNot(c *Call) (interface{}, error) {
	return !value.Truthy(c.Arg(0)), nil
}
