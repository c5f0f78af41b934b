package template

import (
	"fmt"
	"sort"

	"github.com/aescanero/dago-node-langjson/internal/value"
)

// helperVar looks its argument up in the data. The argument arrives as the
// raw token, so quoted keys and bracket paths reach Lookup untouched.
func helperVar(c *Call) (interface{}, error) {
	if len(c.Args) == 0 {
		return nil, nil
	}
	v, _ := Lookup(c.Args[0], c.Data)
	return v, nil
}

// helperEach applies the inner template once per element, binding item and
// index. Objects are walked in key order and also bind key.
func helperEach(c *Call) (interface{}, error) {
	switch coll := c.Arg(0).(type) {
	case []interface{}:
		out := make([]interface{}, 0, len(coll))
		for i, item := range coll {
			applied, err := c.Apply(c.Inner, value.Extend(c.Data, map[string]interface{}{
				"item":  item,
				"index": float64(i),
			}))
			if err != nil {
				return nil, err
			}
			out = append(out, applied)
		}
		return out, nil

	case map[string]interface{}:
		keys := make([]string, 0, len(coll))
		for k := range coll {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := make([]interface{}, 0, len(coll))
		for i, k := range keys {
			applied, err := c.Apply(c.Inner, value.Extend(c.Data, map[string]interface{}{
				"item":  coll[k],
				"key":   k,
				"index": float64(i),
			}))
			if err != nil {
				return nil, err
			}
			out = append(out, applied)
		}
		return out, nil
	}

	return nil, argError(c, 0, "array", c.Arg(0))
}

// helperLoop applies the inner template n times, binding index
func helperLoop(c *Call) (interface{}, error) {
	n, err := c.Int(0)
	if err != nil {
		return nil, err
	}

	if n > MaxIterations {
		return nil, fmt.Errorf("%s: %w: %d exceeds %d", c.Name, ErrTooManyIterations, n, MaxIterations)
	}

	var out []interface{}
	for i := 0; i < n; i++ {
		if err := c.Context().Err(); err != nil {
			return nil, err
		}
		applied, err := c.Apply(c.Inner, value.Extend(c.Data, map[string]interface{}{
			"index": float64(i),
		}))
		if err != nil {
			return nil, err
		}
		out = append(out, applied)
	}
	if out == nil {
		out = []interface{}{}
	}
	return out, nil
}

// helperWith applies the inner template with an object's fields merged into
// the data. Other values are bound as this.
func helperWith(c *Call) (interface{}, error) {
	if c.Inner == nil {
		return c.Arg(0), nil
	}
	bindings, ok := c.Arg(0).(map[string]interface{})
	if !ok {
		bindings = map[string]interface{}{"this": c.Arg(0)}
	}
	return c.Apply(c.Inner, value.Extend(c.Data, bindings))
}

// helperIf picks between two values, or reports the condition as a bool when
// no values are given
func helperIf(c *Call) (interface{}, error) {
	cond := value.Truthy(c.Arg(0))
	if len(c.Args) < 2 {
		return cond, nil
	}
	if cond {
		return c.Arg(1), nil
	}
	return c.Arg(2), nil
}

func helperUnless(c *Call) (interface{}, error) {
	cond := !value.Truthy(c.Arg(0))
	if len(c.Args) < 2 {
		return cond, nil
	}
	if cond {
		return c.Arg(1), nil
	}
	return c.Arg(2), nil
}

func helperDefault(c *Call) (interface{}, error) {
	if value.Truthy(c.Arg(0)) {
		return c.Arg(0), nil
	}
	return c.Arg(1), nil
}

// helperCompare evaluates "a op b"
func helperCompare(c *Call) (interface{}, error) {
	if len(c.Args) != 3 {
		return nil, fmt.Errorf("compare: expected 3 arguments (a op b), got %d", len(c.Args))
	}
	op, _ := c.Args[1].(string)
	return compareOp(c.Name, op, c.Args[0], c.Args[2])
}

// comparison builds the two-argument eq/ne/gt/... helpers
func comparison(op string) HelperFunc {
	return func(c *Call) (interface{}, error) {
		return compareOp(c.Name, op, c.Arg(0), c.Arg(1))
	}
}

func compareOp(name, op string, a, b interface{}) (interface{}, error) {
	switch op {
	case "==", "===":
		return value.Equal(a, b), nil
	case "!=", "!==":
		return !value.Equal(a, b), nil
	}

	cmp, ok := value.Compare(a, b)
	switch op {
	case "<":
		return ok && cmp < 0, nil
	case "<=":
		return ok && cmp <= 0, nil
	case ">":
		return ok && cmp > 0, nil
	case ">=":
		return ok && cmp >= 0, nil
	}
	return nil, fmt.Errorf("%s: unknown operator %q", name, op)
}
