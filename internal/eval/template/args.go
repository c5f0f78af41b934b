package template

import (
	"math"

	"github.com/aescanero/dago-node-langjson/internal/value"
)

func kindName(v interface{}) string {
	return value.KindOf(v).String()
}

// String returns argument i as a string. Numbers and booleans are formatted.
func (c *Call) String(i int) (string, error) {
	switch v := c.Arg(i).(type) {
	case string:
		return v, nil
	case float64, bool:
		return value.ToString(v), nil
	default:
		return "", argError(c, i, "string", v)
	}
}

// StringOr returns argument i as a string, or def when it was not given
func (c *Call) StringOr(i int, def string) (string, error) {
	if c.Arg(i) == nil {
		return def, nil
	}
	return c.String(i)
}

// Number returns argument i as a number. Numeric strings are parsed.
func (c *Call) Number(i int) (float64, error) {
	v := c.Arg(i)
	if v == nil {
		return 0, argError(c, i, "number", v)
	}
	n, ok := value.ToNumber(v)
	if !ok {
		return 0, argError(c, i, "number", v)
	}
	return n, nil
}

// Int returns argument i as an int, truncating fractions
func (c *Call) Int(i int) (int, error) {
	n, err := c.Number(i)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, argError(c, i, "finite number", n)
	}
	if math.Abs(n) > maxSafeInteger {
		return 0, argError(c, i, "integer within ±2^53", n)
	}
	return int(n), nil
}

// maxSafeInteger is the largest magnitude a float64 holds exactly as an integer
const maxSafeInteger = 1 << 53

// Array returns argument i as an array
func (c *Call) Array(i int) ([]interface{}, error) {
	v, ok := c.Arg(i).([]interface{})
	if !ok {
		return nil, argError(c, i, "array", c.Arg(i))
	}
	return v, nil
}

// Object returns argument i as an object
func (c *Call) Object(i int) (map[string]interface{}, error) {
	v, ok := c.Arg(i).(map[string]interface{})
	if !ok {
		return nil, argError(c, i, "object", c.Arg(i))
	}
	return v, nil
}
