package template

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/aescanero/dago-node-langjson/internal/value"
	"github.com/shopspring/decimal"
)

// maxDelay caps the delay helper
const maxDelay = time.Minute

func helperCurrentDate(c *Call) (interface{}, error) {
	return c.Now().UTC().Format("2006-01-02"), nil
}

func helperCurrentTime(c *Call) (interface{}, error) {
	return c.Now().Format("3:04:05 PM"), nil
}

// dateLayouts are the string forms formatDate accepts
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// dateTokens maps format tokens to Go layout elements; longer tokens first
var dateTokens = strings.NewReplacer(
	"YYYY", "2006",
	"YY", "06",
	"MM", "01",
	"DD", "02",
	"HH", "15",
	"hh", "03",
	"mm", "04",
	"ss", "05",
	"A", "PM",
)

// helperFormatDate formats a date string or a millisecond timestamp with
// YYYY MM DD HH hh mm ss A tokens, "YYYY-MM-DD" by default
func helperFormatDate(c *Call) (interface{}, error) {
	t, err := parseDate(c)
	if err != nil {
		return nil, err
	}
	format, err := c.StringOr(1, "YYYY-MM-DD")
	if err != nil {
		return nil, err
	}
	return t.Format(dateTokens.Replace(format)), nil
}

func parseDate(c *Call) (time.Time, error) {
	switch v := c.Arg(0).(type) {
	case nil:
		return c.Now(), nil
	case float64:
		return time.UnixMilli(int64(v)).UTC(), nil
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, nil
			}
		}
		if ms, ok := value.ParseNumber(v); ok {
			return time.UnixMilli(int64(ms)).UTC(), nil
		}
		return time.Time{}, fmt.Errorf("%s: cannot parse date %q", c.Name, v)
	}
	return time.Time{}, argError(c, 0, "date", c.Arg(0))
}

// helperRandomNumber returns an integer in [min, max]
func helperRandomNumber(c *Call) (interface{}, error) {
	lo, err := c.Int(0)
	if err != nil {
		return nil, err
	}
	hi, err := c.Int(1)
	if err != nil {
		return nil, err
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	span := hi - lo + 1
	if span <= 0 {
		return nil, fmt.Errorf("%s: range [%d, %d] is too wide", c.Name, lo, hi)
	}
	return float64(lo + c.IntN(span)), nil
}

func helperRandomElement(c *Call) (interface{}, error) {
	arr, err := c.Array(0)
	if err != nil {
		return nil, err
	}
	if len(arr) == 0 {
		return nil, nil
	}
	return arr[c.IntN(len(arr))], nil
}

// helperCurrency formats an amount with two decimals after a symbol, "$" by
// default
func helperCurrency(c *Call) (interface{}, error) {
	amount, err := c.Number(0)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, argError(c, 0, "finite number", amount)
	}
	symbol, err := c.StringOr(1, "$")
	if err != nil {
		return nil, err
	}
	return symbol + decimal.NewFromFloat(amount).StringFixed(2), nil
}

// helperPercent formats a ratio, 0.25 becomes "25.00%"
func helperPercent(c *Call) (interface{}, error) {
	ratio, err := c.Number(0)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return nil, argError(c, 0, "finite number", ratio)
	}
	pct := decimal.NewFromFloat(ratio).Mul(decimal.NewFromInt(100))
	return pct.StringFixed(2) + "%", nil
}

// helperJSONStringify encodes a value as JSON; a second argument sets the
// indent width
func helperJSONStringify(c *Call) (interface{}, error) {
	var (
		out []byte
		err error
	)
	if c.Arg(1) == nil {
		out, err = json.Marshal(c.Arg(0))
	} else {
		width, werr := c.Int(1)
		if werr != nil {
			return nil, werr
		}
		out, err = json.MarshalIndent(c.Arg(0), "", strings.Repeat(" ", max(width, 0)))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name, err)
	}
	return string(out), nil
}

func helperJSONParse(c *Call) (interface{}, error) {
	s, err := c.String(0)
	if err != nil {
		return nil, err
	}
	var v interface{}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name, err)
	}
	return v, nil
}

// helperDelay sleeps for the given milliseconds or until the context ends
func helperDelay(c *Call) (interface{}, error) {
	ms, err := c.Number(0)
	if err != nil {
		return nil, err
	}
	d := time.Duration(ms * float64(time.Millisecond))
	if d <= 0 {
		return nil, nil
	}
	d = min(d, maxDelay)

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil, nil
	case <-c.Context().Done():
		return nil, c.Context().Err()
	}
}

func helperNoop(*Call) (interface{}, error) {
	return nil, nil
}

func helperDeepEqual(c *Call) (interface{}, error) {
	return value.Equal(c.Arg(0), c.Arg(1)), nil
}
