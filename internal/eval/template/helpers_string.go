package template

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aescanero/dago-node-langjson/internal/value"
	"github.com/stoewer/go-strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func helperUppercase(c *Call) (interface{}, error) {
	s, err := c.String(0)
	if err != nil {
		return nil, err
	}
	return strings.ToUpper(s), nil
}

func helperLowercase(c *Call) (interface{}, error) {
	s, err := c.String(0)
	if err != nil {
		return nil, err
	}
	return strings.ToLower(s), nil
}

func helperCapitalize(c *Call) (interface{}, error) {
	s, err := c.String(0)
	if err != nil {
		return nil, err
	}
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s, nil
	}
	return string(unicode.ToUpper(r)) + s[size:], nil
}

func helperTitleCase(c *Call) (interface{}, error) {
	s, err := c.String(0)
	if err != nil {
		return nil, err
	}
	return cases.Title(language.Und).String(s), nil
}

func helperTrim(c *Call) (interface{}, error) {
	s, err := c.String(0)
	if err != nil {
		return nil, err
	}
	return strings.TrimSpace(s), nil
}

// helperSubstring takes (str, start, length); a missing length runs to the end
func helperSubstring(c *Call) (interface{}, error) {
	s, err := c.String(0)
	if err != nil {
		return nil, err
	}
	start, err := c.Int(1)
	if err != nil {
		return nil, err
	}

	runes := []rune(s)
	end := len(runes)
	if c.Arg(2) != nil {
		length, err := c.Int(2)
		if err != nil {
			return nil, err
		}
		end = start + length
	}

	start = clamp(start, 0, len(runes))
	end = clamp(end, 0, len(runes))
	if start > end {
		start, end = end, start
	}
	return string(runes[start:end]), nil
}

func clamp(n, lo, hi int) int {
	return min(max(n, lo), hi)
}

func helperConcat(c *Call) (interface{}, error) {
	var b strings.Builder
	for _, arg := range c.Args {
		b.WriteString(joinable(arg))
	}
	return b.String(), nil
}

// helperReplace replaces every match of a regular expression; patterns that
// do not compile are replaced literally
func helperReplace(c *Call) (interface{}, error) {
	s, err := c.String(0)
	if err != nil {
		return nil, err
	}
	search, err := c.String(1)
	if err != nil {
		return nil, err
	}
	replacement, err := c.StringOr(2, "")
	if err != nil {
		return nil, err
	}

	re, compileErr := regexp.Compile(search)
	if compileErr != nil {
		return strings.ReplaceAll(s, search, replacement), nil
	}
	return re.ReplaceAllString(s, replacement), nil
}

func helperSplit(c *Call) (interface{}, error) {
	s, err := c.String(0)
	if err != nil {
		return nil, err
	}
	if c.Arg(1) == nil {
		return []interface{}{s}, nil
	}
	sep, err := c.String(1)
	if err != nil {
		return nil, err
	}

	parts := strings.Split(s, sep)
	out := make([]interface{}, len(parts))
	for i, p := range parts {
		out[i] = p
	}
	return out, nil
}

// helperJoin joins array elements, "," by default
func helperJoin(c *Call) (interface{}, error) {
	arr, err := c.Array(0)
	if err != nil {
		return nil, err
	}
	sep, err := c.StringOr(1, ",")
	if err != nil {
		return nil, err
	}

	parts := make([]string, len(arr))
	for i, v := range arr {
		parts[i] = joinable(v)
	}
	return strings.Join(parts, sep), nil
}

// joinable formats a value for joining; nil joins as nothing
func joinable(v interface{}) string {
	if v == nil {
		return ""
	}
	return value.ToString(v)
}

// helperContains checks a substring, or an element when given an array
func helperContains(c *Call) (interface{}, error) {
	if arr, ok := c.Arg(0).([]interface{}); ok {
		return includes(arr, c.Arg(1)), nil
	}
	s, err := c.String(0)
	if err != nil {
		return nil, err
	}
	sub, err := c.String(1)
	if err != nil {
		return nil, err
	}
	return strings.Contains(s, sub), nil
}

func helperLength(c *Call) (interface{}, error) {
	switch v := c.Arg(0).(type) {
	case string:
		return float64(utf8.RuneCountInString(v)), nil
	case []interface{}:
		return float64(len(v)), nil
	case map[string]interface{}:
		return float64(len(v)), nil
	}
	return nil, argError(c, 0, "string or array", c.Arg(0))
}

func helperStartsWith(c *Call) (interface{}, error) {
	s, err := c.String(0)
	if err != nil {
		return nil, err
	}
	prefix, err := c.String(1)
	if err != nil {
		return nil, err
	}
	return strings.HasPrefix(s, prefix), nil
}

func helperEndsWith(c *Call) (interface{}, error) {
	s, err := c.String(0)
	if err != nil {
		return nil, err
	}
	suffix, err := c.String(1)
	if err != nil {
		return nil, err
	}
	return strings.HasSuffix(s, suffix), nil
}

func helperReverseString(c *Call) (interface{}, error) {
	s, err := c.String(0)
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes), nil
}

// helperIsEmpty is true for falsy values and empty arrays or objects
func helperIsEmpty(c *Call) (interface{}, error) {
	switch v := c.Arg(0).(type) {
	case []interface{}:
		return len(v) == 0, nil
	case map[string]interface{}:
		return len(v) == 0, nil
	}
	return !value.Truthy(c.Arg(0)), nil
}

func helperRepeat(c *Call) (interface{}, error) {
	s, err := c.String(0)
	if err != nil {
		return nil, err
	}
	times, err := c.Int(1)
	if err != nil {
		return nil, err
	}
	if times < 0 {
		return nil, argError(c, 1, "non-negative count", float64(times))
	}
	if len(s) > 0 && times > MaxRepeatLength/len(s) {
		return nil, fmt.Errorf("%s: result longer than %d bytes", c.Name, MaxRepeatLength)
	}
	return strings.Repeat(s, times), nil
}

func helperSnakeToCamel(c *Call) (interface{}, error) {
	s, err := c.String(0)
	if err != nil {
		return nil, err
	}
	return strcase.LowerCamelCase(s), nil
}

func helperCamelToSnake(c *Call) (interface{}, error) {
	s, err := c.String(0)
	if err != nil {
		return nil, err
	}
	return strcase.SnakeCase(s), nil
}
