package template

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aescanero/dago-node-langjson/internal/value"
)

var bracketPattern = regexp.MustCompile(`\[(\d+)\]|\["(.*?)"\]|\['(.*?)'\]`)

// Lookup resolves a dot/bracket path against data.
//
// Non-string paths are already values and are returned unchanged. a[0],
// a["key"] and a['key'] are rewritten to a.0 and a.key, and each segment may
// be wrapped in one pair of matching quotes. ok is false when any segment is
// missing or an intermediate value is nil; the resolved value itself may be
// nil, false, 0 or "". data is never modified.
func Lookup(path interface{}, data interface{}) (interface{}, bool) {
	p, isString := path.(string)
	if !isString {
		return path, true
	}

	normalized := bracketPattern.ReplaceAllString(p, ".$1$2$3")
	normalized = strings.TrimPrefix(normalized, ".")

	current := value.Normalize(data)
	for _, segment := range strings.Split(normalized, ".") {
		if current == nil {
			return nil, false
		}
		next, found := child(current, unquote(segment))
		if !found {
			return nil, false
		}
		current = value.Normalize(next)
	}

	return current, true
}

// child reads one segment of a path
func child(current interface{}, segment string) (interface{}, bool) {
	switch c := current.(type) {
	case map[string]interface{}:
		v, ok := c[segment]
		return v, ok
	case []interface{}:
		if segment == "length" {
			return float64(len(c)), true
		}
		i, ok := index(segment, len(c))
		if !ok {
			return nil, false
		}
		return c[i], true
	case string:
		if segment == "length" {
			return float64(utf8.RuneCountInString(c)), true
		}
		runes := []rune(c)
		i, ok := index(segment, len(runes))
		if !ok {
			return nil, false
		}
		return string(runes[i]), true
	}
	return nil, false
}

// index parses a decimal array index within [0, n)
func index(segment string, n int) (int, bool) {
	if segment == "" || strings.TrimLeft(segment, "0123456789") != "" {
		return 0, false
	}
	i, err := strconv.Atoi(segment)
	if err != nil || i >= n {
		return 0, false
	}
	return i, true
}

// unquote strips one layer of matching single or double quotes
func unquote(s string) string {
	if isQuoted(s) {
		return s[1 : len(s)-1]
	}
	return s
}

// isQuoted reports whether s starts and ends with the same quote character
func isQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	q := s[0]
	return (q == '"' || q == '\'') && s[len(s)-1] == q
}
