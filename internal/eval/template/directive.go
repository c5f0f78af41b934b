package template

import (
	"regexp"
	"strings"

	"github.com/aescanero/dago-node-langjson/internal/value"
	"go.uber.org/zap"
)

// maxDirectivesPerString stops strings whose helpers keep emitting directives
const maxDirectivesPerString = 4096

// MaxIterations caps the elements loop builds in one call
const MaxIterations = 100000

// MaxRepeatLength caps the bytes repeat returns
const MaxRepeatLength = 1 << 20

// directivePattern matches {{#name args}}; args cannot contain '}'
var directivePattern = regexp.MustCompile(`\{\{#(\w+)\s*([^}]*)\}\}`)

// evaluate resolves every directive in s from left to right.
//
// When a helper returns an array or object that value replaces the whole
// string. Otherwise the result is spliced into the text and the text is
// scanned again. Once no directive is left, text that reads as the last
// helper's bool or number becomes that value again. A string holding only a
// nil result becomes nil; with surrounding text the nil reads as "null".
func (r *run) evaluate(s string, data interface{}, inner interface{}) (interface{}, error) {
	loc := directivePattern.FindStringSubmatchIndex(s)
	if loc == nil {
		return s, nil
	}

	var last interface{}
	for n := 0; loc != nil; n++ {
		if n >= maxDirectivesPerString {
			return nil, ErrTooManyDirectives
		}

		name := s[loc[2]:loc[3]]
		rawArgs := s[loc[4]:loc[5]]

		helper, ok := r.engine.registry.Get(name)
		if !ok {
			return nil, &MissingHelperError{Name: name}
		}

		args, err := r.resolveArgs(name, rawArgs, data, inner)
		if err != nil {
			return nil, err
		}

		result, err := r.invoke(name, helper, args, data, inner)
		if err != nil {
			return nil, err
		}

		if value.IsComposite(result) {
			return result, nil
		}

		s = s[:loc[0]] + value.ToString(result) + s[loc[1]:]
		last = result
		loc = directivePattern.FindStringSubmatchIndex(s)
	}

	return unstring(s, last), nil
}

// unstring recovers the type of the last helper result from the final text
func unstring(s string, last interface{}) interface{} {
	switch l := last.(type) {
	case nil:
		// only a string made of nothing but the nil result collapses
		if s == "null" {
			return nil
		}
	case bool:
		if value.IsBooleanString(s) {
			return l
		}
	case float64:
		if f, ok := value.ParseNumber(s); ok && f == l {
			return l
		}
	}
	return s
}

// resolveArgs turns raw argument text into helper arguments
func (r *run) resolveArgs(name, raw string, data interface{}, inner interface{}) ([]interface{}, error) {
	if value.IsEmptyString(raw) {
		return []interface{}{}, nil
	}

	resolved, err := r.resolveGroups(raw, data, inner)
	if err != nil {
		return nil, err
	}

	tokens := Tokenize(resolved)
	args := make([]interface{}, len(tokens))
	for i, token := range tokens {
		args[i] = r.sanitize(token, name, data)
	}
	return args, nil
}

// resolveGroups evaluates parenthesized calls, innermost first, until none is
// left. Each group is replaced by a literal of its result, or by a result
// store key when the result cannot be written as a literal.
func (r *run) resolveGroups(raw string, data interface{}, inner interface{}) (string, error) {
	for {
		open, closing, ok := findGroup(raw)
		if !ok {
			return raw, nil
		}

		tokens := Tokenize(raw[open+1 : closing])
		name := tokens[0]

		helper, found := r.engine.registry.Get(name)
		if !found {
			return "", &MissingHelperError{Name: name}
		}

		args := make([]interface{}, len(tokens)-1)
		for i, token := range tokens[1:] {
			args[i] = r.sanitize(token, name, data)
		}

		result, err := r.invoke(name, helper, args, data, inner)
		if err != nil {
			return "", err
		}

		raw = raw[:open] + r.literal(result) + raw[closing+1:]
	}
}

// literal writes a nested call result back into argument text
func (r *run) literal(result interface{}) string {
	if value.IsComposite(result) {
		return r.store.Put(result)
	}

	text := value.ToString(result)
	switch {
	case !strings.Contains(text, `"`):
		return `"` + text + `"`
	case !strings.Contains(text, `'`):
		return `'` + text + `'`
	default:
		return r.store.Put(text)
	}
}

// sanitize converts one argument token into a value
func (r *run) sanitize(token, helperName string, data interface{}) interface{} {
	if isQuoted(token) {
		return token[1 : len(token)-1]
	}
	if helperName == "var" {
		return token
	}
	if n, ok := value.ParseNumber(token); ok {
		return n
	}
	if value.IsBooleanString(token) {
		return token == "true"
	}
	if stored, ok := r.store.Get(token); ok && stored != nil {
		return stored
	}
	if v, ok := Lookup(token, data); ok {
		return v
	}
	return token
}

// invoke runs a helper and normalizes its result
func (r *run) invoke(name string, helper HelperFunc, args []interface{}, data interface{}, inner interface{}) (interface{}, error) {
	r.engine.logger.Debug("invoking helper",
		zap.String("helper", name),
		zap.Int("args", len(args)),
		zap.Int("depth", r.depth),
	)

	result, err := helper(&Call{
		Name:  name,
		Args:  args,
		Data:  data,
		Inner: inner,
		run:   r,
	})
	if err != nil {
		return nil, err
	}
	return value.Normalize(result), nil
}
