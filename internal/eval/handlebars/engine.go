package handlebars

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/aescanero/dago-node-langjson/internal/value"
	"github.com/aymerick/raymond"
)

// defaultCacheSize bounds the number of compiled templates kept
const defaultCacheSize = 256

// Engine renders Handlebars templates
type Engine struct {
	cache     map[string]*raymond.Template
	cacheSize int
	mu        sync.RWMutex
}

// NewEngine creates a new template engine
func NewEngine() *Engine {
	return &Engine{
		cache:     make(map[string]*raymond.Template),
		cacheSize: defaultCacheSize,
	}
}

// Render renders a template with the given data
func (e *Engine) Render(source string, data interface{}) (string, error) {
	tmpl, err := e.getTemplate(source)
	if err != nil {
		return "", fmt.Errorf("failed to compile template: %w", err)
	}

	result, err := tmpl.Exec(data)
	if err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}

	return result, nil
}

// getTemplate gets a compiled template from cache or compiles it
func (e *Engine) getTemplate(source string) (*raymond.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.cache[source]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	// Check again in case another goroutine compiled it
	if tmpl, ok := e.cache[source]; ok {
		return tmpl, nil
	}

	tmpl, err := raymond.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	// Helpers are bound per template; raymond's global registry panics on
	// a second registration of the same name
	tmpl.RegisterHelpers(helpers())

	if len(e.cache) >= e.cacheSize {
		e.cache = make(map[string]*raymond.Template)
	}
	e.cache[source] = tmpl

	return tmpl, nil
}

// ValidateTemplate validates a template without rendering it
func (e *Engine) ValidateTemplate(source string) error {
	_, err := raymond.Parse(source)
	return err
}

// ClearCache clears the compiled template cache
func (e *Engine) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]*raymond.Template)
}

// CacheLen returns the number of cached templates
func (e *Engine) CacheLen() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.cache)
}

// helpers returns the Handlebars helpers bound to every template
func helpers() map[string]interface{} {
	return map[string]interface{}{
		"uppercase": func(str string) string {
			return strings.ToUpper(str)
		},
		"lowercase": func(str string) string {
			return strings.ToLower(str)
		},
		"trim": func(str string) string {
			return strings.TrimSpace(str)
		},

		// default returns the fallback when the value is empty
		"default": func(v interface{}, fallback interface{}) interface{} {
			if v == nil || v == "" {
				return fallback
			}
			return v
		},

		"eq": func(a, b interface{}) bool {
			return value.Equal(a, b)
		},
		"ne": func(a, b interface{}) bool {
			return !value.Equal(a, b)
		},
		"gt": func(a, b interface{}) bool {
			cmp, ok := value.Compare(a, b)
			return ok && cmp > 0
		},
		"lt": func(a, b interface{}) bool {
			cmp, ok := value.Compare(a, b)
			return ok && cmp < 0
		},

		"contains": func(str, substr string) bool {
			return strings.Contains(str, substr)
		},
		"join": func(arr []interface{}, sep string) string {
			strs := make([]string, len(arr))
			for i, v := range arr {
				strs[i] = value.ToString(v)
			}
			return strings.Join(strs, sep)
		},
		"len": func(v interface{}) int {
			switch t := v.(type) {
			case string:
				return utf8.RuneCountInString(t)
			case []interface{}:
				return len(t)
			case map[string]interface{}:
				return len(t)
			default:
				return 0
			}
		},
		"json": func(v interface{}) raymond.SafeString {
			out, err := json.Marshal(value.Normalize(v))
			if err != nil {
				return ""
			}
			return raymond.SafeString(out)
		},
	}
}
