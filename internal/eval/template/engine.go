package template

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/aescanero/dago-node-langjson/internal/value"
	"go.uber.org/zap"
)

// DefaultMaxDepth bounds template nesting, helper recursion included
const DefaultMaxDepth = 64

// Engine applies JSON templates to data
type Engine struct {
	registry *Registry
	logger   *zap.Logger
	maxDepth int
	now      func() time.Time

	randMu sync.Mutex
	rand   *rand.Rand
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger used for debug output
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMaxDepth sets the nesting limit; values below 1 keep the default
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

// WithClock sets the time source of the date helpers
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithRand sets the random source of the random helpers
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		e.rand = r
	}
}

// NewEngine creates a new engine with the built-in helpers registered
func NewEngine(opts ...Option) *Engine {
	engine := &Engine{
		registry: NewRegistry(),
		logger:   zap.NewNop(),
		maxDepth: DefaultMaxDepth,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(engine)
	}

	engine.registry.RegisterAll(builtinHelpers())

	return engine
}

// RegisterHelper adds or replaces a helper
func (e *Engine) RegisterHelper(name string, fn HelperFunc) {
	e.registry.Register(name, fn)
}

// RegisterHelpers adds or replaces several helpers
func (e *Engine) RegisterHelpers(helpers map[string]HelperFunc) {
	e.registry.RegisterAll(helpers)
}

// GetHelper returns the helper registered under name
func (e *Engine) GetHelper(name string) (HelperFunc, bool) {
	return e.registry.Get(name)
}

// Helpers returns the registered helper names
func (e *Engine) Helpers() []string {
	return e.registry.Names()
}

// Lookup resolves a path against data, see the package-level Lookup
func (e *Engine) Lookup(path interface{}, data interface{}) (interface{}, bool) {
	return Lookup(path, data)
}

// ApplyTemplate evaluates tmpl against data and returns the resulting value
func (e *Engine) ApplyTemplate(ctx context.Context, tmpl interface{}, data interface{}) (interface{}, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	r := &run{
		engine: e,
		ctx:    ctx,
		store:  NewResultStore(),
	}
	return r.apply(value.Normalize(tmpl), value.Normalize(data))
}

func (e *Engine) intN(n int) int {
	if e.rand == nil {
		return rand.IntN(n)
	}
	e.randMu.Lock()
	defer e.randMu.Unlock()
	return e.rand.IntN(n)
}

func (e *Engine) float64() float64 {
	if e.rand == nil {
		return rand.Float64()
	}
	e.randMu.Lock()
	defer e.randMu.Unlock()
	return e.rand.Float64()
}

// run is the state of one top-level ApplyTemplate call
type run struct {
	engine *Engine
	ctx    context.Context
	store  *ResultStore
	depth  int
}

// apply dispatches on the shape of tmpl
func (r *run) apply(tmpl interface{}, data interface{}) (interface{}, error) {
	if err := r.ctx.Err(); err != nil {
		return nil, err
	}

	r.depth++
	defer func() { r.depth-- }()
	if r.depth > r.engine.maxDepth {
		return nil, fmt.Errorf("%w (%d)", ErrMaxDepth, r.engine.maxDepth)
	}

	switch t := tmpl.(type) {
	case string:
		return r.evaluate(t, data, nil)

	case []interface{}:
		out := make([]interface{}, len(t))
		for i, item := range t {
			item = value.Normalize(item)
			scoped := value.Extend(data, map[string]interface{}{
				"currentItem": item,
				"index":       float64(i),
			})
			applied, err := r.apply(item, scoped)
			if err != nil {
				return nil, err
			}
			out[i] = applied
		}
		return out, nil

	case map[string]interface{}:
		return r.applyObject(t, data)
	}

	return tmpl, nil
}

// applyObject evaluates every key of an object template. Keys are visited in
// sorted order.
func (r *run) applyObject(tmpl map[string]interface{}, data interface{}) (interface{}, error) {
	keys := make([]string, 0, len(tmpl))
	for key := range tmpl {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var result interface{} = make(map[string]interface{}, len(tmpl))

	for _, key := range keys {
		val := value.Normalize(tmpl[key])

		if !directivePattern.MatchString(key) {
			applied, err := r.apply(val, data)
			if err != nil {
				return nil, err
			}
			r.setKey(result, key, applied)
			continue
		}

		keyResult, err := r.evaluate(key, data, val)
		if err != nil {
			return nil, err
		}

		// a falsy value makes the key result the output, whatever its kind
		if !value.Truthy(val) {
			result = keyResult
			continue
		}

		switch kr := keyResult.(type) {
		case bool:
			// a boolean key gates its value
			if kr {
				result, err = r.apply(val, data)
				if err != nil {
					return nil, err
				}
			}
		case []interface{}, map[string]interface{}:
			result, err = r.apply(kr, data)
			if err != nil {
				return nil, err
			}
		default:
			applied, err := r.apply(val, data)
			if err != nil {
				return nil, err
			}
			r.setKey(result, value.ToString(keyResult), applied)
		}
	}

	return result, nil
}

// setKey writes into result when an earlier key has not replaced the object
// with another value
func (r *run) setKey(result interface{}, key string, v interface{}) {
	obj, ok := result.(map[string]interface{})
	if !ok {
		r.engine.logger.Debug("dropping key after output was replaced",
			zap.String("key", key),
		)
		return
	}
	obj[key] = v
}

// Call is a single helper invocation
type Call struct {
	// Name is the helper name as written in the directive
	Name string
	// Args are the sanitized arguments
	Args []interface{}
	// Data is the data context at the directive
	Data interface{}
	// Inner is the value paired with a directive key, nil elsewhere
	Inner interface{}

	run *run
}

// Context returns the context of the running ApplyTemplate call
func (c *Call) Context() context.Context {
	return c.run.ctx
}

// Logger returns the engine logger
func (c *Call) Logger() *zap.Logger {
	return c.run.engine.logger
}

// Now returns the current time from the engine clock
func (c *Call) Now() time.Time {
	return c.run.engine.now()
}

// IntN returns a random int in [0, n)
func (c *Call) IntN(n int) int {
	return c.run.engine.intN(n)
}

// Float64 returns a random float in [0, 1)
func (c *Call) Float64() float64 {
	return c.run.engine.float64()
}

// Arg returns argument i, or nil when it was not given
func (c *Call) Arg(i int) interface{} {
	if i < 0 || i >= len(c.Args) {
		return nil
	}
	return c.Args[i]
}

// Apply evaluates tmpl against data within the current call, sharing its
// result store and depth limit
func (c *Call) Apply(tmpl interface{}, data interface{}) (interface{}, error) {
	return c.run.apply(value.Normalize(tmpl), value.Normalize(data))
}

// Invoke calls another helper by name with the given arguments and the
// current data and inner template
func (c *Call) Invoke(name string, args ...interface{}) (interface{}, error) {
	helper, ok := c.run.engine.registry.Get(name)
	if !ok {
		return nil, &MissingHelperError{Name: name}
	}
	return c.run.invoke(name, helper, args, c.Data, c.Inner)
}
