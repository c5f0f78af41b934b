package extensions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/aescanero/dago-node-langjson/internal/eval/cel"
	"github.com/aescanero/dago-node-langjson/internal/eval/handlebars"
	"github.com/aescanero/dago-node-langjson/internal/eval/llm"
	"github.com/aescanero/dago-node-langjson/internal/eval/template"
	"github.com/aescanero/dago-node-langjson/internal/value"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/ohler55/ojg/jp"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Options selects the optional extension backends. Nil backends leave their
// helpers unregistered.
type Options struct {
	CEL        *cel.Evaluator
	Handlebars *handlebars.Engine
	LLM        *llm.Client
	Logger     *zap.Logger
}

// Register adds the extension helpers to engine and returns their names
func Register(engine *template.Engine, opts Options) []string {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	helpers := map[string]template.HelperFunc{
		"jsonPath":      helperJSONPath,
		"jsonGet":       helperJSONGet,
		"jsonSet":       helperJSONSet,
		"yamlStringify": helperYAMLStringify,
		"yamlParse":     helperYAMLParse,
		"markdown":      markdownHelper(goldmark.New()),
		"uuid":          helperUUID,
		"humanizeBytes": helperHumanizeBytes,
		"ordinal":       helperOrdinal,
	}

	if opts.CEL != nil {
		helpers["cel"] = celHelper(opts.CEL)
	}
	if opts.Handlebars != nil {
		helpers["render"] = renderHelper(opts.Handlebars)
	}
	if opts.LLM != nil {
		helpers["llm"] = llmHelper(opts.LLM)
		helpers["llmRoute"] = llmRouteHelper(opts.LLM)
	}

	engine.RegisterHelpers(helpers)

	names := make([]string, 0, len(helpers))
	for name := range helpers {
		names = append(names, name)
	}
	logger.Debug("registered extension helpers", zap.Strings("helpers", names))
	return names
}

// celHelper evaluates a CEL expression with the directive data bound to data
func celHelper(evaluator *cel.Evaluator) template.HelperFunc {
	return func(c *template.Call) (interface{}, error) {
		expr, err := c.String(0)
		if err != nil {
			return nil, err
		}
		return evaluator.Evaluate(c.Context(), expr, c.Data)
	}
}

// renderHelper renders a Handlebars source against the directive data, or
// against the object given as second argument
func renderHelper(engine *handlebars.Engine) template.HelperFunc {
	return func(c *template.Call) (interface{}, error) {
		source, err := c.String(0)
		if err != nil {
			return nil, err
		}
		data := c.Data
		if c.Arg(1) != nil {
			if data, err = c.Object(1); err != nil {
				return nil, err
			}
		}
		return engine.Render(source, data)
	}
}

// helperJSONPath returns every match of a JSONPath expression
func helperJSONPath(c *template.Call) (interface{}, error) {
	expr, err := c.String(1)
	if err != nil {
		return nil, err
	}
	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name, err)
	}
	matches := x.Get(c.Arg(0))
	if matches == nil {
		matches = []interface{}{}
	}
	return matches, nil
}

// jsonText returns argument i as JSON text; strings are taken as JSON
// already, anything else is encoded
func jsonText(c *template.Call, i int) (string, error) {
	if s, ok := c.Arg(i).(string); ok {
		return s, nil
	}
	out, err := json.Marshal(c.Arg(i))
	if err != nil {
		return "", fmt.Errorf("%s: %w", c.Name, err)
	}
	return string(out), nil
}

// helperJSONGet reads a gjson path; missing paths give nil
func helperJSONGet(c *template.Call) (interface{}, error) {
	doc, err := jsonText(c, 0)
	if err != nil {
		return nil, err
	}
	path, err := c.String(1)
	if err != nil {
		return nil, err
	}
	result := gjson.Get(doc, path)
	if !result.Exists() {
		return nil, nil
	}
	return result.Value(), nil
}

// helperJSONSet writes a value at an sjson path. JSON text in gives JSON text
// out; a value in gives the updated value.
func helperJSONSet(c *template.Call) (interface{}, error) {
	doc, err := jsonText(c, 0)
	if err != nil {
		return nil, err
	}
	path, err := c.String(1)
	if err != nil {
		return nil, err
	}

	updated, err := sjson.Set(doc, path, c.Arg(2))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name, err)
	}

	if _, isText := c.Arg(0).(string); isText {
		return updated, nil
	}
	var out interface{}
	if err := json.Unmarshal([]byte(updated), &out); err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name, err)
	}
	return out, nil
}

func helperYAMLStringify(c *template.Call) (interface{}, error) {
	out, err := yaml.Marshal(c.Arg(0))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name, err)
	}
	return string(out), nil
}

func helperYAMLParse(c *template.Call) (interface{}, error) {
	s, err := c.String(0)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := yaml.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name, err)
	}
	return value.Clone(out), nil
}

// markdownHelper converts Markdown to HTML
func markdownHelper(md goldmark.Markdown) template.HelperFunc {
	return func(c *template.Call) (interface{}, error) {
		s, err := c.String(0)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := md.Convert([]byte(s), &buf); err != nil {
			return nil, fmt.Errorf("%s: %w", c.Name, err)
		}
		return buf.String(), nil
	}
}

func helperUUID(*template.Call) (interface{}, error) {
	return uuid.NewString(), nil
}

func helperHumanizeBytes(c *template.Call) (interface{}, error) {
	n, err := c.Number(0)
	if err != nil {
		return nil, err
	}
	if n < 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, fmt.Errorf("%s: expected a non-negative size, got %s", c.Name, value.ToString(n))
	}
	return humanize.Bytes(uint64(n)), nil
}

func helperOrdinal(c *template.Call) (interface{}, error) {
	n, err := c.Int(0)
	if err != nil {
		return nil, err
	}
	return humanize.Ordinal(n), nil
}

func llmHelper(client *llm.Client) template.HelperFunc {
	return func(c *template.Call) (interface{}, error) {
		prompt, err := c.String(0)
		if err != nil {
			return nil, err
		}
		return client.Complete(c.Context(), prompt)
	}
}

// llmRouteHelper takes (prompt, routes, fallback) where routes maps answers
// to targets
func llmRouteHelper(client *llm.Client) template.HelperFunc {
	return func(c *template.Call) (interface{}, error) {
		prompt, err := c.String(0)
		if err != nil {
			return nil, err
		}
		obj, err := c.Object(1)
		if err != nil {
			return nil, err
		}
		fallback, err := c.StringOr(2, "")
		if err != nil {
			return nil, err
		}

		routes := make(map[string]string, len(obj))
		for answer, target := range obj {
			routes[answer] = value.ToString(target)
		}
		return client.Route(c.Context(), prompt, routes, fallback)
	}
}
