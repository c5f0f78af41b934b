package extensions

import (
	"context"
	"testing"

	"github.com/aescanero/dago-node-langjson/internal/eval/cel"
	"github.com/aescanero/dago-node-langjson/internal/eval/handlebars"
	"github.com/aescanero/dago-node-langjson/internal/eval/llm"
	"github.com/aescanero/dago-node-langjson/internal/eval/template"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, client *llm.Client) *template.Engine {
	t.Helper()
	evaluator, err := cel.NewEvaluator()
	require.NoError(t, err)

	engine := template.NewEngine()
	Register(engine, Options{
		CEL:        evaluator,
		Handlebars: handlebars.NewEngine(),
		LLM:        client,
	})
	return engine
}

func apply(t *testing.T, engine *template.Engine, tmpl, data interface{}) interface{} {
	t.Helper()
	out, err := engine.ApplyTemplate(context.Background(), tmpl, data)
	require.NoError(t, err)
	return out
}

func TestExtensionHelpers(t *testing.T) {
	engine := newEngine(t, nil)
	data := map[string]interface{}{
		"total":  150.0,
		"name":   "Ana",
		"prompt": "Hi {{name}}, total {{total}}",
		"order": map[string]interface{}{
			"items": []interface{}{
				map[string]interface{}{"name": "a"},
				map[string]interface{}{"name": "b"},
			},
		},
		"raw":   `{"user":{"name":"Ana","age":30}}`,
		"obj":   map[string]interface{}{"a": map[string]interface{}{"b": "x"}},
		"doc":   "a: 1\nb: [x, y]\n",
		"empty": map[string]interface{}{},
	}

	tests := []struct {
		name string
		tmpl string
		want interface{}
	}{
		{"cel bool", "{{#cel 'data.total > 100.0'}}", true},
		{"cel string", `{{#cel 'data.name + "!"'}}`, "Ana!"},
		{"render", "{{#render prompt}}", "Hi Ana, total 150"},
		{"render with object", "{{#render prompt empty}}", "Hi , total "},
		{"jsonPath", "{{#jsonPath order '$.items[*].name'}}", []interface{}{"a", "b"}},
		{"jsonPath no match", "{{#jsonPath order '$.missing'}}", []interface{}{}},
		{"jsonGet text", "{{#jsonGet raw 'user.age'}}", 30.0},
		{"jsonGet value", "{{#jsonGet obj 'a.b'}}", "x"},
		{"jsonGet missing", "{{#jsonGet raw 'user.zip'}}", nil},
		{"jsonSet text", "{{#jsonSet raw 'user.name' 'Bo'}}", `{"user":{"name":"Bo","age":30}}`},
		{"jsonSet value", "{{#jsonSet obj 'a.c' 1}}", map[string]interface{}{
			"a": map[string]interface{}{"b": "x", "c": 1.0},
		}},
		{"yamlStringify", "{{#yamlStringify obj}}", "a:\n    b: x\n"},
		{"yamlParse", "{{#yamlParse doc}}", map[string]interface{}{
			"a": 1.0,
			"b": []interface{}{"x", "y"},
		}},
		{"markdown", "{{#markdown '# Hi'}}", "<h1>Hi</h1>\n"},
		{"humanizeBytes", "{{#humanizeBytes 82854982}}", "83 MB"},
		{"ordinal", "{{#ordinal 3}}", "3rd"},
		{"ordinal teen", "{{#ordinal 11}}", "11th"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apply(t, engine, tt.tmpl, data))
		})
	}
}

func TestUUIDHelper(t *testing.T) {
	engine := newEngine(t, nil)

	out := apply(t, engine, "{{#uuid}}", nil)
	id, ok := out.(string)
	require.True(t, ok)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, apply(t, engine, "{{#uuid}}", nil))
}

func TestCELHelper_UsesEachBindings(t *testing.T) {
	engine := newEngine(t, nil)
	tmpl := map[string]interface{}{
		"{{#each items}}": "{{#cel 'data.item * 2.0'}}",
	}
	data := map[string]interface{}{"items": []interface{}{1.0, 2.5}}

	assert.Equal(t, []interface{}{2.0, 5.0}, apply(t, engine, tmpl, data))
}

func TestLLMHelpers(t *testing.T) {
	client := llm.NewClient(func(_ context.Context, prompt string) (string, error) {
		if prompt == "ok?" {
			return "Yes", nil
		}
		return "echo: " + prompt, nil
	}, 0, nil)
	engine := newEngine(t, client)
	data := map[string]interface{}{
		"routes": map[string]interface{}{"yes": "approve", "no": "reject"},
	}

	assert.Equal(t, "echo: hello", apply(t, engine, "{{#llm 'hello'}}", data))
	assert.Equal(t, "approve", apply(t, engine, "{{#llmRoute 'ok?' routes 'review'}}", data))
	assert.Equal(t, "review", apply(t, engine, "{{#llmRoute 'other' routes 'review'}}", data))
}

func TestRegister_OptionalBackends(t *testing.T) {
	engine := template.NewEngine()
	names := Register(engine, Options{})

	assert.Contains(t, names, "jsonPath")
	assert.NotContains(t, names, "cel")
	assert.NotContains(t, names, "render")
	assert.NotContains(t, names, "llm")

	_, err := engine.ApplyTemplate(context.Background(), "{{#llm 'x'}}", nil)
	assert.ErrorIs(t, err, template.ErrMissingHelper)
}
