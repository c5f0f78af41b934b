package handlebars

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	e := NewEngine()
	data := map[string]interface{}{
		"name":  "ana",
		"empty": "",
		"count": 3.0,
		"items": []interface{}{"a", "b"},
		"obj":   map[string]interface{}{"k": 1.0},
	}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"plain", "hello", "hello"},
		{"variable", "Hi {{name}}", "Hi ana"},
		{"uppercase", "{{uppercase name}}", "ANA"},
		{"lowercase", "{{lowercase 'ABC'}}", "abc"},
		{"trim", "[{{trim '  x '}}]", "[x]"},
		{"default", "{{default empty 'none'}}", "none"},
		{"eq", "{{#if (eq name 'ana')}}yes{{else}}no{{/if}}", "yes"},
		{"ne", "{{#if (ne name 'ana')}}yes{{else}}no{{/if}}", "no"},
		{"gt int literal", "{{#if (gt count 2)}}big{{/if}}", "big"},
		{"lt", "{{#if (lt count 2)}}small{{else}}not small{{/if}}", "not small"},
		{"contains", "{{#if (contains name 'n')}}has n{{/if}}", "has n"},
		{"join", "{{join items ', '}}", "a, b"},
		{"len", "{{len items}} {{len name}}", "2 3"},
		{"json", "{{json obj}}", `{"k":1}`},
		{"each", "{{#each items}}[{{this}}]{{/each}}", "[a][b]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Render(tt.template, data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_TwoEngines(t *testing.T) {
	first, err := NewEngine().Render("{{uppercase 'a'}}", map[string]interface{}{})
	require.NoError(t, err)
	second, err := NewEngine().Render("{{uppercase 'b'}}", map[string]interface{}{})
	require.NoError(t, err)

	assert.Equal(t, "A", first)
	assert.Equal(t, "B", second)
}

func TestRender_Cache(t *testing.T) {
	e := NewEngine()

	for i := 0; i < 3; i++ {
		_, err := e.Render("{{name}}", map[string]interface{}{"name": "x"})
		require.NoError(t, err)
	}
	assert.Equal(t, 1, e.CacheLen())

	e.ClearCache()
	assert.Equal(t, 0, e.CacheLen())
}

func TestRender_ParseError(t *testing.T) {
	e := NewEngine()

	_, err := e.Render("{{#if x}}unclosed", nil)
	assert.ErrorContains(t, err, "failed to compile template")
	assert.Error(t, e.ValidateTemplate("{{#if x}}unclosed"))
	assert.NoError(t, e.ValidateTemplate("{{x}}"))
}
