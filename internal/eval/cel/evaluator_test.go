package cel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	e, err := NewEvaluator()
	require.NoError(t, err)

	data := map[string]interface{}{
		"priority": "high",
		"score":    0.95,
		"tags":     []interface{}{"a", "b"},
		"user":     map[string]interface{}{"name": "Ana"},
	}

	tests := []struct {
		name       string
		expression string
		want       interface{}
	}{
		{"bool", "data.priority == 'high'", true},
		{"logic", "data.score > 0.9 && size(data.tags) == 2", true},
		{"cross type compare", "data.score < 1", true},
		{"string", "data.user.name + '!'", "Ana!"},
		{"int becomes number", "size(data.tags)", 2.0},
		{"double", "data.score * 2.0", 1.9},
		{"list", "data.tags.map(t, t + t)", []interface{}{"aa", "bb"}},
		{"map", "{'n': data.user.name}", map[string]interface{}{"n": "Ana"}},
		{"has", "has(data.missing)", false},
		{"null", "null", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Evaluate(context.Background(), tt.expression, data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	e, err := NewEvaluator()
	require.NoError(t, err)

	_, err = e.Evaluate(context.Background(), "data.", nil)
	assert.ErrorContains(t, err, "failed to compile expression")

	_, err = e.Evaluate(context.Background(), "data.missing.field", map[string]interface{}{})
	assert.ErrorContains(t, err, "evaluation failed")
}

func TestValidateExpression(t *testing.T) {
	e, err := NewEvaluator()
	require.NoError(t, err)

	assert.NoError(t, e.ValidateExpression("data.x > 1"))
	assert.Error(t, e.ValidateExpression("data.x >"))
}

func TestProgramCache(t *testing.T) {
	e, err := NewEvaluator()
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := e.Evaluate(context.Background(), "1 + 1", nil)
		require.NoError(t, err)
	}
	assert.Len(t, e.cache, 1)

	e.ClearCache()
	assert.Empty(t, e.cache)
}
