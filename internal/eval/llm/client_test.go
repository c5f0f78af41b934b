package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixed(response string, err error) Completion {
	return func(context.Context, string) (string, error) {
		return response, err
	}
}

func TestMatchRoute(t *testing.T) {
	routes := map[string]string{
		"billing": "billing-flow",
		"Support": "support-flow",
	}

	tests := []struct {
		name      string
		response  string
		want      string
		wantMatch bool
	}{
		{"exact", "billing", "billing-flow", true},
		{"trimmed and lowercased", "  BILLING\n", "billing-flow", true},
		{"case-insensitive key", "support", "support-flow", true},
		{"partial", "This is a billing question.", "billing-flow", true},
		{"no match", "weather", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MatchRoute(tt.response, routes)
			assert.Equal(t, tt.wantMatch, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchRoute_PartialIsDeterministic(t *testing.T) {
	routes := map[string]string{"beta": "b", "alpha": "a"}

	for i := 0; i < 10; i++ {
		got, ok := MatchRoute("alpha or beta", routes)
		require.True(t, ok)
		assert.Equal(t, "a", got)
	}
}

func TestClient_Complete(t *testing.T) {
	var gotPrompt string
	client := NewClient(func(ctx context.Context, prompt string) (string, error) {
		gotPrompt = prompt
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return "answer", nil
	}, time.Second, nil)

	out, err := client.Complete(context.Background(), "question")
	require.NoError(t, err)
	assert.Equal(t, "answer", out)
	assert.Equal(t, "question", gotPrompt)

	_, err = client.Complete(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestClient_Route(t *testing.T) {
	routes := map[string]string{"yes": "approve", "no": "reject"}

	target, err := NewClient(fixed("Yes", nil), 0, nil).Route(context.Background(), "ok?", routes, "review")
	require.NoError(t, err)
	assert.Equal(t, "approve", target)

	target, err = NewClient(fixed("maybe", nil), 0, nil).Route(context.Background(), "ok?", routes, "review")
	require.NoError(t, err)
	assert.Equal(t, "review", target)

	target, err = NewClient(fixed("", errors.New("provider down")), 0, nil).Route(context.Background(), "ok?", routes, "review")
	require.NoError(t, err)
	assert.Equal(t, "review", target)

	_, err = NewClient(fixed("yes", nil), 0, nil).Route(context.Background(), "ok?", nil, "review")
	assert.Error(t, err)
}
