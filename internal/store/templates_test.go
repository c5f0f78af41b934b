package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*RedisTemplateStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisTemplateStore(client, "", nil), mr
}

func TestRedisTemplateStore_SaveLoad(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()
	tmpl := map[string]interface{}{
		"greeting": "Hello {{#var name}}",
		"count":    2.0,
	}

	require.NoError(t, s.Save(ctx, "hello", tmpl))
	assert.True(t, mr.Exists(DefaultPrefix+"hello"))

	loaded, err := s.Load(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, tmpl, loaded)

	require.NoError(t, s.Save(ctx, "hello", "replaced"))
	loaded, err = s.Load(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, "replaced", loaded)
}

func TestRedisTemplateStore_NotFound(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
	assert.ErrorContains(t, err, "missing")

	assert.ErrorIs(t, s.SetTTL(ctx, "missing", time.Minute), ErrTemplateNotFound)
	assert.Error(t, s.Save(ctx, "", "x"))
}

func TestRedisTemplateStore_ExistsDelete(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "t", []interface{}{"a"}))

	ok, err := s.Exists(ctx, "t")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Delete(ctx, "t"))

	ok, err = s.Exists(ctx, "t")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisTemplateStore_List(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"b", "a", "c"} {
		require.NoError(t, s.Save(ctx, name, name))
	}
	require.NoError(t, mr.Set("other:key", "x"))

	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestRedisTemplateStore_SetTTL(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "short", "x"))
	require.NoError(t, s.SetTTL(ctx, "short", time.Minute))
	assert.Equal(t, time.Minute, mr.TTL(DefaultPrefix+"short"))

	mr.FastForward(2 * time.Minute)

	_, err := s.Load(ctx, "short")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}
