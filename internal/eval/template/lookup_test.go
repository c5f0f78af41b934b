package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	data := map[string]interface{}{
		"user": map[string]interface{}{
			"name": "Ana",
			"tags": []interface{}{"a", "b"},
			"age":  0.0,
		},
		"flag":  false,
		"empty": nil,
	}

	tests := []struct {
		name   string
		path   interface{}
		want   interface{}
		wantOK bool
	}{
		{"dot path", "user.name", "Ana", true},
		{"bracket index", "user.tags[1]", "b", true},
		{"double quoted key", `user["name"]`, "Ana", true},
		{"single quoted key", "user['name']", "Ana", true},
		{"quoted segment", `"user".name`, "Ana", true},
		{"array length", "user.tags.length", 2.0, true},
		{"string length", "user.name.length", 3.0, true},
		{"string index", "user.name[0]", "A", true},
		{"falsy value", "flag", false, true},
		{"zero value", "user.age", 0.0, true},
		{"nil value", "empty", nil, true},
		{"missing key", "missing", nil, false},
		{"through nil", "empty.x", nil, false},
		{"index out of range", "user.tags[5]", nil, false},
		{"non-string path", 5.0, 5.0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Lookup(tt.path, data)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookup_NilData(t *testing.T) {
	got, ok := Lookup("a", nil)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", []string{}},
		{"   ", []string{}},
		{"a b  c", []string{"a", "b", "c"}},
		{"a\tb\nc", []string{"a", "b", "c"}},
		{`a 'b c' "d e"`, []string{"a", "'b c'", `"d e"`}},
		{`'it"s' x`, []string{`'it"s'`, "x"}},
		{`"say 'hi'" y`, []string{`"say 'hi'"`, "y"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.raw))
		})
	}
}

func TestFindGroup(t *testing.T) {
	open, closing, ok := findGroup("a (b (c d)) e")
	assert.True(t, ok)
	assert.Equal(t, 5, open)
	assert.Equal(t, 9, closing)

	open, closing, ok = findGroup("(x) (y)")
	assert.True(t, ok)
	assert.Equal(t, 0, open)
	assert.Equal(t, 2, closing)

	_, _, ok = findGroup("'(x)' y")
	assert.False(t, ok)

	_, _, ok = findGroup("a () b")
	assert.False(t, ok)

	_, _, ok = findGroup("a (b")
	assert.False(t, ok)
}

func TestResultStore(t *testing.T) {
	s := NewResultStore()
	arr := []interface{}{1.0, 2.0}

	key := s.Put(arr)
	assert.Equal(t, storeKeyPrefix, key[:1])
	assert.Equal(t, 1, s.Len())

	got, ok := s.Get(key)
	assert.True(t, ok)
	assert.Equal(t, arr, got)

	other := s.Put(arr)
	assert.NotEqual(t, key, other)

	_, ok = s.Get("&missing")
	assert.False(t, ok)
	_, ok = s.Get(key[1:])
	assert.False(t, ok)

	s.Clear()
	assert.Equal(t, 0, s.Len())
	_, ok = s.Get(key)
	assert.False(t, ok)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	first := func(*Call) (interface{}, error) { return "first", nil }
	second := func(*Call) (interface{}, error) { return "second", nil }

	r.Register("b", first)
	r.RegisterAll(map[string]HelperFunc{"a": first})
	assert.Equal(t, []string{"a", "b"}, r.Names())

	r.Register("b", second)
	fn, ok := r.Get("b")
	assert.True(t, ok)
	out, err := fn(nil)
	assert.NoError(t, err)
	assert.Equal(t, "second", out)

	_, ok = r.Get("B")
	assert.False(t, ok)

	r.Register("a", nil)
	assert.Equal(t, []string{"b"}, r.Names())
}
