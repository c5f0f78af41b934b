package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want Kind
	}{
		{"nil", nil, Null},
		{"bool", true, Bool},
		{"float", 1.5, Number},
		{"int", 3, Number},
		{"uint8", uint8(3), Number},
		{"string", "x", String},
		{"array", []interface{}{1}, Array},
		{"typed slice", []string{"a"}, Array},
		{"object", map[string]interface{}{}, Object},
		{"typed map", map[string]int{"a": 1}, Object},
		{"nil pointer", (*int)(nil), Null},
		{"func", func() {}, Invalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.in))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, 3.0, Normalize(3))
	assert.Equal(t, []interface{}{"a", "b"}, Normalize([]string{"a", "b"}))
	assert.Equal(t, map[string]interface{}{"a": 1.0}, Normalize(map[string]int{"a": 1}))
	assert.Equal(t, []interface{}{[]interface{}{1.0, 2.0}}, Normalize([][]int{{1, 2}}))

	type user struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	assert.Equal(t, map[string]interface{}{"name": "Ana", "age": 30.0}, Normalize(user{Name: "Ana", Age: 30}))

	canonical := map[string]interface{}{"k": 1}
	out := Normalize(canonical).(map[string]interface{})
	out["new"] = true
	assert.Contains(t, canonical, "new", "canonical containers are passed through, not copied")
}

func TestTruthy(t *testing.T) {
	falsy := []interface{}{nil, false, 0, 0.0, "", math.NaN()}
	for _, v := range falsy {
		assert.False(t, Truthy(v), "%#v", v)
	}

	truthy := []interface{}{true, 1, -1, "0", "false", []interface{}{}, map[string]interface{}{}}
	for _, v := range truthy {
		assert.True(t, Truthy(v), "%#v", v)
	}
}

func TestToString(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{nil, "null"},
		{true, "true"},
		{30, "30"},
		{30.0, "30"},
		{51.5074, "51.5074"},
		{-0.1278, "-0.1278"},
		{1e21, "1e+21"},
		{"text", "text"},
		{[]interface{}{"a", 1.0}, `["a",1]`},
		{map[string]interface{}{"b": 2.0, "a": 1.0}, `{"a":1,"b":2}`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ToString(tt.in))
	}
}

func TestParseNumber(t *testing.T) {
	valid := map[string]float64{
		"42":        42,
		" 4.7 ":     4.7,
		"-3":        -3,
		"1e3":       1000,
		"0x10":      16,
		"0b101":     5,
		"Infinity":  math.Inf(1),
		"-Infinity": math.Inf(-1),
	}
	for in, want := range valid {
		got, ok := ParseNumber(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "  ", "abc", "NaN", "inf", "1_000", "12px", "true"} {
		_, ok := ParseNumber(in)
		assert.False(t, ok, in)
	}
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsBooleanString("true"))
	assert.False(t, IsBooleanString("True"))
	assert.True(t, IsNullString("null"))
	assert.True(t, IsEmptyString(" \t"))
	assert.False(t, IsEmptyString(" a "))
	assert.True(t, IsNumberString("3.5"))
}

func TestToNumber(t *testing.T) {
	n, ok := ToNumber("12")
	require.True(t, ok)
	assert.Equal(t, 12.0, n)

	n, ok = ToNumber(true)
	require.True(t, ok)
	assert.Equal(t, 1.0, n)

	_, ok = ToNumber("twelve")
	assert.False(t, ok)

	_, ok = ToNumber([]interface{}{})
	assert.False(t, ok)
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(1, 1.0))
	assert.True(t, Equal("a", "a"))
	assert.False(t, Equal("1", 1))
	assert.True(t, Equal(nil, nil))
	assert.True(t, Equal([]interface{}{1}, []interface{}{1.0}))
	assert.True(t, Equal(map[string]interface{}{"a": []string{"x"}}, map[string]interface{}{"a": []interface{}{"x"}}))
	assert.False(t, Equal(map[string]interface{}{"a": 1}, map[string]interface{}{"a": 2}))
}

func TestCompare(t *testing.T) {
	c, ok := Compare(3, 2)
	require.True(t, ok)
	assert.Equal(t, 1, c)

	c, ok = Compare("10", 9)
	require.True(t, ok)
	assert.Equal(t, 1, c)

	c, ok = Compare("apple", "banana")
	require.True(t, ok)
	assert.Equal(t, -1, c)

	_, ok = Compare("apple", 3)
	assert.False(t, ok)
}

func TestExtend(t *testing.T) {
	data := map[string]interface{}{"name": "Ana", "index": 9}
	out := Extend(data, map[string]interface{}{"index": 0, "item": "x"})

	assert.Equal(t, "Ana", out["name"])
	assert.Equal(t, 0, out["index"])
	assert.Equal(t, "x", out["item"])
	assert.Equal(t, 9, data["index"], "original data must not change")
	assert.NotContains(t, data, "item")

	scalar := Extend("not a map", map[string]interface{}{"index": 1})
	assert.Equal(t, map[string]interface{}{"index": 1}, scalar)
}

func TestClone(t *testing.T) {
	orig := map[string]interface{}{"list": []interface{}{map[string]interface{}{"a": 1}}}
	cp := Clone(orig).(map[string]interface{})
	cp["list"].([]interface{})[0].(map[string]interface{})["a"] = 2

	assert.Equal(t, 1, orig["list"].([]interface{})[0].(map[string]interface{})["a"])
}
