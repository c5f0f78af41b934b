package value

import (
	"encoding/json"
	"reflect"
)

// Kind is the shape of a JSON value
type Kind int

const (
	// Null is nil
	Null Kind = iota
	// Bool is a bool
	Bool
	// Number is a float64 (or any Go numeric type before normalization)
	Number
	// String is a string
	String
	// Array is a []interface{} (or any slice before normalization)
	Array
	// Object is a map[string]interface{} (or any string-keyed map before normalization)
	Object
	// Invalid is anything that has no JSON shape, such as a func or a channel
	Invalid
)

// String returns the lowercase name of the kind
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "invalid"
	}
}

// KindOf classifies v
func KindOf(v interface{}) Kind {
	switch v.(type) {
	case nil:
		return Null
	case bool:
		return Bool
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return Number
	case string:
		return String
	case []interface{}:
		return Array
	case map[string]interface{}:
		return Object
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return Null
		}
		return KindOf(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		return Array
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return Object
		}
	case reflect.Struct:
		return Object
	case reflect.Bool:
		return Bool
	case reflect.String:
		return String
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Number
	}
	return Invalid
}

// IsComposite reports whether v is an array or an object
func IsComposite(v interface{}) bool {
	k := KindOf(v)
	return k == Array || k == Object
}

// Normalize converts v into its canonical JSON shape.
//
// Canonical containers ([]interface{} and map[string]interface{}) are returned
// as they are, without walking their elements, so data contexts handed in by
// callers are never copied.
func Normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case nil, bool, float64, string, []interface{}, map[string]interface{}:
		return v
	case int:
		return float64(t)
	case int8:
		return float64(t)
	case int16:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case uint:
		return float64(t)
	case uint8:
		return float64(t)
	case uint16:
		return float64(t)
	case uint32:
		return float64(t)
	case uint64:
		return float64(t)
	case float32:
		return float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return t.String()
		}
		return f
	case []string:
		out := make([]interface{}, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	case map[string]string:
		out := make(map[string]interface{}, len(t))
		for k, s := range t {
			out[k] = s
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return Normalize(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return []interface{}{}
		}
		out := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = Normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return viaJSON(v)
		}
		out := make(map[string]interface{}, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = Normalize(iter.Value().Interface())
		}
		return out
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Struct:
		return viaJSON(v)
	}
	return v
}

// viaJSON round-trips v through encoding/json; values that cannot be encoded
// are returned unchanged
func viaJSON(v interface{}) interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}

// Clone returns a deep copy of a canonical value
func Clone(v interface{}) interface{} {
	switch t := v.(type) {
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = Clone(e)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[k] = Clone(e)
		}
		return out
	default:
		return Normalize(v)
	}
}

// Extend returns a shallow copy of data with bindings merged on top.
// data itself is never modified. When data is not an object the result only
// holds the bindings.
func Extend(data interface{}, bindings map[string]interface{}) map[string]interface{} {
	base, _ := data.(map[string]interface{})
	out := make(map[string]interface{}, len(base)+len(bindings))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range bindings {
		out[k] = v
	}
	return out
}
