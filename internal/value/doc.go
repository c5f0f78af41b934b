// Package value models the JSON-shaped values that flow through the template engine.
//
// Templates, data contexts and helper results all share one closed set of shapes,
// the ones encoding/json produces when decoding into an interface{}:
//
//	nil                     Null
//	bool                    Bool
//	float64                 Number
//	string                  String
//	[]interface{}           Array
//	map[string]interface{}  Object
//
// Helpers written in Go often return other native types (int, []string,
// map[string]int). Normalize converts those into the canonical shapes so the
// engine can classify every value with a single switch on KindOf.
//
// Example usage:
//
//	v := value.Normalize([]string{"a", "b"}) // []interface{}{"a", "b"}
//	value.KindOf(v)                          // value.Array
//	value.ToString(3.0)                      // "3"
//	value.Truthy("")                         // false
package value
