// Package cel provides a CEL (Common Expression Language) evaluator for the
// cel template helper.
//
// CEL is a non-Turing complete expression language that provides fast, safe evaluation
// of conditions and computed values. The template data is bound to the data variable
// and results come back in JSON shape (float64 numbers, []interface{},
// map[string]interface{}).
//
// Example usage:
//
//	evaluator, err := cel.NewEvaluator()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	data := map[string]interface{}{
//	    "priority": "high",
//	    "score":    0.95,
//	}
//
//	result, err := evaluator.Evaluate(ctx, "data.priority == 'high' && data.score > 0.9", data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	matched := result.(bool) // true
//
// Supported operations:
//   - Comparisons: ==, !=, <, <=, >, >=
//   - Boolean logic: &&, ||, !
//   - String operations: contains, startsWith, endsWith, matches
//   - Arithmetic: +, -, *, /, %
//   - List operations: in, size, map, filter, exists, all
//   - Map access: data.field, data["field"], has(data.field)
package cel
