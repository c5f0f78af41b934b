// Package extensions registers helpers backed by external libraries on a
// template engine.
//
// Example usage:
//
//	engine := template.NewEngine()
//	evaluator, _ := cel.NewEvaluator()
//
//	extensions.Register(engine, extensions.Options{
//	    CEL:        evaluator,
//	    Handlebars: handlebars.NewEngine(),
//	})
//
//	out, _ := engine.ApplyTemplate(ctx, map[string]interface{}{
//	    "vip":   "{{#cel 'data.total > 100.0'}}",
//	    "names": "{{#jsonPath order '$.items[*].name'}}",
//	    "id":    "{{#uuid}}",
//	}, data)
//
// Helpers:
//   - cel <expr>: CEL expression over the data (needs Options.CEL)
//   - render <source> [object]: Handlebars text (needs Options.Handlebars)
//   - jsonPath <value> <expr>: every JSONPath match
//   - jsonGet <json> <path>, jsonSet <json> <path> <value>: gjson/sjson paths
//   - yamlStringify <value>, yamlParse <string>
//   - markdown <string>: HTML
//   - uuid, humanizeBytes <n>, ordinal <n>
//   - llm <prompt>, llmRoute <prompt> <routes> [fallback] (needs Options.LLM)
package extensions
