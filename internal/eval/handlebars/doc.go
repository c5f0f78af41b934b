// Package handlebars renders Handlebars text templates for the render helper.
//
// Directive templates build JSON values; some outputs are better written as
// free text, such as prompts and messages. The render helper hands such text
// to this package together with the current data.
//
// Example usage:
//
//	engine := handlebars.NewEngine()
//
//	out, err := engine.Render("Hello {{uppercase name}}, you have {{len items}} items", map[string]interface{}{
//	    "name":  "ana",
//	    "items": []interface{}{"a", "b"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// out: "Hello ANA, you have 2 items"
//
// Available helpers:
//   - uppercase, lowercase, trim
//   - default: second argument when the first is empty
//   - eq, ne, gt, lt: comparisons, numbers compare numerically
//   - contains, join, len
//   - json: the value encoded as JSON
package handlebars
