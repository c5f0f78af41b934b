// Package template provides the JSON template engine.
//
// A template is any JSON-shaped value. Strings inside it may embed directives
// of the form {{#helper args}}, which call a registered helper and splice its
// result back into the string. Object keys may be directives too: the helper
// receives the key's value as its inner template, which is how iteration and
// conditional helpers produce structure.
//
// Example usage:
//
//	engine := template.NewEngine()
//
//	tmpl := map[string]interface{}{
//	    "title": "{{#uppercase (var name)}}",
//	    "users": map[string]interface{}{
//	        "{{#each users}}": map[string]interface{}{
//	            "name": "{{#var item.name}}",
//	            "rank": "{{#add index 1}}",
//	        },
//	    },
//	}
//	data := map[string]interface{}{
//	    "name":  "team",
//	    "users": []interface{}{
//	        map[string]interface{}{"name": "Ana"},
//	        map[string]interface{}{"name": "Bo"},
//	    },
//	}
//
//	out, err := engine.ApplyTemplate(ctx, tmpl, data)
//	// out: {"title": "TEAM", "users": [{"name": "Ana", "rank": 1}, {"name": "Bo", "rank": 2}]}
//
// Directive arguments are space separated. Quoted spans ('...' or "...") are
// string literals, numbers and true/false are parsed, anything else is looked
// up as a path in the data (a.b, a[0], a["key"]) and falls back to the bare
// word. Parenthesized groups call another helper first:
//
//	{{#arrayJoin (split 'a,b,c' ',') '-'}}   # "a-b-c"
//	{{#repeat (concat 'x' (var sep)) 3}}      # groups nest, innermost first
//
// A string that is a single directive yields the helper's result with its own
// type (number, bool, array, object, nil); mixed text yields a string.
//
// Custom helpers:
//
//	engine.RegisterHelper("shout", func(call *template.Call) (interface{}, error) {
//	    s, err := call.String(0)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return strings.ToUpper(s) + "!", nil
//	})
package template
