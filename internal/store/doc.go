// Package store persists named templates in Redis.
//
// Templates are stored as JSON strings under a key prefix so that workers can
// render them by name instead of receiving the full template with every
// request.
//
// Example usage:
//
//	templates := store.NewRedisTemplateStore(redisClient, "langjson:template:", logger)
//
//	err := templates.Save(ctx, "greeting", map[string]interface{}{
//	    "message": "Hello {{#var name}}",
//	})
//
//	tmpl, err := templates.Load(ctx, "greeting")
//	if errors.Is(err, store.ErrTemplateNotFound) {
//	    // unknown name
//	}
package store
