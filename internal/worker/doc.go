// Package worker implements the template worker lifecycle and Redis Streams integration.
//
// The worker reads render and register requests from a Redis Stream through a
// consumer group, applies templates with the template engine, and publishes
// results back on a result stream. Failures are published on the result
// stream name suffixed with ".errors".
//
// Example usage:
//
//	cfg, _ := config.Load()
//	redisClient := redis.NewClient(&redis.Options{...})
//	engine := template.NewEngine(template.WithMaxDepth(cfg.MaxDepth))
//	templates := store.NewRedisTemplateStore(redisClient, cfg.TemplatePrefix, logger)
//
//	worker := worker.NewWorker(cfg, redisClient, engine, templates, logger)
//	if err := worker.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer worker.Stop()
//
// A render request carries an inline template or the name of a stored one:
//
//	{"request_id": "r1", "template": {"greeting": "Hi {{#var name}}"}, "data": {"name": "Ana"}}
//	{"request_id": "r2", "template_name": "welcome", "data": {"name": "Ana"}}
//
// A register request stores a template under a name:
//
//	{"request_id": "r3", "op": "register", "template_name": "welcome", "template": "Hi {{#var name}}"}
//
// Health checks are provided via a separate HTTP server:
//
//	healthServer := worker.NewHealthServer(8082, redisClient, engine, logger)
//	healthServer.Start()
//	defer healthServer.Stop()
package worker
