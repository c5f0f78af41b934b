// Package config provides configuration management for the template worker.
//
// Configuration is loaded from environment variables and validated on startup.
// All configuration options have sensible defaults for development. The llm
// helpers are only enabled when LLM_API_KEY is set.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg)
package config
