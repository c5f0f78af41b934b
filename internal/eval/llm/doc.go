// Package llm calls a language model for the llm and llmRoute template
// helpers.
//
// The provider client comes from dago-adapters; Client adds the default
// model, a per-call timeout and route matching on top of it.
//
// Example usage:
//
//	provider, err := llm.NewProvider("anthropic", apiKey, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client := llm.NewClient(llm.FromPort(provider, "claude-sonnet-4-20250514"), 30*time.Second, logger)
//
//	target, err := client.Route(ctx, "Classify: refund please", map[string]string{
//	    "billing": "billing-flow",
//	    "support": "support-flow",
//	}, "triage")
//
// Responses match routes exactly first, then case-insensitively, then by the
// first route key (in sorted order) the response contains.
package llm
