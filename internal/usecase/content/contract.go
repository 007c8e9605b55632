package content

import "context"

// TextGenerationProvider is a single synchronous round trip to a
// generative text backend. Implementations may time out or fail; the
// generator treats every failure the same way and falls back.
type TextGenerationProvider interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
