package llm

import (
	"context"
)

// Client is the external generative collaborator: prompt in, loosely
// structured text out. Implementations must respect the context
// deadline; callers fall back to the heuristic generator on any error.
type Client interface {
	SuggestCombos(ctx context.Context, prompt string) (string, error)
}
