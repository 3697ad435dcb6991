// Package generator implements §4.7/§4.8's Generator leaf: chat-style text
// generation from messages plus options. The package has no template
// fallback of its own; when no Generator is wired, the pipeline's Responder
// renders its own Markdown template instead.
package generator

import "context"

// Role is a chat message role.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one chat turn.
type Message struct {
	Role    Role
	Content string
}

// Options tunes a single generation call.
type Options struct {
	Temperature float64
	MaxTokens   int
}

// DefaultOptions mirrors the conservative, deterministic-leaning defaults a
// legal-answer service wants.
var DefaultOptions = Options{Temperature: 0.2, MaxTokens: 1024}

// Generator is the narrow chat-completion capability every stage needing
// model access depends on — never constructed ad hoc inside a stage, per
// §9's note on routing all model access through the owning container.
type Generator interface {
	Generate(ctx context.Context, messages []Message, opts Options) (string, error)
}
