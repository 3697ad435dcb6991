// Package tokens wraps tiktoken-go for budget-aware truncation of prompt
// sections, so the Responder can bound what it sends the Generator by token
// count rather than a fixed character guess.
package tokens

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates and truncates text by token count for one encoding.
type Counter struct {
	encoding *tiktoken.Tiktoken
}

var (
	defaultOnce    sync.Once
	defaultCounter *Counter
)

// Default returns a process-wide Counter using the cl100k_base encoding
// (the encoding openai-go's chat models use).
func Default() *Counter {
	defaultOnce.Do(func() {
		enc, err := tiktoken.GetEncoding(tiktoken.MODEL_CL100K_BASE)
		if err != nil {
			// the encoding could not be loaded, so degrade to a nil encoding
			// and let Count/Truncate fall back to a rune-count approximation.
			defaultCounter = &Counter{}
			return
		}
		defaultCounter = &Counter{encoding: enc}
	})
	return defaultCounter
}

// Count returns the token count of text, approximated by rune count when no
// encoding could be loaded.
func (c *Counter) Count(text string) int {
	if c == nil || c.encoding == nil {
		return len([]rune(text))
	}
	return len(c.encoding.Encode(text, nil, nil))
}

// Truncate returns the longest prefix of text whose token count does not
// exceed maxTokens, appending "..." when truncation occurred.
func (c *Counter) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return ""
	}
	if c == nil || c.encoding == nil {
		r := []rune(text)
		if len(r) <= maxTokens {
			return text
		}
		return string(r[:maxTokens]) + "..."
	}

	ids := c.encoding.Encode(text, nil, nil)
	if len(ids) <= maxTokens {
		return text
	}
	return strings.TrimSpace(c.encoding.Decode(ids[:maxTokens])) + "..."
}
