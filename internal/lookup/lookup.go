// Package lookup queries a web-search collaborator for verified statistics.
// The client speaks the OpenAI chat-completions dialect, which Perplexity's
// API implements, so the base URL selects the backend.
package lookup

import "context"

// PostContext describes the post a claim was pulled from. It steers the
// search toward the post's subject area.
type PostContext struct {
	Topic    string
	Category string
}

// Result is a collaborator response for one claim
type Result struct {
	Content   string   `json:"content"`
	Citations []string `json:"citations"`
	Success   bool     `json:"success"`
	Error     string   `json:"error,omitempty"`
}

// Client finds verified data for statistical claims
type Client interface {
	EnrichStatistic(ctx context.Context, claim string, post PostContext) (Result, error)
}
