package model

import "time"

// Metadata is the post metadata handed to the pipeline alongside the body
type Metadata struct {
	Title    string   `yaml:"title" json:"title"`
	Category string   `yaml:"category" json:"category,omitempty"`
	Tags     []string `yaml:"tags" json:"tags,omitempty"`
}

// ChartResult is the outcome of a chart-mode run. On failure Content holds
// the original, unmodified input text.
type ChartResult struct {
	Content         string  `json:"-"`
	Charts          []Chart `json:"charts"`
	StatisticsFound int     `json:"statistics_found"`
	Success         bool    `json:"success"`
	Error           string  `json:"error,omitempty"`
}

// EnrichResult is the outcome of an enrichment-mode run. On failure Content
// holds the original, unmodified input text.
type EnrichResult struct {
	Content      string          `json:"-"`
	Attempted    int             `json:"attempted"` // Statistics submitted to the lookup collaborator
	Replacements []Replacement   `json:"replacements"`
	Citations    []string        `json:"citations"` // Deduplicated, in first-seen order
	Checks       []CitationCheck `json:"citation_checks,omitempty"`
	Success      bool            `json:"success"`
	Error        string          `json:"error,omitempty"`
}

// SuggestResult is the outcome of a suggestion-mode run; it never mutates
// the document.
type SuggestResult struct {
	Suggestions []Suggestion `json:"suggestions"`
	Success     bool         `json:"success"`
	Error       string       `json:"error,omitempty"`
}

// CitationCheck is the accessibility report for one citation URL
type CitationCheck struct {
	URL           string     `json:"url"`
	Accessible    bool       `json:"accessible"`
	StatusCode    int        `json:"status_code,omitempty"`
	Title         string     `json:"title,omitempty"`
	RobotsAllowed bool       `json:"robots_allowed"`
	LastModified  *time.Time `json:"last_modified,omitempty"`
	Stale         bool       `json:"stale"` // Last-Modified more than a year ago
	Error         string     `json:"error,omitempty"`
}
