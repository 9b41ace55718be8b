package model

// Chart is the artifact synthesized from a statistic group in chart mode
type Chart struct {
	ID     string    `json:"id"`    // Unique within one run
	Group  GroupKind `json:"group"` // Which group kind produced the chart
	Shape  Shape     `json:"shape"`
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Series []Series  `json:"series"`
}

// Shape selects the visualization shape of a chart
type Shape string

const (
	ShapeBar           Shape = "bar"
	ShapeHorizontalBar Shape = "horizontalBar"
)

// Series is one numeric data series of a chart
type Series struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// Replacement records one enrichment substitution in the document
type Replacement struct {
	Original string `json:"original"`           // The exact line text that was replaced
	New      string `json:"new"`                // Replacement text, citation marker included
	Line     int    `json:"line"`               // 1-based line of the original statistic
	Citation int    `json:"citation,omitempty"` // 1-based index into the citation list; 0 means none
}

// Suggestion is a purely advisory recommendation for a visual element
type Suggestion struct {
	Type          SuggestionType `json:"type"`
	Priority      Tier           `json:"priority"`
	Line          int            `json:"line"` // 1-based source line the suggestion refers to
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Tool          string         `json:"tool"`
	EstimatedTime string         `json:"estimated_time"`
	Data          []string       `json:"data,omitempty"` // Supporting values (metrics, steps, items)
}

// SuggestionType classifies the recommended visual element
type SuggestionType string

const (
	SuggestChart       SuggestionType = "chart"
	SuggestScreenshot  SuggestionType = "screenshot"
	SuggestComparison  SuggestionType = "comparison-table"
	SuggestBeforeAfter SuggestionType = "before-after-chart"
	SuggestFlowchart   SuggestionType = "flowchart"
)

// Tier is the priority tier of a suggestion
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// Rank maps a tier to its sort order (lower sorts first)
func (t Tier) Rank() int {
	switch t {
	case TierHigh:
		return 1
	case TierMedium:
		return 2
	case TierLow:
		return 3
	default:
		return 4
	}
}
