package model

// Statistic represents a single numeric claim found in the text
type Statistic struct {
	Raw      string   `json:"raw"`                 // Matched text exactly as it appeared (e.g. "224%", "$2,800")
	Value    float64  `json:"value"`               // Raw with separators/symbols stripped and parsed; parse failures become 0
	Kind     StatKind `json:"kind"`                // Which pattern matched
	Line     int      `json:"line"`                // 1-based line index in the source text
	Context  string   `json:"context"`             // Up to ~200 chars of surrounding text on the same line
	FullLine string   `json:"full_line,omitempty"` // The whole trimmed source line
	Priority int      `json:"priority,omitempty"`  // Heuristic relevance score
}

// StatKind identifies which extraction pattern produced the statistic.
// A single substring may match several kinds, yielding one record per kind.
type StatKind string

const (
	KindPercentage  StatKind = "percentage"
	KindCurrency    StatKind = "currency"
	KindMultiplier  StatKind = "multiplier"
	KindLargeNumber StatKind = "large_number"
	KindImprovement StatKind = "improvement"
	KindReduction   StatKind = "reduction"
)

// Group is a semantic bundle of related statistics destined for one chart
type Group struct {
	Kind  GroupKind   `json:"kind"`
	Title string      `json:"title"`
	Stats []Statistic `json:"stats,omitempty"` // Members for key-metrics and cost-comparison groups
	Pairs []StatPair  `json:"pairs,omitempty"` // Members for before-after groups
}

// StatPair is a before/after pairing of two adjacent statistics
type StatPair struct {
	Before Statistic `json:"before"`
	After  Statistic `json:"after"`
}

// GroupKind classifies a statistic group. The grouper emits kinds in a
// fixed precedence order: before-after, then key-metrics, then
// cost-comparison.
type GroupKind string

const (
	GroupBeforeAfter    GroupKind = "before-after"
	GroupKeyMetrics     GroupKind = "key-metrics"
	GroupCostComparison GroupKind = "cost-comparison"
)

// AnchorContext returns the context of the group's first member, used to
// locate the chart insertion point in the document.
func (g Group) AnchorContext() string {
	if len(g.Pairs) > 0 {
		return g.Pairs[0].Before.Context
	}
	if len(g.Stats) > 0 {
		return g.Stats[0].Context
	}
	return ""
}

// Size returns the number of members in the group
func (g Group) Size() int {
	if g.Kind == GroupBeforeAfter {
		return len(g.Pairs)
	}
	return len(g.Stats)
}
