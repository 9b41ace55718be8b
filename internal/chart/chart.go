// Package chart synthesizes chart artifacts from statistic groups and
// renders them as embeddable markup.
package chart

import (
	"fmt"

	"github.com/google/uuid"

	"statgraft/internal/model"
)

// Synthesize maps a group onto a chart shape:
//
//	before-after    -> two-series bar chart (Before / After)
//	key-metrics     -> single-series horizontal bar chart
//	cost-comparison -> single-series bar chart, currency-typed
//
// Chart IDs carry a UUID fragment so they are unique within a run; the
// group kind alone would collide when the grouper ever emits two of a kind.
func Synthesize(g model.Group) model.Chart {
	c := model.Chart{
		ID:    newID(g.Kind),
		Group: g.Kind,
		Title: g.Title,
	}

	switch g.Kind {
	case model.GroupBeforeAfter:
		c.Shape = model.ShapeBar
		before := model.Series{Label: "Before"}
		after := model.Series{Label: "After"}
		for i, pair := range g.Pairs {
			c.Labels = append(c.Labels, fmt.Sprintf("Metric %d", i+1))
			before.Data = append(before.Data, pair.Before.Value)
			after.Data = append(after.Data, pair.After.Value)
		}
		c.Series = []model.Series{before, after}

	case model.GroupKeyMetrics:
		c.Shape = model.ShapeHorizontalBar
		series := model.Series{Label: "Value"}
		for _, s := range g.Stats {
			c.Labels = append(c.Labels, shorten(s.Context, 40))
			series.Data = append(series.Data, s.Value)
		}
		c.Series = []model.Series{series}

	case model.GroupCostComparison:
		c.Shape = model.ShapeBar
		series := model.Series{Label: "Cost"}
		for _, s := range g.Stats {
			c.Labels = append(c.Labels, shorten(s.Context, 40))
			series.Data = append(series.Data, s.Value)
		}
		c.Series = []model.Series{series}
	}

	return c
}

// newID returns a run-unique chart identifier
func newID(kind model.GroupKind) string {
	return fmt.Sprintf("chart-%s-%s", kind, uuid.NewString()[:8])
}

// shorten truncates a label with an ellipsis, on rune boundaries so a
// multibyte character is never split.
func shorten(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
