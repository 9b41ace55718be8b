// Package group buckets extracted statistics into chart-ready groups.
//
// A document yields at most two groups per run, chosen by a fixed kind
// precedence (before-after, then key-metrics, then cost-comparison) rather
// than by a global priority sort. The cap keeps a post from drowning in
// visual inserts; the precedence order is a deliberate policy, not an
// emergent one.
package group

import (
	"fmt"
	"strings"

	"statgraft/internal/model"
)

const (
	maxGroups = 2

	maxPairLineGap = 3 // max line distance between the two halves of a pair
	keyMetricsMax  = 5
	keyMetricsMin  = 3
	costMax        = 4
	costMin        = 2
)

// pairCues mark a consecutive statistic pair as a before/after comparison.
// "from" and "to" are common enough to pair unrelated statistics; the set
// is kept as-is because no ground truth exists to tune it against.
var pairCues = []string{"before", "after", "from", "to", "increased", "improved"}

// Grouper buckets statistics into semantic groups
type Grouper struct{}

// New creates a new grouper
func New() *Grouper {
	return &Grouper{}
}

// Group evaluates the three group rules in fixed order, each contributing
// at most one group, and returns at most two groups.
func (g *Grouper) Group(stats []model.Statistic) []model.Group {
	var groups []model.Group

	if pairs := beforeAfterPairs(stats); len(pairs) > 0 {
		groups = append(groups, model.Group{
			Kind:  model.GroupBeforeAfter,
			Title: "Performance Improvement",
			Pairs: pairs,
		})
	}

	if metrics := keyMetrics(stats); len(metrics) >= keyMetricsMin {
		groups = append(groups, model.Group{
			Kind:  model.GroupKeyMetrics,
			Title: "Key Statistics",
			Stats: metrics,
		})
	}

	if costs := costStats(stats); len(costs) >= costMin {
		groups = append(groups, model.Group{
			Kind:  model.GroupCostComparison,
			Title: "Cost Analysis",
			Stats: costs,
		})
	}

	if len(groups) > maxGroups {
		groups = groups[:maxGroups]
	}
	return groups
}

// beforeAfterPairs scans consecutive statistics for pairs within three
// lines of each other whose combined context carries a pairing cue.
func beforeAfterPairs(stats []model.Statistic) []model.StatPair {
	var pairs []model.StatPair

	for i := 0; i+1 < len(stats); i++ {
		current, next := stats[i], stats[i+1]

		gap := current.Line - next.Line
		if gap < 0 {
			gap = -gap
		}
		if gap > maxPairLineGap {
			continue
		}

		combined := strings.ToLower(current.Context + " " + next.Context)
		for _, cue := range pairCues {
			if strings.Contains(combined, cue) {
				pairs = append(pairs, model.StatPair{Before: current, After: next})
				break
			}
		}
	}

	return pairs
}

// keyMetrics takes up to the first five percentage or improvement
// statistics in extraction order.
func keyMetrics(stats []model.Statistic) []model.Statistic {
	var metrics []model.Statistic
	for _, s := range stats {
		if s.Kind != model.KindPercentage && s.Kind != model.KindImprovement {
			continue
		}
		metrics = append(metrics, s)
		if len(metrics) == keyMetricsMax {
			break
		}
	}
	return metrics
}

// costStats takes up to the first four currency statistics
func costStats(stats []model.Statistic) []model.Statistic {
	var costs []model.Statistic
	for _, s := range stats {
		if s.Kind != model.KindCurrency {
			continue
		}
		costs = append(costs, s)
		if len(costs) == costMax {
			break
		}
	}
	return costs
}

// Describe returns a short human-readable summary of a group
func Describe(g model.Group) string {
	return fmt.Sprintf("%s (%s, %d members)", g.Title, g.Kind, g.Size())
}
