package group

import (
	"strings"
	"testing"

	"statgraft/internal/extract"
	"statgraft/internal/model"
)

func extractFrom(t *testing.T, lines ...string) []model.Statistic {
	t.Helper()
	return extract.New().Extract(strings.Join(lines, "\n"))
}

func TestGrouper_BeforeAfterPair(t *testing.T) {
	stats := extractFrom(t,
		"CTR increased from 2.1% to 6.8%",
		"",
		"conversion rate improved from 3.2% to 5.9%",
	)

	groups := New().Group(stats)
	if len(groups) == 0 {
		t.Fatal("expected at least one group")
	}

	g := groups[0]
	if g.Kind != model.GroupBeforeAfter {
		t.Fatalf("expected before-after group first, got %s", g.Kind)
	}
	if len(g.Pairs) == 0 {
		t.Fatal("expected at least one pair")
	}
	if got := g.Pairs[0].Before.Value; got != 2.1 {
		t.Errorf("first pair before value: want 2.1, got %v", got)
	}
	if got := g.Pairs[0].After.Value; got != 6.8 {
		t.Errorf("first pair after value: want 6.8, got %v", got)
	}
}

func TestGrouper_PairLineGapLimit(t *testing.T) {
	stats := []model.Statistic{
		{Raw: "10%", Value: 10, Kind: model.KindPercentage, Line: 1, Context: "improved before the rollout"},
		{Raw: "20%", Value: 20, Kind: model.KindPercentage, Line: 10, Context: "improved after the rollout"},
	}

	if pairs := beforeAfterPairs(stats); len(pairs) != 0 {
		t.Errorf("statistics 9 lines apart must not pair, got %+v", pairs)
	}
}

func TestGrouper_KeyMetricsRequiresThree(t *testing.T) {
	two := extractFrom(t,
		"Organic reach is steady around 12% on most channels",
		"Paid reach holds a narrow 9% share of impressions overall",
	)
	if groups := New().Group(two); len(groups) != 0 {
		t.Errorf("two percentages must not form a group, got %+v", groups)
	}

	four := extractFrom(t,
		"Extensions lift CTR by 15% on average across accounts",
		"Quality scores rise around 11% with tighter ad groups here",
		"Search share sits near 38% with the broader keyword set",
		"Branded queries hold a 24% slice of impressions overall",
	)
	groups := New().Group(four)
	if len(groups) != 1 {
		t.Fatalf("expected exactly one group, got %d", len(groups))
	}
	if groups[0].Kind != model.GroupKeyMetrics {
		t.Errorf("expected key-metrics, got %s", groups[0].Kind)
	}
	if len(groups[0].Stats) != 4 {
		t.Errorf("expected 4 members, got %d", len(groups[0].Stats))
	}
}

func TestGrouper_KeyMetricsCapAtFive(t *testing.T) {
	var lines []string
	for _, pct := range []string{"11%", "12%", "13%", "14%", "15%", "16%", "17%"} {
		lines = append(lines, "Channel performance holds near "+pct+" under the current budget split")
	}
	stats := extractFrom(t, lines...)

	metrics := keyMetrics(stats)
	if len(metrics) != 5 {
		t.Errorf("expected cap of 5 members, got %d", len(metrics))
	}
}

func TestGrouper_CostComparison(t *testing.T) {
	stats := extractFrom(t,
		"Cost per lead dropped between $2.80 and $1.95 during the test",
		"Retainers start around $850 monthly under the standard plan",
	)

	groups := New().Group(stats)

	var cost *model.Group
	for i := range groups {
		if groups[i].Kind == model.GroupCostComparison {
			cost = &groups[i]
		}
	}
	if cost == nil {
		t.Fatalf("expected a cost-comparison group, got %+v", groups)
	}
	if len(cost.Stats) != 3 {
		t.Errorf("expected min(4, found)=3 members, got %d", len(cost.Stats))
	}
}

func TestGrouper_CapAndPrecedence(t *testing.T) {
	// A document qualifying for all three group kinds surfaces only the
	// first two by precedence.
	stats := extractFrom(t,
		"CTR increased from 2.1% to 6.8% after the change",
		"Conversions improved from 3.2% to 5.9% in the same window",
		"Bounce rate settled near 41% once the pages stabilized",
		"Ad spend moved between $1,200 and $900 month over month",
		"Tooling added another $150 monthly on top of media spend",
	)

	groups := New().Group(stats)
	if len(groups) != 2 {
		t.Fatalf("expected the 2-group cap, got %d groups", len(groups))
	}
	if groups[0].Kind != model.GroupBeforeAfter {
		t.Errorf("first group: want before-after, got %s", groups[0].Kind)
	}
	if groups[1].Kind != model.GroupKeyMetrics {
		t.Errorf("second group: want key-metrics, got %s", groups[1].Kind)
	}
}

func TestGrouper_EmptyInput(t *testing.T) {
	if groups := New().Group(nil); len(groups) != 0 {
		t.Errorf("expected no groups for no statistics, got %+v", groups)
	}
}
