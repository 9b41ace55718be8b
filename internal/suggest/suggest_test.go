package suggest

import (
	"strings"
	"testing"
	"unicode/utf8"

	"statgraft/internal/model"
)

func byType(suggestions []model.Suggestion, t model.SuggestionType) []model.Suggestion {
	var out []model.Suggestion
	for _, s := range suggestions {
		if s.Type == t {
			out = append(out, s)
		}
	}
	return out
}

func TestSuggest_Statistics(t *testing.T) {
	content := `# Results

Traffic grew 45% while costs dropped to $1,200 with a 3.5x return.
`
	suggestions := New().Suggest(content)

	charts := byType(suggestions, model.SuggestChart)
	if len(charts) != 1 {
		t.Fatalf("expected 1 chart suggestion, got %d", len(charts))
	}

	c := charts[0]
	if c.Priority != model.TierHigh {
		t.Errorf("expected high priority, got %s", c.Priority)
	}
	if c.Line != 3 {
		t.Errorf("expected line 3, got %d", c.Line)
	}
	if len(c.Data) != 3 {
		t.Errorf("expected 3 values, got %v", c.Data)
	}
	if !strings.Contains(c.Description, "45%") {
		t.Errorf("expected value preview in description: %s", c.Description)
	}
}

func TestSuggest_StatisticsIgnoresHeadingsAndFences(t *testing.T) {
	content := "# 50% heading\n```sh 90%\nNothing numeric here.\n"
	suggestions := New().Suggest(content)

	if len(byType(suggestions, model.SuggestChart)) != 0 {
		t.Error("expected no chart suggestion")
	}
}

func TestSuggest_Screenshots(t *testing.T) {
	content := `## Setup

Navigate to the campaign settings page first.
Click on the conversions tab.
Open the Google Analytics property.
Enable enhanced measurement there.
`
	suggestions := New().Suggest(content)

	shots := byType(suggestions, model.SuggestScreenshot)
	if len(shots) != 3 {
		t.Fatalf("expected screenshot cap of 3, got %d", len(shots))
	}

	for _, s := range shots {
		if s.Priority != model.TierHigh {
			t.Errorf("expected high priority, got %s", s.Priority)
		}
		if !strings.HasPrefix(s.Title, "Screenshot: ") {
			t.Errorf("unexpected title: %s", s.Title)
		}
	}

	// Google Analytics line names the specific interface
	found := false
	for _, s := range shots {
		if len(s.Data) == 1 && s.Data[0] == "Google Analytics 4 interface" {
			found = true
		}
	}
	if !found {
		t.Error("expected Google Analytics screenshot subject")
	}
}

func TestSuggest_ComparisonSentence(t *testing.T) {
	content := "Google Ads vs Facebook Ads for local reach.\n"
	suggestions := New().Suggest(content)

	comps := byType(suggestions, model.SuggestComparison)
	if len(comps) != 1 {
		t.Fatalf("expected 1 comparison, got %d", len(comps))
	}
	if comps[0].Priority != model.TierMedium {
		t.Errorf("expected medium priority, got %s", comps[0].Priority)
	}
	if !strings.Contains(comps[0].Description, " vs ") {
		t.Errorf("unexpected description: %s", comps[0].Description)
	}
}

func TestSuggest_ComparisonBoldList(t *testing.T) {
	content := `Our channel breakdown:

- **Organic:** slow but compounding
- **Paid:** fast but rented
- **Email:** owned audience
`
	suggestions := New().Suggest(content)

	comps := byType(suggestions, model.SuggestComparison)
	if len(comps) == 0 {
		t.Fatal("expected a comparison from the bold list")
	}
	c := comps[0]
	if c.Title != "Comparison Table" {
		t.Errorf("unexpected title: %s", c.Title)
	}
	if len(c.Data) != 3 || c.Data[0] != "Organic" {
		t.Errorf("unexpected items: %v", c.Data)
	}
}

func TestSuggest_CaseStudy(t *testing.T) {
	content := `## Client results

We worked with a local plumber on search.
Their organic traffic rose 120% in six months.
Cost per lead fell from $85 to $31.
`
	suggestions := New().Suggest(content)

	studies := byType(suggestions, model.SuggestBeforeAfter)
	if len(studies) == 0 {
		t.Fatal("expected a before/after suggestion")
	}
	s := studies[0]
	if s.Priority != model.TierMedium {
		t.Errorf("expected medium priority, got %s", s.Priority)
	}
	if len(s.Data) < 2 {
		t.Errorf("expected at least 2 metrics, got %v", s.Data)
	}
}

func TestSuggest_CaseStudyNeedsTwoMetrics(t *testing.T) {
	content := "We worked with a client who loved the results overall.\n"
	suggestions := New().Suggest(content)

	if len(byType(suggestions, model.SuggestBeforeAfter)) != 0 {
		t.Error("expected no suggestion without metrics")
	}
}

func TestSuggest_Workflow(t *testing.T) {
	content := `## Our Audit Process

1. Crawl the site for technical issues
2. Review on-page targeting
3. Benchmark against competitors
4. Prioritize fixes by impact
`
	suggestions := New().Suggest(content)

	flows := byType(suggestions, model.SuggestFlowchart)
	if len(flows) != 1 {
		t.Fatalf("expected 1 flowchart, got %d", len(flows))
	}
	f := flows[0]
	if f.Priority != model.TierLow {
		t.Errorf("expected low priority, got %s", f.Priority)
	}
	if len(f.Data) != 4 {
		t.Errorf("expected 4 steps, got %v", f.Data)
	}
	if f.Title != "Flowchart: Our Audit Process" {
		t.Errorf("unexpected title: %s", f.Title)
	}
}

func TestSuggest_WorkflowMultibyteSteps(t *testing.T) {
	// The first step is longer than 50 runes with a multibyte character
	// straddling byte 50; truncation must stay on rune boundaries.
	long := strings.Repeat("a", 49) + "é and some trailing detail past the cutoff"
	content := "## Review Process\n\n1. " + long + "\n2. Check the thing\n3. Ship the thing\n"

	suggestions := New().Suggest(content)

	flows := byType(suggestions, model.SuggestFlowchart)
	if len(flows) != 1 {
		t.Fatalf("expected 1 flowchart, got %d", len(flows))
	}
	step := flows[0].Data[0]
	if !utf8.ValidString(step) {
		t.Errorf("step is not valid UTF-8: %q", step)
	}
	if n := utf8.RuneCountInString(step); n != 50 {
		t.Errorf("expected 50 runes, got %d: %q", n, step)
	}
}

func TestSuggest_WorkflowNeedsThreeSteps(t *testing.T) {
	content := `## Simple Process

1. Do the thing
2. Check the thing
`
	suggestions := New().Suggest(content)

	if len(byType(suggestions, model.SuggestFlowchart)) != 0 {
		t.Error("expected no flowchart for two steps")
	}
}

func TestSuggest_Ordering(t *testing.T) {
	content := `## Our Review Process

1. Gather analytics exports
2. Compare month over month
3. Write the summary

We worked with a dealership client recently.
Sales conversions rose 60% while spend fell $4,000.

Navigate to the reporting dashboard for the raw data.
`
	suggestions := New().Suggest(content)
	if len(suggestions) < 3 {
		t.Fatalf("expected several suggestions, got %d", len(suggestions))
	}

	lastRank := 0
	for _, s := range suggestions {
		if s.Priority.Rank() < lastRank {
			t.Fatalf("suggestions out of priority order: %+v", suggestions)
		}
		lastRank = s.Priority.Rank()
	}
}
