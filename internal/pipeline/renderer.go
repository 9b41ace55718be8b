package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"statgraft/internal/model"
)

// RenderJSON writes v as indented JSON
func RenderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ChartSummary renders a console report for a chart-mode run
func ChartSummary(r *model.ChartResult) string {
	if !r.Success {
		return fmt.Sprintf("Chart generation failed: %s\n", r.Error)
	}
	if len(r.Charts) == 0 {
		return "No charts generated\n"
	}

	var b strings.Builder
	b.WriteString("=== CHART GENERATION REPORT ===\n\n")
	fmt.Fprintf(&b, "Statistics found: %d\n", r.StatisticsFound)
	fmt.Fprintf(&b, "Charts generated: %d\n\n", len(r.Charts))
	b.WriteString("Charts:\n")
	for i, c := range r.Charts {
		fmt.Fprintf(&b, "  %d. %s (%s)\n", i+1, c.Title, c.Shape)
	}
	b.WriteString("\nCharts embedded in content\n")
	return b.String()
}

// EnrichSummary renders a console report for an enrichment run
func EnrichSummary(r *model.EnrichResult) string {
	if !r.Success {
		return fmt.Sprintf("Statistics enrichment failed: %s\n", r.Error)
	}
	if len(r.Replacements) == 0 {
		return "No statistics enriched (none found or all failed)\n"
	}

	var b strings.Builder
	b.WriteString("=== STATISTICS ENRICHMENT REPORT ===\n\n")
	fmt.Fprintf(&b, "Statistics enriched: %d\n", len(r.Replacements))
	fmt.Fprintf(&b, "Citations added: %d\n", len(r.Citations))
	if r.Attempted > 0 {
		fmt.Fprintf(&b, "Success rate: %d%%\n", len(r.Replacements)*100/r.Attempted)
	}

	if len(r.Citations) > 0 {
		b.WriteString("\nCitations:\n")
		shown := r.Citations
		if len(shown) > 3 {
			shown = shown[:3]
		}
		for i, c := range shown {
			if len(c) > 80 {
				c = c[:80]
			}
			fmt.Fprintf(&b, "  %d. %s\n", i+1, c)
		}
		if rest := len(r.Citations) - len(shown); rest > 0 {
			fmt.Fprintf(&b, "  ... and %d more\n", rest)
		}
	}

	if len(r.Checks) > 0 {
		dead := 0
		stale := 0
		for _, check := range r.Checks {
			if !check.Accessible {
				dead++
			}
			if check.Stale {
				stale++
			}
		}
		fmt.Fprintf(&b, "\nCitation checks: %d probed, %d unreachable, %d stale\n", len(r.Checks), dead, stale)
	}

	return b.String()
}

// SuggestSummary renders a console report for a suggestion run
func SuggestSummary(r *model.SuggestResult) string {
	if !r.Success {
		return fmt.Sprintf("Suggestion analysis failed: %s\n", r.Error)
	}
	if len(r.Suggestions) == 0 {
		return "No visual suggestions\n"
	}

	counts := map[model.Tier]int{}
	for _, s := range r.Suggestions {
		counts[s.Priority]++
	}

	var b strings.Builder
	b.WriteString("=== VISUAL SUGGESTIONS REPORT ===\n\n")
	fmt.Fprintf(&b, "Total suggestions: %d (high: %d, medium: %d, low: %d)\n\n",
		len(r.Suggestions), counts[model.TierHigh], counts[model.TierMedium], counts[model.TierLow])

	for i, s := range r.Suggestions {
		fmt.Fprintf(&b, "  %d. [%s] %s (line %d, %s)\n", i+1, s.Priority, s.Title, s.Line, s.EstimatedTime)
		fmt.Fprintf(&b, "     %s\n", s.Description)
		fmt.Fprintf(&b, "     Tool: %s\n", s.Tool)
	}

	fmt.Fprintf(&b, "\nEstimated total time: %s\n", estimatedTotalTime(r.Suggestions))
	return b.String()
}

var leadingMinutesRe = regexp.MustCompile(`\d+`)

// estimatedTotalTime sums the lower bound of each suggestion's estimate
func estimatedTotalTime(suggestions []model.Suggestion) string {
	total := 0
	for _, s := range suggestions {
		if m := leadingMinutesRe.FindString(s.EstimatedTime); m != "" {
			if n, err := strconv.Atoi(m); err == nil {
				total += n
			}
		}
	}
	return fmt.Sprintf("%d-%d minutes", total, total+30)
}
