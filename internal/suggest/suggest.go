// Package suggest analyzes a post and recommends visual elements to add.
// Suggestions are advisory only; the document is never modified.
package suggest

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"statgraft/internal/model"
)

const (
	maxScreenshots = 3
	maxComparisons = 2
	maxCaseStudies = 2
	maxWorkflows   = 1
	maxChartValues = 5
)

var (
	metricRe        = regexp.MustCompile(`\d+(?:\.\d+)?%|\$[\d,]+|[\d.]+x`)
	comparisonCueRe = regexp.MustCompile(`(?i)\bvs\.?\b|\bversus\b|\bcompared to\b`)
	boldListItemRe  = regexp.MustCompile(`^-\s+\*\*.*?:\*\*`)
	boldListLabelRe = regexp.MustCompile(`\*\*(.*?):\*\*`)
	caseStudyCueRe  = regexp.MustCompile(`(?i)case study|example|we worked with|client|results?`)
	workflowHeadRe  = regexp.MustCompile(`(?i)^#+.*?(workflow|process|framework|step|phase)`)
	workflowStepRe  = regexp.MustCompile(`(?i)^\d+\.|^-\s+\*\*Step|^###?\s*Step`)
	capitalizedRe   = regexp.MustCompile(`[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*`)
	headingPrefixRe = regexp.MustCompile(`^#+\s*`)
)

// technicalKeywords mark instructions a reader will want to see on screen
var technicalKeywords = []string{
	"navigate to", "click on", "select", "configure",
	"enable", "settings", "dashboard", "interface",
	"google ads", "google analytics", "admin panel",
}

// Suggester detects opportunities for visual content
type Suggester struct{}

// New creates a suggester
func New() *Suggester {
	return &Suggester{}
}

// Suggest returns visual recommendations for the document, ordered by
// priority tier and then by source line.
func (s *Suggester) Suggest(content string) []model.Suggestion {
	lines := strings.Split(content, "\n")

	var suggestions []model.Suggestion
	suggestions = append(suggestions, detectStatistics(lines)...)
	suggestions = append(suggestions, detectScreenshots(lines)...)
	suggestions = append(suggestions, detectComparisons(lines)...)
	suggestions = append(suggestions, detectCaseStudies(lines)...)
	suggestions = append(suggestions, detectWorkflows(lines)...)

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Priority != suggestions[j].Priority {
			return suggestions[i].Priority.Rank() < suggestions[j].Priority.Rank()
		}
		return suggestions[i].Line < suggestions[j].Line
	})

	return suggestions
}

// detectStatistics emits one chart suggestion when the post carries metrics
func detectStatistics(lines []string) []model.Suggestion {
	type stat struct {
		line  int
		value string
	}

	var stats []stat
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "#") {
			continue
		}
		for _, m := range metricRe.FindAllString(line, -1) {
			stats = append(stats, stat{line: i + 1, value: m})
		}
	}

	if len(stats) == 0 {
		return nil
	}

	var values []string
	for _, st := range stats {
		values = append(values, st.value)
		if len(values) == maxChartValues {
			break
		}
	}

	preview := values
	if len(preview) > 3 {
		preview = preview[:3]
	}

	return []model.Suggestion{{
		Type:          model.SuggestChart,
		Priority:      model.TierHigh,
		Line:          stats[0].line,
		Title:         "Key Statistics Visualization",
		Description:   fmt.Sprintf("Create a bar chart or infographic showing: %s", strings.Join(preview, ", ")),
		Tool:          "Canva, Google Charts, or Chart.js",
		EstimatedTime: "15-20 minutes",
		Data:          values,
	}}
}

// detectScreenshots finds step-by-step instructions that reference a UI
func detectScreenshots(lines []string) []model.Suggestion {
	var out []model.Suggestion
	seen := make(map[int]bool)

	for i, line := range lines {
		lower := strings.ToLower(line)
		for _, keyword := range technicalKeywords {
			if !strings.Contains(lower, keyword) {
				continue
			}
			if seen[i+1] {
				break
			}
			seen[i+1] = true

			end := i + 3
			if end > len(lines) {
				end = len(lines)
			}
			context := strings.Join(lines[i:end], " ")
			if len(context) > 150 {
				context = context[:150]
			}

			out = append(out, model.Suggestion{
				Type:          model.SuggestScreenshot,
				Priority:      model.TierHigh,
				Line:          i + 1,
				Title:         "Screenshot: " + cleanTitle(line),
				Description:   "Screenshot of: " + context,
				Tool:          "Snagit, Lightshot, or built-in screenshot",
				EstimatedTime: "5-10 minutes",
				Data:          []string{screenshotSubject(lower)},
			})
			break
		}
		if len(out) == maxScreenshots {
			break
		}
	}

	return out
}

func screenshotSubject(line string) string {
	switch {
	case strings.Contains(line, "google ads"):
		return "Google Ads dashboard/interface"
	case strings.Contains(line, "google analytics"):
		return "Google Analytics 4 interface"
	case strings.Contains(line, "tracking"), strings.Contains(line, "conversion"):
		return "Conversion tracking setup screen"
	case strings.Contains(line, "settings"), strings.Contains(line, "configure"):
		return "Settings/configuration panel"
	default:
		return "Interface screenshot"
	}
}

// detectComparisons finds "X vs Y" sentences and contrasting bold lists
func detectComparisons(lines []string) []model.Suggestion {
	var out []model.Suggestion

	for i, line := range lines {
		if comparisonCueRe.MatchString(line) {
			items := capitalizedRe.FindAllString(line, 3)
			out = append(out, comparisonSuggestion(i+1, cleanTitle(line), items))
			continue
		}

		if boldListItemRe.MatchString(line) {
			end := i + 5
			if end > len(lines) {
				end = len(lines)
			}

			var items []string
			for _, l := range lines[i:end] {
				if !boldListItemRe.MatchString(l) {
					continue
				}
				if m := boldListLabelRe.FindStringSubmatch(l); m != nil {
					items = append(items, m[1])
				} else {
					items = append(items, l)
				}
			}

			if len(items) >= 3 {
				out = append(out, comparisonSuggestion(i+1, "Comparison Table", items))
			}
		}
	}

	if len(out) > maxComparisons {
		out = out[:maxComparisons]
	}
	return out
}

func comparisonSuggestion(line int, title string, items []string) model.Suggestion {
	return model.Suggestion{
		Type:          model.SuggestComparison,
		Priority:      model.TierMedium,
		Line:          line,
		Title:         title,
		Description:   fmt.Sprintf("Create comparison table/diagram for: %s", strings.Join(items, " vs ")),
		Tool:          "Google Sheets, Canva, or HTML table",
		EstimatedTime: "10-15 minutes",
		Data:          items,
	}
}

// detectCaseStudies finds result narratives dense enough in metrics to
// deserve a before/after visual
func detectCaseStudies(lines []string) []model.Suggestion {
	var out []model.Suggestion

	for i, line := range lines {
		if !caseStudyCueRe.MatchString(line) {
			continue
		}

		end := i + 10
		if end > len(lines) {
			end = len(lines)
		}
		context := strings.Join(lines[i:end], "\n")

		metrics := metricRe.FindAllString(context, -1)
		if len(metrics) < 2 {
			continue
		}
		if len(metrics) > 4 {
			metrics = metrics[:4]
		}

		out = append(out, model.Suggestion{
			Type:          model.SuggestBeforeAfter,
			Priority:      model.TierMedium,
			Line:          i + 1,
			Title:         "Before/After: " + cleanTitle(line),
			Description:   "Visualize improvement metrics",
			Tool:          "Chart.js, Google Charts, or Canva",
			EstimatedTime: "15-20 minutes",
			Data:          metrics,
		})
		if len(out) == maxCaseStudies {
			break
		}
	}

	return out
}

// detectWorkflows finds headed step sequences that read as a process
func detectWorkflows(lines []string) []model.Suggestion {
	var out []model.Suggestion

	for i, line := range lines {
		if !workflowHeadRe.MatchString(line) {
			continue
		}

		end := i + 15
		if end > len(lines) {
			end = len(lines)
		}

		var steps []string
		for _, l := range lines[i:end] {
			if workflowStepRe.MatchString(l) {
				steps = append(steps, cleanStep(l))
			}
		}
		if len(steps) < 3 {
			continue
		}

		out = append(out, model.Suggestion{
			Type:          model.SuggestFlowchart,
			Priority:      model.TierLow,
			Line:          i + 1,
			Title:         "Flowchart: " + cleanTitle(line),
			Description:   fmt.Sprintf("Create process flowchart showing: %s", strings.Join(steps, " > ")),
			Tool:          "Lucidchart, Miro, or Excalidraw",
			EstimatedTime: "20-30 minutes",
			Data:          steps,
		})
		if len(out) == maxWorkflows {
			break
		}
	}

	return out
}

var stepPrefixRe = regexp.MustCompile(`^\d+\.\s*|^-\s*\*\*|^\*\*|^###?\s*`)

func cleanStep(line string) string {
	step := stepPrefixRe.ReplaceAllString(strings.TrimSpace(line), "")
	if runes := []rune(step); len(runes) > 50 {
		step = string(runes[:50])
	}
	return step
}

func cleanTitle(line string) string {
	title := headingPrefixRe.ReplaceAllString(strings.TrimSpace(line), "")
	title = strings.TrimPrefix(title, "**")
	title = strings.TrimSuffix(title, "**")
	return title
}
