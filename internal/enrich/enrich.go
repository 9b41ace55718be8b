// Package enrich replaces drafted statistics with verified, cited data
// from the lookup collaborator.
package enrich

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"statgraft/internal/extract"
	"statgraft/internal/lookup"
	"statgraft/internal/model"
	"statgraft/internal/score"
)

// minLineLen filters out lines too short to carry a verifiable claim
const minLineLen = 30

// candidate is one line of the document submitted for enrichment
type candidate struct {
	line       string // Trimmed line text, the enrichment unit
	lineNumber int
	priority   int
}

// Enricher drives the enrichment flow for one document
type Enricher struct {
	client    lookup.Client
	extractor *extract.Extractor
	policy    score.Policy
	maxStats  int
	delay     time.Duration
	wait      func(ctx context.Context, d time.Duration) error
}

// New creates an enricher using the given lookup client
func New(client lookup.Client, cfg model.EnrichConfig) *Enricher {
	maxStats := cfg.MaxStatistics
	if maxStats <= 0 {
		maxStats = 8
	}
	delay := cfg.RequestDelay
	if delay < 0 {
		delay = 0
	}

	return &Enricher{
		client:    client,
		extractor: extract.New(),
		policy:    score.DefaultPolicy(),
		maxStats:  maxStats,
		delay:     delay,
		wait:      sleep,
	}
}

// SetPolicy overrides the default priority policy
func (e *Enricher) SetPolicy(p score.Policy) {
	e.policy = p
}

// appliedEnrichment pairs a candidate with its parsed collaborator answer
type appliedEnrichment struct {
	candidate candidate
	parsed    *Enrichment
}

// Enrich submits the document's highest-priority statistics to the lookup
// collaborator and splices verified replacements back in. The returned
// result always carries usable content; individual lookup failures skip
// that statistic rather than failing the run.
func (e *Enricher) Enrich(ctx context.Context, content string, meta model.Metadata) (*model.EnrichResult, error) {
	result := &model.EnrichResult{
		Content:      content,
		Replacements: []model.Replacement{},
		Citations:    []string{},
		Success:      true,
	}

	candidates := e.candidates(content)
	if len(candidates) == 0 {
		return result, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].priority > candidates[j].priority
	})

	limit := e.maxStats
	if len(candidates) < limit {
		limit = len(candidates)
	}
	top := candidates[:limit]
	result.Attempted = len(top)

	post := lookup.PostContext{Topic: meta.Title, Category: meta.Category}

	var enrichments []appliedEnrichment
	var allCitations []string

	for i, c := range top {
		lookupResult, err := e.client.EnrichStatistic(ctx, c.line, post)
		if err == nil {
			if parsed, ok := Parse(lookupResult); ok {
				enrichments = append(enrichments, appliedEnrichment{candidate: c, parsed: parsed})
				allCitations = append(allCitations, parsed.Citations...)
			}
		}

		if i < len(top)-1 {
			if err := e.wait(ctx, e.delay); err != nil {
				return result, fmt.Errorf("enrichment interrupted: %w", err)
			}
		}
	}

	unique := dedupeCitations(allCitations)
	citationNumbers := make(map[string]int, len(unique))
	for i, c := range unique {
		citationNumbers[c] = i + 1
	}

	enriched := content
	for _, en := range enrichments {
		num := 0
		if len(en.parsed.Citations) > 0 {
			num = citationNumbers[en.parsed.Citations[0]]
		}

		replacement := en.parsed.Text
		if en.parsed.Source != "" && num > 0 {
			replacement += fmt.Sprintf(" [%d]", num)
		}

		// The line may have been rewritten by an earlier replacement;
		// skip silently rather than corrupt unrelated text.
		if !strings.Contains(enriched, en.candidate.line) {
			continue
		}
		enriched = strings.Replace(enriched, en.candidate.line, replacement, 1)

		result.Replacements = append(result.Replacements, model.Replacement{
			Original: en.candidate.line,
			New:      replacement,
			Line:     en.candidate.lineNumber,
			Citation: num,
		})
	}

	if len(unique) > 0 {
		enriched += bibliography(unique)
	}

	result.Content = enriched
	result.Citations = unique
	return result, nil
}

// candidates lists the document's enrichable lines in document order, one
// per line, scored by the priority policy.
func (e *Enricher) candidates(content string) []candidate {
	stats := e.policy.Apply(e.extractor.Extract(content))

	var out []candidate
	seen := make(map[int]bool)
	for _, s := range stats {
		if seen[s.Line] {
			continue
		}
		seen[s.Line] = true

		line := strings.TrimSpace(s.FullLine)
		if len(line) < minLineLen {
			continue
		}

		out = append(out, candidate{
			line:       line,
			lineNumber: s.Line,
			priority:   s.Priority,
		})
	}
	return out
}

func dedupeCitations(citations []string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, c := range citations {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func bibliography(citations []string) string {
	var b strings.Builder
	b.WriteString("\n\n---\n\n## References\n\n")
	for i, c := range citations {
		fmt.Fprintf(&b, "[%d] %s\n", i+1, c)
	}
	return b.String()
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
