// Package pipeline orchestrates the three modes over one document: chart
// insertion, statistics enrichment, and visual suggestions.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"statgraft/internal/chart"
	"statgraft/internal/enrich"
	"statgraft/internal/extract"
	"statgraft/internal/group"
	"statgraft/internal/lookup"
	"statgraft/internal/markdown"
	"statgraft/internal/model"
	"statgraft/internal/score"
	"statgraft/internal/suggest"
	"statgraft/internal/validate"
)

// Pipeline runs the document modes. The lookup client may be nil, in which
// case enrichment reports failure instead of mutating anything.
type Pipeline struct {
	extractor *extract.Extractor
	policy    score.Policy
	grouper   *group.Grouper
	suggester *suggest.Suggester
	enricher  *enrich.Enricher
	checker   *validate.Checker
	config    *model.Config
}

// New creates a pipeline from the configuration
func New(cfg *model.Config, client lookup.Client) *Pipeline {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	policy := score.DefaultPolicy()
	if len(cfg.Scoring.LocaleKeywords) > 0 {
		policy.LocaleKeywords = cfg.Scoring.LocaleKeywords
	}

	var enricher *enrich.Enricher
	if client != nil {
		enricher = enrich.New(client, cfg.Enrich)
		enricher.SetPolicy(policy)
	}

	var checker *validate.Checker
	if cfg.Citations.Check {
		checker = validate.NewChecker(cfg.Citations)
	}

	return &Pipeline{
		extractor: extract.New(),
		policy:    policy,
		grouper:   group.New(),
		suggester: suggest.New(),
		enricher:  enricher,
		checker:   checker,
		config:    cfg,
	}
}

// GenerateCharts extracts statistics, groups them, and splices chart embeds
// into the document. Any internal failure returns the original text with
// Success false; the caller's document is never corrupted.
func (p *Pipeline) GenerateCharts(content string) (result *model.ChartResult) {
	defer func() {
		if r := recover(); r != nil {
			result = &model.ChartResult{
				Content: content,
				Charts:  []model.Chart{},
				Success: false,
				Error:   fmt.Sprintf("chart generation failed: %v", r),
			}
		}
	}()

	result = &model.ChartResult{
		Content: content,
		Charts:  []model.Chart{},
		Success: true,
	}

	stats := p.policy.Apply(p.extractor.Extract(content))
	result.StatisticsFound = len(stats)

	groups := p.grouper.Group(stats)
	if len(groups) == 0 {
		return result
	}

	enriched := content
	for _, g := range groups {
		c := chart.Synthesize(g)
		block := chart.Markdown(c, p.config.Chart.ScriptURL)

		lines := splitLines(enriched)
		idx := markdown.InsertionPoint(lines, g.AnchorContext())
		enriched = markdown.Splice(enriched, idx, block)

		result.Charts = append(result.Charts, c)
	}

	result.Content = enriched
	return result
}

// EnrichStatistics replaces drafted statistics with verified, cited data.
// Failures return the original text with Success false.
func (p *Pipeline) EnrichStatistics(ctx context.Context, content string, meta model.Metadata) (result *model.EnrichResult) {
	defer func() {
		if r := recover(); r != nil {
			result = failedEnrichResult(content, fmt.Sprintf("enrichment failed: %v", r))
		}
	}()

	if p.enricher == nil {
		return failedEnrichResult(content, "lookup client not configured")
	}

	result, err := p.enricher.Enrich(ctx, content, meta)
	if err != nil {
		return failedEnrichResult(content, err.Error())
	}

	if p.checker != nil && len(result.Citations) > 0 {
		result.Checks = p.checker.Check(ctx, result.Citations)
	}

	return result
}

// SuggestVisuals recommends visual elements without touching the document
func (p *Pipeline) SuggestVisuals(content string) (result *model.SuggestResult) {
	defer func() {
		if r := recover(); r != nil {
			result = &model.SuggestResult{
				Suggestions: []model.Suggestion{},
				Success:     false,
				Error:       fmt.Sprintf("suggestion analysis failed: %v", r),
			}
		}
	}()

	suggestions := p.suggester.Suggest(content)
	if suggestions == nil {
		suggestions = []model.Suggestion{}
	}

	return &model.SuggestResult{
		Suggestions: suggestions,
		Success:     true,
	}
}

func splitLines(s string) []string {
	return strings.Split(s, "\n")
}

func failedEnrichResult(content, errMsg string) *model.EnrichResult {
	return &model.EnrichResult{
		Content:      content,
		Replacements: []model.Replacement{},
		Citations:    []string{},
		Success:      false,
		Error:        errMsg,
	}
}
