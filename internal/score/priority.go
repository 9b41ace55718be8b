package score

import (
	"regexp"
	"strings"

	"statgraft/internal/model"
)

// Cue patterns shared by every weight. Compiled once; the policy only
// carries weights and keyword lists.
var (
	evidenceCueRe    = regexp.MustCompile(`(?i)according to|study|research|report|survey`)
	improvementCueRe = regexp.MustCompile(`(?i)increase|improve|boost|grow`)
	exampleCueRe     = regexp.MustCompile(`(?i)example|instance|such as`)
)

// Policy is the single scoring policy for statistic priority. The
// enrichment and suggestion flows both read one policy instance so their
// notions of "important statistic" cannot drift apart.
type Policy struct {
	Base            int
	EvidenceCue     int // line cites a study, report or survey
	Percentage      int // the statistic itself is a percentage
	ImprovementVerb int // line mentions an improvement verb
	LocaleKeyword   int // line mentions a configured locale keyword
	Currency        int // the statistic itself is a currency amount
	ExampleCue      int // line reads as an illustrative example (negative)
	ShortLine       int // line is shorter than ShortLineLen (negative)

	ShortLineLen   int
	LocaleKeywords []string
}

// DefaultPolicy returns the standard weights
func DefaultPolicy() Policy {
	return Policy{
		Base:            5,
		EvidenceCue:     5,
		Percentage:      3,
		ImprovementVerb: 2,
		LocaleKeyword:   2,
		Currency:        2,
		ExampleCue:      -2,
		ShortLine:       -1,
		ShortLineLen:    50,
		LocaleKeywords:  []string{"sydney", "australia"},
	}
}

// Score computes the additive priority of one statistic from its kind and
// its source line.
func (p Policy) Score(s model.Statistic) int {
	line := s.FullLine
	score := p.Base

	if evidenceCueRe.MatchString(line) {
		score += p.EvidenceCue
	}
	if s.Kind == model.KindPercentage {
		score += p.Percentage
	}
	if improvementCueRe.MatchString(line) {
		score += p.ImprovementVerb
	}
	if p.mentionsLocale(line) {
		score += p.LocaleKeyword
	}
	if s.Kind == model.KindCurrency {
		score += p.Currency
	}
	if exampleCueRe.MatchString(line) {
		score += p.ExampleCue
	}
	if len(line) < p.ShortLineLen {
		score += p.ShortLine
	}

	return score
}

// Apply sets the priority on every statistic and returns the same slice
func (p Policy) Apply(stats []model.Statistic) []model.Statistic {
	for i := range stats {
		stats[i].Priority = p.Score(stats[i])
	}
	return stats
}

func (p Policy) mentionsLocale(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range p.LocaleKeywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
