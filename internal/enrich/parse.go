package enrich

import (
	"regexp"
	"strings"

	"statgraft/internal/lookup"
)

var (
	statisticRe = regexp.MustCompile(`(?i)Statistic:\s*([^\n]+)`)
	sourceRe    = regexp.MustCompile(`(?i)Source:\s*([^\n]+)`)
	urlRe       = regexp.MustCompile(`(?i)URL:\s*([^\n]+)`)
	numericRe   = regexp.MustCompile(`\d+%|\$[\d,]+|\d{3,}`)
)

// Enrichment is a verified statistic parsed from a collaborator response
type Enrichment struct {
	Text      string
	Source    string
	URL       string
	Citations []string
}

// Parse extracts the structured enrichment from a lookup result. It returns
// false when the collaborator found nothing usable: an explicit NOT_FOUND,
// or free-form text with no numbers in it.
func Parse(result lookup.Result) (*Enrichment, bool) {
	if !result.Success || result.Content == "" {
		return nil, false
	}

	content := result.Content

	if strings.Contains(content, "NOT_FOUND") {
		return nil, false
	}

	source := firstGroup(sourceRe, content)
	url := firstGroup(urlRe, content)

	text := firstGroup(statisticRe, content)
	if text == "" {
		// Free-form answer: take the first paragraph if it carries numbers
		firstPara := strings.TrimSpace(strings.SplitN(content, "\n\n", 2)[0])
		if !numericRe.MatchString(firstPara) {
			return nil, false
		}
		text = firstPara
	}

	return &Enrichment{
		Text:      text,
		Source:    source,
		URL:       url,
		Citations: result.Citations,
	}, true
}

func firstGroup(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
