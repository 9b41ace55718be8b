package extract

import (
	"regexp"
	"strconv"
	"strings"

	"statgraft/internal/model"
)

// contextRadius is the number of characters kept on each side of a match
// when building a statistic's context window.
const contextRadius = 100

// pattern is one entry in the ordered catalog. Evaluation order matters:
// a substring may match several patterns and each match produces its own
// record, so downstream policies see kinds in catalog order.
type pattern struct {
	kind model.StatKind
	re   *regexp.Regexp
}

var catalog = []pattern{
	{model.KindPercentage, regexp.MustCompile(`\d+(?:\.\d+)?%`)},
	{model.KindCurrency, regexp.MustCompile(`\$[\d,]+(?:\.\d+)?`)},
	{model.KindMultiplier, regexp.MustCompile(`\d+(?:\.\d+)?x`)},
	{model.KindLargeNumber, regexp.MustCompile(`\b(?:\d{1,3}(?:,\d{3})+|\d{4,})\+?\b`)},
	{model.KindImprovement, regexp.MustCompile(`(?i)\d+(?:\.\d+)?%\s+(?:increase|improvement|gain|growth|boost)`)},
	{model.KindReduction, regexp.MustCompile(`(?i)\d+(?:\.\d+)?%\s+(?:decrease|reduction|drop|decline|lower)`)},
}

// Lines matching any of these rules are never scanned.
var skipRules = []*regexp.Regexp{
	regexp.MustCompile(`^#{1,6}\s`), // headings
	regexp.MustCompile("^```"),      // fenced code delimiters
	regexp.MustCompile(`^\[`),       // markdown reference-link definitions
}

// Extractor scans markdown text for numeric claims
type Extractor struct{}

// New creates a new statistic extractor
func New() *Extractor {
	return &Extractor{}
}

// Extract scans text line by line and returns every statistic found, in
// document order, deduplicated by (value, line). It never fails: malformed
// input yields fewer records, not errors.
func (e *Extractor) Extract(text string) []model.Statistic {
	var stats []model.Statistic

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if skipLine(line) {
			continue
		}
		stats = append(stats, scanLine(line, i+1)...)
	}

	return dedupe(stats)
}

// skipLine reports whether a line is excluded from scanning
func skipLine(line string) bool {
	for _, re := range skipRules {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// scanLine applies the full pattern catalog to one line. A failure inside
// pattern evaluation skips the line rather than aborting the scan.
func scanLine(line string, lineNumber int) (stats []model.Statistic) {
	defer func() {
		if r := recover(); r != nil {
			stats = nil
		}
	}()

	for _, p := range catalog {
		for _, loc := range p.re.FindAllStringIndex(line, -1) {
			raw := line[loc[0]:loc[1]]
			stats = append(stats, model.Statistic{
				Raw:      raw,
				Value:    normalize(raw),
				Kind:     p.kind,
				Line:     lineNumber,
				Context:  contextWindow(line, loc[0]),
				FullLine: strings.TrimSpace(line),
			})
		}
	}
	return stats
}

// contextWindow returns the text surrounding a match offset, clipped to the
// line bounds.
func contextWindow(line string, offset int) string {
	start := offset - contextRadius
	if start < 0 {
		start = 0
	}
	end := offset + contextRadius
	if end > len(line) {
		end = len(line)
	}
	return strings.TrimSpace(line[start:end])
}

// normalize strips separators and unit symbols and parses the leading
// numeric prefix as a float, so "224% increase" normalizes to 224. Values
// with no numeric prefix become 0 rather than an error; the zero can
// surface as an empty-looking chart bar, but it keeps edge cases like
// "N/A%" from aborting a run.
func normalize(raw string) float64 {
	cleaned := strings.NewReplacer(",", "", "$", "", "%", "", "x", "").Replace(raw)
	cleaned = strings.TrimSpace(cleaned)

	end := 0
	sawDot := false
	for end < len(cleaned) {
		c := cleaned[end]
		if c == '.' && !sawDot {
			sawDot = true
		} else if (c < '0' || c > '9') && !(end == 0 && (c == '-' || c == '+')) {
			break
		}
		end++
	}

	v, err := strconv.ParseFloat(strings.TrimSuffix(cleaned[:end], "."), 64)
	if err != nil {
		return 0
	}
	return v
}

// dedupe removes records sharing (value, line), keeping first-seen order
func dedupe(stats []model.Statistic) []model.Statistic {
	type key struct {
		value float64
		line  int
	}

	seen := make(map[key]bool)
	var unique []model.Statistic
	for _, s := range stats {
		k := key{s.Value, s.Line}
		if seen[k] {
			continue
		}
		seen[k] = true
		unique = append(unique, s)
	}
	return unique
}
