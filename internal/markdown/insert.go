package markdown

import (
	"regexp"
	"strings"
)

// anchorKeyLen is how much of the anchor context is used as the search key
const anchorKeyLen = 50

// headingOffset places fallback insertions a few lines below the first
// section heading, past its intro sentence.
const headingOffset = 3

var sectionHeadingRe = regexp.MustCompile(`^##\s`)

// InsertionPoint returns the line index at which an artifact block should
// be spliced: immediately after the first line containing the anchor key,
// else three lines after the first section heading, else the end of the
// document. It never fails; the worst case is an append.
func InsertionPoint(lines []string, anchor string) int {
	key := anchor
	if runes := []rune(key); len(runes) > anchorKeyLen {
		key = string(runes[:anchorKeyLen])
	}

	if key != "" {
		for i, line := range lines {
			if strings.Contains(line, key) {
				return clamp(i+1, len(lines))
			}
		}
	}

	for i, line := range lines {
		if sectionHeadingRe.MatchString(line) {
			return clamp(i+headingOffset, len(lines))
		}
	}

	return len(lines)
}

// Splice inserts a block at the given line index, padded with one blank
// line on each side. Every other line of the document is preserved
// byte for byte.
func Splice(content string, index int, block string) string {
	lines := strings.Split(content, "\n")
	index = clamp(index, len(lines))

	spliced := make([]string, 0, len(lines)+3)
	spliced = append(spliced, lines[:index]...)
	spliced = append(spliced, "", block, "")
	spliced = append(spliced, lines[index:]...)

	return strings.Join(spliced, "\n")
}

func clamp(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}
