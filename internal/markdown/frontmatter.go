// Package markdown holds the document-level helpers: frontmatter handling
// and artifact splicing.
package markdown

import (
	"strings"

	"gopkg.in/yaml.v3"

	"statgraft/internal/model"
)

const frontmatterDelim = "---"

// SplitFrontmatter separates a leading YAML frontmatter block from the
// body. Raw holds the frontmatter block verbatim, delimiters included, so
// JoinFrontmatter can reassemble the file byte for byte. A document
// without frontmatter returns an empty raw block and zero metadata;
// unparseable YAML keeps the raw block but yields zero metadata.
func SplitFrontmatter(content string) (raw string, meta model.Metadata, body string) {
	if !strings.HasPrefix(content, frontmatterDelim+"\n") {
		return "", model.Metadata{}, content
	}

	rest := content[len(frontmatterDelim)+1:]
	end := strings.Index(rest, "\n"+frontmatterDelim)
	if end < 0 {
		return "", model.Metadata{}, content
	}

	block := rest[:end]
	after := rest[end+1+len(frontmatterDelim):]
	after = strings.TrimPrefix(after, "\n")

	raw = frontmatterDelim + "\n" + block + "\n" + frontmatterDelim + "\n"
	_ = yaml.Unmarshal([]byte(block), &meta)

	return raw, meta, after
}

// JoinFrontmatter reattaches a raw frontmatter block to a body
func JoinFrontmatter(raw, body string) string {
	if raw == "" {
		return body
	}
	return raw + body
}
