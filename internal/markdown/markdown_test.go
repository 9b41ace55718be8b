package markdown

import (
	"strings"
	"testing"
)

func TestSplitFrontmatter_Roundtrip(t *testing.T) {
	content := `---
title: "Google Ads in 2025"
category: PPC
tags:
  - ads
  - sydney
---
# Intro

Body text here.
`
	raw, meta, body := SplitFrontmatter(content)

	if meta.Title != "Google Ads in 2025" {
		t.Errorf("title: got %q", meta.Title)
	}
	if meta.Category != "PPC" {
		t.Errorf("category: got %q", meta.Category)
	}
	if len(meta.Tags) != 2 || meta.Tags[0] != "ads" {
		t.Errorf("tags: got %v", meta.Tags)
	}
	if !strings.HasPrefix(body, "# Intro") {
		t.Errorf("body start: got %q", body[:20])
	}

	if JoinFrontmatter(raw, body) != content {
		t.Error("join(split(content)) != content")
	}
}

func TestSplitFrontmatter_NoFrontmatter(t *testing.T) {
	content := "# Just a post\n\nNo metadata block."
	raw, meta, body := SplitFrontmatter(content)

	if raw != "" {
		t.Errorf("expected empty raw block, got %q", raw)
	}
	if meta.Title != "" {
		t.Errorf("expected zero metadata, got %+v", meta)
	}
	if body != content {
		t.Error("body must be the unchanged input")
	}
}

func TestSplitFrontmatter_BadYAML(t *testing.T) {
	content := "---\n: : not yaml : :\n---\nbody"
	raw, meta, body := SplitFrontmatter(content)

	if raw == "" {
		t.Error("raw block should be preserved even when YAML fails to parse")
	}
	if meta.Title != "" {
		t.Errorf("expected zero metadata, got %+v", meta)
	}
	if body != "body" {
		t.Errorf("body: got %q", body)
	}
}

func TestInsertionPoint_AnchorMatch(t *testing.T) {
	lines := []string{
		"# Title",
		"",
		"CTR increased from 2.1% to 6.8% across the account this quarter.",
		"More prose.",
	}

	idx := InsertionPoint(lines, "CTR increased from 2.1% to 6.8% across the account this quarter.")
	if idx != 3 {
		t.Errorf("expected insertion after line 2 (index 3), got %d", idx)
	}
}

func TestInsertionPoint_MultibyteAnchor(t *testing.T) {
	// Byte 50 of the anchor falls in the middle of the é, so cutting the
	// key on a byte index would split the rune and never match the line.
	anchor := strings.Repeat("a", 49) + "é improved from 2.1% to 6.8% across the account"
	lines := []string{
		"# Title",
		"",
		anchor,
		"More prose.",
	}
	idx := InsertionPoint(lines, anchor)
	if idx != 3 {
		t.Errorf("expected insertion after line 2 (index 3), got %d", idx)
	}
}

func TestInsertionPoint_HeadingFallback(t *testing.T) {
	lines := []string{
		"# Title",
		"",
		"## First Section",
		"intro line",
		"more prose",
		"even more",
	}

	idx := InsertionPoint(lines, "anchor text that appears nowhere in this document")
	if idx != 5 { // heading at index 2 + offset 3
		t.Errorf("expected heading fallback index 5, got %d", idx)
	}
}

func TestInsertionPoint_AppendFallback(t *testing.T) {
	lines := []string{"no headings", "no anchors"}

	idx := InsertionPoint(lines, "missing anchor")
	if idx != len(lines) {
		t.Errorf("expected append index %d, got %d", len(lines), idx)
	}
}

func TestInsertionPoint_HeadingNearEnd(t *testing.T) {
	lines := []string{"prose", "## Late Heading"}

	// Heading offset would run past the document; must clamp to the end.
	idx := InsertionPoint(lines, "missing anchor")
	if idx != len(lines) {
		t.Errorf("expected clamped index %d, got %d", len(lines), idx)
	}
}

func TestSplice_Reconstructable(t *testing.T) {
	original := "line one\nline two\nline three"
	block := "<div>artifact</div>"

	out := Splice(original, 2, block)

	if len(out) < len(original) {
		t.Error("spliced document must not be shorter than the original")
	}

	// Removing the inserted block and its padding restores the original.
	restored := strings.Replace(out, "\n\n"+block+"\n", "", 1)
	if restored != original {
		t.Errorf("could not reconstruct original:\n%q\nvs\n%q", restored, original)
	}
}

func TestSplice_IndexOutOfRange(t *testing.T) {
	out := Splice("a\nb", 99, "X")
	if !strings.HasSuffix(out, "\n\nX\n") {
		t.Errorf("expected append at end, got %q", out)
	}
}
