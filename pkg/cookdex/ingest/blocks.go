package ingest

import "strings"

// Block kinds understood by the normalizer. Anything else yields no lines.
const (
	KindParagraph    = "paragraph"
	KindQuote        = "quote"
	KindHeading1     = "heading_1"
	KindHeading2     = "heading_2"
	KindHeading3     = "heading_3"
	KindBulletedItem = "bulleted_list_item"
	KindNumberedItem = "numbered_list_item"
	KindDivider      = "divider"
)

// Divider is the sentinel line that separates recipe sections.
const Divider = "---"

// listMarker prefixes lines derived from list-item blocks.
const listMarker = "- "

// Span is one rich-text run inside a block. Runs typed "text" carry their
// content in Text; any other run type falls back to PlainText.
type Span struct {
	Type      string
	Text      string
	PlainText string
}

// Block is one unit of the source document. Read once per fetch, never
// mutated.
type Block struct {
	Kind  string
	Spans []Span
}

func spansToPlain(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		if s.Type == "text" {
			b.WriteString(s.Text)
		} else {
			b.WriteString(s.PlainText)
		}
	}
	return strings.TrimSpace(b.String())
}

// BlockLines normalizes a block into zero or more plain-text lines.
// Paragraphs, quotes and headings become one line, list items get the list
// marker, dividers become the sentinel, everything else is dropped.
func BlockLines(b Block) []string {
	switch b.Kind {
	case KindParagraph, KindQuote, KindHeading1, KindHeading2, KindHeading3:
		if text := spansToPlain(b.Spans); text != "" {
			return []string{text}
		}
	case KindBulletedItem, KindNumberedItem:
		if text := spansToPlain(b.Spans); text != "" {
			return []string{listMarker + text}
		}
	case KindDivider:
		return []string{Divider}
	}
	return nil
}

// Lines flattens a block sequence into an ordered list of trimmed,
// non-blank text lines, keeping divider sentinels.
func Lines(blocks []Block) []string {
	var lines []string
	for _, b := range blocks {
		for _, ln := range BlockLines(b) {
			s := strings.TrimSpace(ln)
			if s == "" {
				continue
			}
			lines = append(lines, s)
		}
	}
	return lines
}
