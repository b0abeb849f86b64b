package gherkin

import (
	"strings"

	"github.com/google/uuid"
)

// docStringBuilder accumulates the body of a doc-string (§4.5): an
// indentation-stripped block terminated by a fence matching its opener.
type docStringBuilder struct {
	fence     string
	indent    int
	startLine int
	lines     []string
}

// openDocString reads the opener line (already known to start, once
// stripped, with a doc-string fence) and records the fence and the
// column it opened at.
func openDocString(rawLine string, stripped string, lineNo int) *docStringBuilder {
	return &docStringBuilder{
		fence:     docStringFence(stripped),
		indent:    leadingWidth(rawLine),
		startLine: lineNo,
	}
}

// isTerminator reports whether rawLine closes this doc-string: its
// stripped form starts with the same fence that opened it.
func (d *docStringBuilder) isTerminator(rawLine string) bool {
	return strings.HasPrefix(strings.TrimSpace(rawLine), d.fence)
}

// capture strips exactly d.indent leading characters from rawLine, then
// trailing whitespace, and appends the result. It is a ParserError
// (BadDocStringIndent) if the stripped prefix contains non-whitespace —
// doc-string indent-stripping must never remove non-whitespace content.
func (d *docStringBuilder) capture(rawLine string, lineNo int, filename string) error {
	cut := d.indent
	if cut > len(rawLine) {
		cut = len(rawLine)
	}
	prefix, rest := rawLine[:cut], rawLine[cut:]
	if strings.TrimSpace(prefix) != "" {
		return newParserError(ErrBadDocStringIndent, lineNo, filename, rawLine)
	}
	d.lines = append(d.lines, strings.TrimRight(rest, " \t\r"))
	return nil
}

// build joins the captured lines with "\n" into the Step's Text. Content
// type is always "text/plain" — the original implementation this parser
// is grounded on never inspects text after the fence for a media type.
func (d *docStringBuilder) build() *Text {
	return &Text{
		ID:          uuid.NewString(),
		Value:       strings.Join(d.lines, "\n"),
		ContentType: "text/plain",
		Line:        d.startLine,
	}
}
