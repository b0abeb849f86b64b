package gherkin

import (
	"strings"

	"github.com/google/uuid"
)

// tableBuilder accumulates rows for the Table Sub-parser (§4.6): the
// first row parsed becomes the headings, every following row must carry
// the same number of cells.
type tableBuilder struct {
	id       string
	headings []string
	rows     []TableRow
	line     int // line of the first (heading) row
}

// splitTableRowCells implements §4.6's row grammar: trim, drop the
// leading "|" and the trailing "|" (when present; a row without one is
// still split), split on unescaped "|" (a pipe preceded by "\" is data),
// trim each cell, and unescape "\|" back to "|".
func splitTableRowCells(line string) []string {
	trimmed := strings.TrimSpace(line)
	inner := trimmed
	inner = strings.TrimPrefix(inner, "|")
	inner = strings.TrimSuffix(inner, "|")
	parts := splitUnescapedPipe(inner)
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.ReplaceAll(strings.TrimSpace(p), `\|`, "|")
	}
	return cells
}

// splitUnescapedPipe splits s on "|" characters not immediately preceded
// by a backslash.
func splitUnescapedPipe(s string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '|' && (i == 0 || s[i-1] != '\\') {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// isWellFormedTableRow reports whether the trimmed row ends with "|" —
// a row that doesn't is tolerated (parsed anyway) but warned about (§7).
func isWellFormedTableRow(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasSuffix(trimmed, "|")
}

// addRow appends a data row, or sets the headings if this is the first
// row seen. Returns ErrMalformedTable if the cell count disagrees with
// the header's once one is established.
func (tb *tableBuilder) addRow(line string, lineNo int, filename string) error {
	cells := splitTableRowCells(line)
	if tb.headings == nil {
		tb.headings = cells
		tb.line = lineNo
		tb.id = uuid.NewString()
		return nil
	}
	if len(cells) != len(tb.headings) {
		return newParserError(ErrMalformedTable, lineNo, filename, line)
	}
	tb.rows = append(tb.rows, TableRow{ID: uuid.NewString(), Cells: cells, Line: lineNo})
	return nil
}

func (tb *tableBuilder) build() *Table {
	return &Table{ID: tb.id, Headings: tb.headings, Rows: tb.rows, Line: tb.line}
}
