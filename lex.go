package gherkin

import "strings"

// splitLines splits text on any line terminator — LF, CRLF, or bare CR —
// treating each terminator as a line boundary (§6). No terminator is kept
// in the returned lines.
func splitLines(text string) []string {
	var lines []string
	start := 0
	i := 0
	for i < len(text) {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i])
			i++
			start = i
		case '\r':
			lines = append(lines, text[start:i])
			i++
			if i < len(text) && text[i] == '\n' {
				i++
			}
			start = i
		default:
			i++
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// isBlank reports whether a line is empty once surrounding whitespace is
// stripped.
func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// isCommentLine reports whether a stripped line is a comment ("#...").
func isCommentLine(stripped string) bool {
	return strings.HasPrefix(stripped, "#")
}

// isTagLine reports whether a stripped line opens one or more tags.
func isTagLine(stripped string) bool {
	return strings.HasPrefix(stripped, "@")
}

// isTableRow reports whether a stripped line opens a table row.
func isTableRow(stripped string) bool {
	return strings.HasPrefix(stripped, "|")
}

// docStringFence returns the three-character doc-string fence the
// stripped line opens with ("\"\"\"" or "'''"), or "" if it opens neither.
func docStringFence(stripped string) string {
	if strings.HasPrefix(stripped, `"""`) {
		return `"""`
	}
	if strings.HasPrefix(stripped, "'''") {
		return "'''"
	}
	return ""
}

// leadingWidth returns the number of leading space/tab bytes of line —
// the column at which its stripped content starts.
func leadingWidth(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
