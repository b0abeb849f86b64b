package gherkin

import (
	"strings"

	"github.com/google/uuid"
)

// parseTagLine implements §4.3: line must begin with "@"; it is split on
// whitespace, a word starting with "#" begins a trailing comment and ends
// parsing, a word starting with neither "@" nor "#" is a BadTag error,
// otherwise its "@"-stripped form is a tag. Duplicate tags are preserved.
func parseTagLine(line string, lineNo int, filename string) ([]Tag, error) {
	if !strings.HasPrefix(line, "@") {
		return nil, newParserError(ErrBadTag, lineNo, filename, line)
	}
	var tags []Tag
	for _, word := range strings.Fields(line) {
		switch {
		case strings.HasPrefix(word, "@"):
			tags = append(tags, Tag{ID: uuid.NewString(), Name: word[1:], Line: lineNo})
		case strings.HasPrefix(word, "#"):
			return tags, nil
		default:
			return nil, newParserError(ErrBadTag, lineNo, filename, line)
		}
	}
	return tags, nil
}

// ParseTags runs only the Tag Parser entry point (§4.9): it tokenizes one
// or more lines of whitespace-separated "@tag" words into an ordered list
// of Tag, ignoring trailing "#" comments.
func ParseTags(text string) ([]Tag, error) {
	if text == "" {
		return nil, nil
	}
	var tags []Tag
	for i, line := range splitLines(text) {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}
		lineTags, err := parseTagLine(stripped, i+1, "")
		if err != nil {
			return nil, err
		}
		tags = append(tags, lineTags...)
	}
	return tags, nil
}
