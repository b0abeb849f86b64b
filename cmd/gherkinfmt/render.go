package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"golang.org/x/term"

	"github.com/moonrockz/gherkin"
)

var (
	styleKeyword     = lipgloss.NewStyle().Bold(true)
	styleName        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	styleTag         = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styleMuted       = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	styleErrorGutter = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// terminalWidth detects stdout's column width, falling back to 80 when
// stdout isn't a TTY (piped output, CI logs).
func terminalWidth() int {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return 80
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// renderTree prints a Feature as an indented, styled tree: tags orange,
// block keywords bold, scenario step text wrapped to the detected
// terminal width (Background steps are not wrapped).
func renderTree(w io.Writer, f *gherkin.Feature) {
	width := terminalWidth()

	tagLine(w, f.Tags, "")
	fmt.Fprintf(w, "%s %s\n", styleKeyword.Render(f.Keyword+":"), styleName.Render(f.Name))
	for _, line := range f.Description {
		fmt.Fprintf(w, "  %s\n", styleMuted.Render(line))
	}
	if f.Background != nil {
		renderBackground(w, f.Background, "  ")
	}
	for _, child := range f.Children {
		switch {
		case child.Rule != nil:
			renderRule(w, child.Rule, "  ", width)
		case child.Scenario != nil:
			renderScenario(w, child.Scenario, "  ", width)
		}
	}
}

func renderRule(w io.Writer, r *gherkin.Rule, indent string, width int) {
	tagLine(w, r.Tags, indent)
	fmt.Fprintf(w, "%s%s %s\n", indent, styleKeyword.Render(r.Keyword+":"), styleName.Render(r.Name))
	if r.Background != nil {
		renderBackground(w, r.Background, indent+"  ")
	}
	for _, s := range r.Scenarios {
		renderScenario(w, s, indent+"  ", width)
	}
}

func renderBackground(w io.Writer, b *gherkin.Background, indent string) {
	fmt.Fprintf(w, "%s%s %s\n", indent, styleKeyword.Render(b.Keyword+":"), styleName.Render(b.Name))
	renderSteps(w, b.Steps, indent+"  ", 0)
}

func renderScenario(w io.Writer, s *gherkin.Scenario, indent string, width int) {
	tagLine(w, s.Tags, indent)
	fmt.Fprintf(w, "%s%s %s\n", indent, styleKeyword.Render(s.Keyword+":"), styleName.Render(s.Name))
	renderSteps(w, s.Steps, indent+"  ", width)
	for _, ex := range s.Examples {
		fmt.Fprintf(w, "%s  %s %s\n", indent, styleKeyword.Render(ex.Keyword+":"), styleName.Render(ex.Name))
		renderTable(w, ex.Table, indent+"    ")
	}
}

func renderSteps(w io.Writer, steps []*gherkin.Step, indent string, width int) {
	for _, step := range steps {
		text := step.Text
		if width > len(indent)+len(step.Keyword)+2 {
			text = wrap(text, width-len(indent)-len(step.Keyword)-2)
		}
		fmt.Fprintf(w, "%s%s %s\n", indent, styleKeyword.Render(step.Keyword), text)
		if step.DocString != nil {
			fmt.Fprintf(w, "%s  %s\n", indent, styleMuted.Render(`"""`))
		}
		if step.Table != nil {
			renderTable(w, step.Table, indent+"  ")
		}
	}
}

func renderTable(w io.Writer, t *gherkin.Table, indent string) {
	if t == nil {
		return
	}
	fmt.Fprintf(w, "%s%s\n", indent, strings.Join(t.Headings, " | "))
	for _, row := range t.Rows {
		fmt.Fprintf(w, "%s%s\n", indent, strings.Join(row.Cells, " | "))
	}
}

func tagLine(w io.Writer, tags []gherkin.Tag, indent string) {
	if len(tags) == 0 {
		return
	}
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = "@" + t.Name
	}
	fmt.Fprintf(w, "%s%s\n", indent, styleTag.Render(strings.Join(names, " ")))
}

// wrap breaks s into width-limited lines joined with a bare newline (no
// continuation indent), a simple greedy word wrap (no hyphenation).
func wrap(s string, width int) string {
	if width <= 0 || len(s) <= width {
		return s
	}
	var b strings.Builder
	lineLen := 0
	for i, word := range strings.Fields(s) {
		if i > 0 {
			if lineLen+1+len(word) > width {
				b.WriteString("\n")
				lineLen = 0
			} else {
				b.WriteString(" ")
				lineLen++
			}
		}
		b.WriteString(word)
		lineLen += len(word)
	}
	return b.String()
}

// renderError prints a ParserError with a red gutter on its failing line.
func renderError(w io.Writer, err *gherkin.ParserError) {
	fmt.Fprintf(w, "%s %v\n", styleErrorGutter.Render("!"), err)
}
