package gherkin

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel reasons, usable with errors.Is against a *ParserError's Reason.
// These mirror the sub-kinds named in spec §7; ParserError itself is the
// single error kind exposed at the public boundary.
var (
	ErrUnknownState             = errors.New("parser in unknown state")
	ErrUnexpectedKeyword        = errors.New("unexpected keyword")
	ErrFeatureMisplaced         = errors.New("feature misplaced")
	ErrMultipleFeatures         = errors.New("multiple features in one file are not supported")
	ErrBackgroundAfterScenario  = errors.New("background may not occur after scenario")
	ErrBackgroundWithTags       = errors.New("background does not support tags")
	ErrSecondBackground         = errors.New("second background: can have only one")
	ErrExamplesOutsideOutline   = errors.New("examples must only appear inside scenario outline")
	ErrStepBeforeScenario       = errors.New("step before scenario")
	ErrDocStringBeforeStep      = errors.New("doc-string before any step")
	ErrTableBeforeStep          = errors.New("table before any step")
	ErrBadDocStringIndent       = errors.New("bad indent in doc-string")
	ErrMalformedTable           = errors.New("malformed table")
	ErrBadTag                   = errors.New("bad tag")
	ErrAndOrButWithoutPrior     = errors.New("and/but step requires a previous given/when/then step")
	ErrLanguageNotSupported     = errors.New("language not supported")
	ErrMultipleSteps            = errors.New("multiple steps: expected exactly one")
	ErrNoFeature                = errors.New("no feature found")
)

// ParserError is the single error kind returned at the parser's public
// boundary, enriched with the location of the failure and, where the
// Failure Oracle (§4.8) could explain it, a human-readable reason.
type ParserError struct {
	Reason      error  // one of the Err* sentinels above; always set
	Line        int    // 1-based line number of the failure
	LineText    string // raw text of the failing line, if any
	Filename    string // set by the caller-facing entry points, may be empty
	Explanation string // the Failure Oracle's best guess, if any (§4.8)
}

func newParserError(reason error, line int, filename, lineText string) *ParserError {
	return &ParserError{Reason: reason, Line: line, LineText: lineText, Filename: filename}
}

func newOracleError(line int, filename, lineText, explanation string) *ParserError {
	return &ParserError{
		Reason:      ErrUnexpectedKeyword,
		Line:        line,
		LineText:    lineText,
		Filename:    filename,
		Explanation: explanation,
	}
}

func (e *ParserError) Error() string {
	msg := e.Reason.Error()
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	if e.LineText != "" {
		msg += fmt.Sprintf(": %q", strings.TrimSpace(e.LineText))
	}
	if e.Explanation != "" {
		msg += "\nREASON: " + e.Explanation
	}
	name := e.Filename
	if name == "" {
		name = "<string>"
	}
	return fmt.Sprintf("failed to parse %q: %s", name, msg)
}

// Unwrap exposes the underlying sentinel so callers can use errors.Is.
func (e *ParserError) Unwrap() error { return e.Reason }
