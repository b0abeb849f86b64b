// Package gherkin parses a line-oriented behavior-description language —
// a dialect extending Gherkin v5 with v6 Rule support and keyword
// aliases — into a typed AST rooted at a Feature (or, for the
// sub-grammar entry points, a Rule, Scenario, or list of Steps).
//
// The parser is a line-driven state machine (see state.go) that never
// looks ahead past the current line; an internationalized Keyword Table
// (keywords.go) supplies the surface aliases it matches against.
package gherkin

import (
	"fmt"
	"log/slog"
	"os"
)

const defaultLanguage = "en"

// stripStepsWithTrailingColon mirrors BEHAVE_STRIP_STEPS_WITH_TRAILING_COLON
// (§6): read once at process start, exactly like the original it's
// grounded on reads its environment variable at import time.
var stripStepsWithTrailingColon = os.Getenv("BEHAVE_STRIP_STEPS_WITH_TRAILING_COLON") == "yes"

// variant selects which sub-grammar entry point (§4.9) a Parser drives.
type variant int

const (
	variantFeature variant = iota
	variantRule
	variantScenario
	variantSteps
)

// state is the Grammar State Machine's current state (§4.7).
type state int

const (
	stateInitial state = iota
	stateFeature
	stateRule
	stateBackground
	stateScenario
	stateTaggableStatement
	stateSteps
	stateMultilineText
	stateTable
)

// Parser drives the line-driven state machine over a single input
// buffer. It is strictly single-threaded and single-pass (§5): one
// instance holds all mutable parse state and is not safe for concurrent
// use. Every Parse* method resets the parse state first, so one Parser
// may be reused for several inputs one after another.
type Parser struct {
	baseLanguage       string // as configured at construction
	baseKeywords       languageKeywords
	language           string // active language, may differ after "# language:"
	keywords           languageKeywords
	variant            variant
	logger             *slog.Logger
	stripTrailingColon bool

	state        state
	line         int
	lastStepType StepType
	filename     string

	feature       *Feature
	rule          *Rule
	container     scenarioContainer // current Feature or Rule
	statement     statement         // current Background or Scenario being filled
	firstScenario *Scenario
	pendingTags   []Tag

	table *tableBuilder
	doc   *docStringBuilder

	// examplesOpen is the Examples block currently accepting a table, set
	// when a Table follows an "Examples:" header rather than a step.
	examplesOpen *Examples
}

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithLogger overrides the logger used for the non-fatal malformed-table
// warning (§7). The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

// WithStripTrailingColon overrides, for this Parser only, whether a step
// that ends up with a doc-string or table attached has a single trailing
// colon stripped from its name (§6/§9). The default comes from the
// BEHAVE_STRIP_STEPS_WITH_TRAILING_COLON environment variable, read once
// at process start; this option lets a caller (e.g. a CLI flag or config
// file) override that per instance without mutating process environment.
func WithStripTrailingColon(strip bool) Option {
	return func(p *Parser) { p.stripTrailingColon = strip }
}

// NewParser creates a Parser for the given language tag (IETF-like, e.g.
// "en", "de", "fr", "zh-CN"); an empty language defaults to "en". Returns
// ErrLanguageNotSupported for an unknown tag.
func NewParser(language string, opts ...Option) (*Parser, error) {
	if language == "" {
		language = defaultLanguage
	}
	k, err := keywordsFor(language)
	if err != nil {
		return nil, err
	}
	p := &Parser{
		baseLanguage:       language,
		baseKeywords:       k,
		language:           language,
		keywords:           k,
		logger:             slog.Default(),
		stripTrailingColon: stripStepsWithTrailingColon,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *Parser) warnf(format string, args ...any) {
	if p.logger != nil {
		p.logger.Warn("gherkin: " + fmt.Sprintf(format, args...))
	}
}

// reset clears all mutable parse state, restoring the constructor's
// language (a prior buffer's "# language:" directive must not leak into
// the next parse), ready to parse a new buffer.
func (p *Parser) reset(filename string) {
	p.language = p.baseLanguage
	p.keywords = p.baseKeywords
	p.state = stateInitial
	p.line = 0
	p.lastStepType = ""
	p.filename = filename
	p.feature = nil
	p.rule = nil
	p.container = nil
	p.statement = nil
	p.firstScenario = nil
	p.pendingTags = nil
	p.table = nil
	p.doc = nil
	p.examplesOpen = nil
}

func (p *Parser) err(reason error, lineText string) *ParserError {
	return newParserError(reason, p.line, p.filename, lineText)
}

// run feeds text through the state machine from initial, honoring
// the per-entry-point seeding described in §4.9.
func (p *Parser) run(text string, v variant, initial state, filename string) error {
	p.variant = v
	p.reset(filename)
	p.state = initial

	switch initial {
	case stateSteps:
		// -- Steps entry point: accumulate into a synthetic Scenario
		// container so steps have somewhere to land (§4.9).
		kw := p.keywords.Scenario[0]
		p.buildScenarioStatement(ScenarioKindScenario, kw, kw+":")
	case stateRule:
		// -- Rule entry point: a placeholder Rule header, so a body
		// without a leading "Rule:" line still has a container. A real
		// "Rule:" first line simply replaces it.
		kw := p.keywords.Rule[0]
		p.buildRuleStatement(kw, kw+":")
	}

	for _, raw := range splitLines(text) {
		p.line++
		if isBlank(raw) && p.state != stateMultilineText {
			continue
		}
		if err := p.action(raw); err != nil {
			return err
		}
	}

	if p.table != nil {
		if err := p.actionTable(""); err != nil {
			return err
		}
	}
	return nil
}

// ParseFeature parses a whole Gherkin file, returning its Feature.
func ParseFeature(text, language, filename string) (*Feature, error) {
	p, err := NewParser(language)
	if err != nil {
		return nil, err
	}
	return p.ParseFeature(text, filename)
}

// ParseFeature is the instance form of ParseFeature, reusing p's
// language and logger across calls (each call still resets parse state).
func (p *Parser) ParseFeature(text, filename string) (*Feature, error) {
	if err := p.run(text, variantFeature, stateInitial, filename); err != nil {
		return nil, err
	}
	if p.feature == nil {
		return nil, p.err(ErrNoFeature, "")
	}
	return p.feature, nil
}

// ParseRule parses a Rule (with its optional Background and Scenarios).
func ParseRule(text, language, filename string) (*Rule, error) {
	p, err := NewParser(language)
	if err != nil {
		return nil, err
	}
	return p.ParseRule(text, filename)
}

func (p *Parser) ParseRule(text, filename string) (*Rule, error) {
	if err := p.run(text, variantRule, stateRule, filename); err != nil {
		return nil, err
	}
	return p.rule, nil
}

// ParseScenario parses a Scenario (or Scenario Outline) with its steps,
// returning the first Scenario the text defines.
func ParseScenario(text, language, filename string) (*Scenario, error) {
	p, err := NewParser(language)
	if err != nil {
		return nil, err
	}
	return p.ParseScenario(text, filename)
}

func (p *Parser) ParseScenario(text, filename string) (*Scenario, error) {
	if err := p.run(text, variantScenario, stateScenario, filename); err != nil {
		return nil, err
	}
	return p.firstScenario, nil
}

// ParseSteps parses zero or more steps with no enclosing Scenario header.
func ParseSteps(text, language, filename string) ([]*Step, error) {
	p, err := NewParser(language)
	if err != nil {
		return nil, err
	}
	return p.ParseSteps(text, filename)
}

func (p *Parser) ParseSteps(text, filename string) ([]*Step, error) {
	if err := p.run(text, variantSteps, stateSteps, filename); err != nil {
		return nil, err
	}
	if p.firstScenario == nil {
		return nil, nil
	}
	return p.firstScenario.Steps, nil
}

// ParseStep parses exactly one step, failing ErrMultipleSteps otherwise.
func ParseStep(text, language, filename string) (*Step, error) {
	p, err := NewParser(language)
	if err != nil {
		return nil, err
	}
	return p.ParseStep(text, filename)
}

func (p *Parser) ParseStep(text, filename string) (*Step, error) {
	steps, err := p.ParseSteps(text, filename)
	if err != nil {
		return nil, err
	}
	if len(steps) != 1 {
		return nil, p.err(ErrMultipleSteps, "")
	}
	return steps[0], nil
}

// currentScenario returns the Scenario currently being filled, or nil if
// the current statement is a Background (or none is open).
func (p *Parser) currentScenario() *Scenario {
	s, _ := p.statement.(*Scenario)
	return s
}
