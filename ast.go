package gherkin

import "github.com/google/uuid"

// StepType is the semantic classification of a Step, resolved at parse
// time from its surface keyword. StepUnknown is the sentinel used for
// a generic "*" bullet with no prior typed step to inherit from; its
// resolution is deferred to the step-definition registry.
type StepType string

const (
	StepGiven   StepType = "given"
	StepWhen    StepType = "when"
	StepThen    StepType = "then"
	StepUnknown StepType = "step"
)

// ScenarioKind distinguishes a plain Scenario from a Scenario Outline.
type ScenarioKind string

const (
	ScenarioKindScenario ScenarioKind = "scenario"
	ScenarioKindOutline  ScenarioKind = "scenario_outline"
)

// Tag is an "@word" marker attached to the next taggable statement.
type Tag struct {
	ID   string
	Name string
	Line int
}

// Text is a doc-string argument attached to a Step.
type Text struct {
	ID          string
	Value       string
	ContentType string
	Line        int
}

// TableRow is one data row of a Table (either a step's data table, or an
// Examples table); the header row is held in Table.Headings instead.
type TableRow struct {
	ID    string
	Cells []string
	Line  int
}

// Table is a pipe-delimited grid attached to a Step or an Examples block.
// Every row has as many cells as there are Headings.
type Table struct {
	ID       string
	Headings []string
	Rows     []TableRow
	Line     int
}

// Step is a single line of behavior, introduced by a keyword
// (Given/When/Then/And/But/*).
type Step struct {
	ID        string
	Keyword   string // surface keyword, trailing separator trimmed
	Type      StepType
	Text      string
	DocString *Text
	Table     *Table
	Line      int
}

// Background is a shared step prelude attached to a Feature or Rule.
// Tags are forbidden on Background (enforced by the parser).
type Background struct {
	ID          string
	Keyword     string
	Name        string
	Description []string
	Steps       []*Step
	Line        int
}

func newBackground(keyword, name string, line int) *Background {
	return &Background{ID: uuid.NewString(), Keyword: keyword, Name: name, Line: line}
}

// Examples is a named table whose headings are placeholder names used by
// an enclosing ScenarioOutline's steps. It exists only as a direct child
// of a ScenarioOutline.
type Examples struct {
	ID      string
	Keyword string
	Name    string
	Tags    []Tag
	Table   *Table
	Line    int
}

// Scenario represents a Scenario or, when Kind is ScenarioKindOutline, a
// Scenario Outline. A Scenario Outline carries its Examples blocks in
// source order; the parser does not reject an outline that has none.
type Scenario struct {
	ID          string
	Kind        ScenarioKind
	Keyword     string
	Name        string
	Description []string
	Tags        []Tag
	Steps       []*Step
	Examples    []*Examples
	Line        int

	container scenarioContainer
}

// IsOutline reports whether this Scenario is a Scenario Outline.
func (s *Scenario) IsOutline() bool {
	return s.Kind == ScenarioKindOutline
}

// EffectiveTags returns the scenario's own tags unioned with its
// container's tags (Feature or Rule), own tags first.
func (s *Scenario) EffectiveTags() []string {
	tags := make([]string, 0, len(s.Tags))
	for _, t := range s.Tags {
		tags = append(tags, t.Name)
	}
	if s.container != nil {
		tags = append(tags, s.container.ownTags()...)
	}
	return tags
}

func newScenario(kind ScenarioKind, keyword, name string, tags []Tag, line int) *Scenario {
	return &Scenario{
		ID:      uuid.NewString(),
		Kind:    kind,
		Keyword: keyword,
		Name:    name,
		Tags:    tags,
		Line:    line,
	}
}

// FeatureChild is a direct child of a Feature in source order: exactly
// one of Rule or Scenario is set. Background is not part of this list —
// a Feature has at most one, held directly on Feature.Background.
type FeatureChild struct {
	Rule     *Rule
	Scenario *Scenario
}

// Rule groups Scenarios under a Gherkin v6 business rule. A Rule belongs
// to exactly one Feature.
type Rule struct {
	ID          string
	Keyword     string
	Name        string
	Description []string
	Tags        []Tag
	Background  *Background
	Scenarios   []*Scenario
	Line        int

	feature *Feature
}

func newRule(keyword, name string, tags []Tag, line int) *Rule {
	return &Rule{ID: uuid.NewString(), Keyword: keyword, Name: name, Tags: tags, Line: line}
}

// InheritedSteps returns the Background steps a Rule should use for
// And/But resolution (and, later, execution) when the Rule has no
// Background of its own with steps: a read-through to the parent
// Feature's Background. Never a copy.
func (r *Rule) InheritedSteps() []*Step {
	if r.Background != nil && len(r.Background.Steps) > 0 {
		return r.Background.Steps
	}
	if r.feature != nil && r.feature.Background != nil {
		return r.feature.Background.Steps
	}
	return nil
}

// scenarioContainer is implemented by *Feature and *Rule: the two node
// kinds the parser can be "currently filling in" with a Background and
// Scenarios.
type scenarioContainer interface {
	setBackground(*Background) error
	currentBackground() *Background
	addScenario(*Scenario)
	hasScenario() bool
	ownTags() []string
	lastBackgroundStepType() StepType
}

func (f *Feature) setBackground(b *Background) error {
	f.Background = b
	return nil
}

func (f *Feature) currentBackground() *Background { return f.Background }

func (f *Feature) addScenario(s *Scenario) {
	s.container = f
	f.Children = append(f.Children, FeatureChild{Scenario: s})
}

func (f *Feature) hasScenario() bool {
	for _, c := range f.Children {
		if c.Scenario != nil {
			return true
		}
	}
	return false
}

func (f *Feature) ownTags() []string {
	tags := make([]string, 0, len(f.Tags))
	for _, t := range f.Tags {
		tags = append(tags, t.Name)
	}
	return tags
}

func (f *Feature) lastBackgroundStepType() StepType {
	if f.Background == nil || len(f.Background.Steps) == 0 {
		return ""
	}
	return f.Background.Steps[len(f.Background.Steps)-1].Type
}

// addRule appends a Rule as a Feature child in source order.
func (f *Feature) addRule(r *Rule) {
	r.feature = f
	f.Children = append(f.Children, FeatureChild{Rule: r})
}

func (r *Rule) setBackground(b *Background) error {
	r.Background = b
	return nil
}

func (r *Rule) currentBackground() *Background { return r.Background }

func (r *Rule) addScenario(s *Scenario) {
	s.container = r
	r.Scenarios = append(r.Scenarios, s)
}

func (r *Rule) hasScenario() bool { return len(r.Scenarios) > 0 }

func (r *Rule) ownTags() []string {
	tags := make([]string, 0, len(r.Tags))
	for _, t := range r.Tags {
		tags = append(tags, t.Name)
	}
	if r.feature != nil {
		tags = append(tags, r.feature.ownTags()...)
	}
	return tags
}

func (r *Rule) lastBackgroundStepType() StepType {
	steps := r.InheritedSteps()
	if len(steps) == 0 {
		return ""
	}
	return steps[len(steps)-1].Type
}

// Feature is the top-level grouping, one per file. A Feature precedes any
// Rule/Scenario/Background in the file it appears in.
type Feature struct {
	ID          string
	Keyword     string
	Name        string
	Description []string
	Language    string
	Tags        []Tag
	Background  *Background
	Children    []FeatureChild
	Line        int
}

// statement is implemented by *Background and *Scenario: the two node
// kinds the parser can be "currently filling in" with description lines
// and steps (§4.7's Background/Scenario handlers are the same function).
type statement interface {
	appendDescription(line string)
	appendStep(step *Step)
	lastStep() *Step
}

func (b *Background) appendDescription(line string) { b.Description = append(b.Description, line) }
func (b *Background) appendStep(s *Step)            { b.Steps = append(b.Steps, s) }
func (b *Background) lastStep() *Step {
	if len(b.Steps) == 0 {
		return nil
	}
	return b.Steps[len(b.Steps)-1]
}

func (s *Scenario) appendDescription(line string) { s.Description = append(s.Description, line) }
func (s *Scenario) appendStep(step *Step)         { s.Steps = append(s.Steps, step) }
func (s *Scenario) lastStep() *Step {
	if len(s.Steps) == 0 {
		return nil
	}
	return s.Steps[len(s.Steps)-1]
}

func newFeature(keyword, name, language string, tags []Tag, line int) *Feature {
	return &Feature{
		ID:       uuid.NewString(),
		Keyword:  keyword,
		Name:     name,
		Language: language,
		Tags:     tags,
		Line:     line,
	}
}
