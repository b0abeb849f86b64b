package gherkin_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moonrockz/gherkin"
)

// ignoreIDs drops the UUID fields (new on every parse, not meaningful for
// structural-equality assertions) from the comparison. ignoreBackrefs
// skips the unexported back-pointers (Scenario.container, Rule.feature)
// entirely rather than comparing them, which also sidesteps the cycle
// those back-pointers would otherwise create.
var ignoreIDs = cmp.Options{
	cmpopts.IgnoreFields(gherkin.Feature{}, "ID"),
	cmpopts.IgnoreFields(gherkin.Rule{}, "ID"),
	cmpopts.IgnoreFields(gherkin.Background{}, "ID"),
	cmpopts.IgnoreFields(gherkin.Scenario{}, "ID"),
	cmpopts.IgnoreFields(gherkin.Step{}, "ID"),
	cmpopts.IgnoreFields(gherkin.Tag{}, "ID"),
	cmpopts.IgnoreFields(gherkin.Text{}, "ID"),
	cmpopts.IgnoreFields(gherkin.Table{}, "ID"),
	cmpopts.IgnoreFields(gherkin.TableRow{}, "ID"),
	cmpopts.IgnoreFields(gherkin.Examples{}, "ID"),
}

var ignoreBackrefs = cmpopts.IgnoreUnexported(gherkin.Scenario{}, gherkin.Rule{})

func stepTexts(steps []*gherkin.Step) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.Text
	}
	return out
}

func TestParseFeature_Minimal(t *testing.T) {
	t.Parallel()

	f, err := gherkin.ParseFeature("Feature: A\n  Scenario: B\n    Given x\n", "en", "")
	require.NoError(t, err)

	require.Equal(t, "A", f.Name)
	require.Len(t, f.Children, 1)
	sc := f.Children[0].Scenario
	require.NotNil(t, sc)
	assert.Equal(t, "B", sc.Name)
	require.Len(t, sc.Steps, 1)
	assert.Equal(t, gherkin.StepGiven, sc.Steps[0].Type)
	assert.Equal(t, "Given", sc.Steps[0].Keyword)
	assert.Equal(t, "x", sc.Steps[0].Text)
}

func TestParseFeature_AndButResolution(t *testing.T) {
	t.Parallel()

	f, err := gherkin.ParseFeature("Feature: F\n Scenario: S\n  When a\n  And b\n  But c\n", "en", "")
	require.NoError(t, err)

	sc := f.Children[0].Scenario
	require.Len(t, sc.Steps, 3)
	for _, s := range sc.Steps {
		assert.Equal(t, gherkin.StepWhen, s.Type)
	}
	assert.Equal(t, []string{"a", "b", "c"}, stepTexts(sc.Steps))
}

func TestParseFeature_BackgroundInheritanceAcrossAnd(t *testing.T) {
	t.Parallel()

	f, err := gherkin.ParseFeature("Feature: F\n Background:\n  Given g\n Scenario: S\n  And s\n", "en", "")
	require.NoError(t, err)

	require.NotNil(t, f.Background)
	require.Len(t, f.Background.Steps, 1)

	sc := f.Children[0].Scenario
	require.Len(t, sc.Steps, 1)
	assert.Equal(t, gherkin.StepGiven, sc.Steps[0].Type)
	assert.Equal(t, "s", sc.Steps[0].Text)
}

func TestParseFeature_DocStringIndent(t *testing.T) {
	t.Parallel()

	input := "Feature: F\n Scenario: S\n  Given x\n    \"\"\"\n    hello\n     world\n    \"\"\"\n"
	f, err := gherkin.ParseFeature(input, "en", "")
	require.NoError(t, err)

	sc := f.Children[0].Scenario
	require.Len(t, sc.Steps, 1)
	require.NotNil(t, sc.Steps[0].DocString)
	assert.Equal(t, "hello\n world", sc.Steps[0].DocString.Value)
}

func TestParseFeature_OutlineWithExamples(t *testing.T) {
	t.Parallel()

	input := "Feature: F\n Scenario Outline: S\n  Given <n>\n  Examples:\n   | n |\n   | 1 |\n   | 2 |\n"
	f, err := gherkin.ParseFeature(input, "en", "")
	require.NoError(t, err)

	sc := f.Children[0].Scenario
	require.True(t, sc.IsOutline())
	require.Len(t, sc.Examples, 1)

	tbl := sc.Examples[0].Table
	require.NotNil(t, tbl)
	assert.Equal(t, []string{"n"}, tbl.Headings)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []string{"1"}, tbl.Rows[0].Cells)
	assert.Equal(t, []string{"2"}, tbl.Rows[1].Cells)
}

func TestParseFeature_SecondFeatureDiagnostic(t *testing.T) {
	t.Parallel()

	_, err := gherkin.ParseFeature("Feature: A\nFeature: B\n", "en", "")
	require.Error(t, err)

	var perr *gherkin.ParserError
	require.True(t, errors.As(err, &perr))
	assert.True(t, errors.Is(err, gherkin.ErrUnexpectedKeyword))
	assert.Equal(t, 2, perr.Line)
	assert.Contains(t, perr.Explanation, "Multiple features in one file are not supported.")
}

func TestParseFeature_Determinism(t *testing.T) {
	t.Parallel()

	input := "@smoke\nFeature: F\n Background:\n  Given g\n\n @wip\n Scenario: S\n  Given a\n  When b\n  Then c\n"
	a, err := gherkin.ParseFeature(input, "en", "x.feature")
	require.NoError(t, err)
	b, err := gherkin.ParseFeature(input, "en", "x.feature")
	require.NoError(t, err)

	if diff := cmp.Diff(a, b, ignoreIDs, ignoreBackrefs); diff != "" {
		t.Errorf("parsing the same input twice produced different ASTs (-first +second):\n%s", diff)
	}
}

func TestParseFeature_WhitespaceIdempotence(t *testing.T) {
	t.Parallel()

	tight := "Feature: F\n Scenario: S\n  Given a\n  When b\n"
	loose := "Feature: F\n\n\n Scenario: S\n\n  Given a\n\n  When b\n\n"

	a, err := gherkin.ParseFeature(tight, "en", "")
	require.NoError(t, err)
	b, err := gherkin.ParseFeature(loose, "en", "")
	require.NoError(t, err)

	lineOpts := cmp.Options{
		cmpopts.IgnoreFields(gherkin.Feature{}, "Line"),
		cmpopts.IgnoreFields(gherkin.Scenario{}, "Line"),
		cmpopts.IgnoreFields(gherkin.Step{}, "Line"),
	}
	if diff := cmp.Diff(a, b, ignoreIDs, ignoreBackrefs, lineOpts); diff != "" {
		t.Errorf("blank lines changed the AST (-tight +loose):\n%s", diff)
	}
}

func TestParseRule(t *testing.T) {
	t.Parallel()

	r, err := gherkin.ParseRule("Rule: orders must balance\n Scenario: S\n  Given a\n", "en", "")
	require.NoError(t, err)
	assert.Equal(t, "orders must balance", r.Name)
	require.Len(t, r.Scenarios, 1)
}

func TestParseRule_WithoutHeaderUsesPlaceholder(t *testing.T) {
	t.Parallel()

	r, err := gherkin.ParseRule(" Scenario: S\n  Given a\n", "en", "")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Empty(t, r.Name)
	require.Len(t, r.Scenarios, 1)
	assert.Equal(t, "S", r.Scenarios[0].Name)
}

func TestParseScenario(t *testing.T) {
	t.Parallel()

	s, err := gherkin.ParseScenario("Scenario: S\n Given a\n When b\n", "en", "")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "S", s.Name)
	require.Len(t, s.Steps, 2)
}

func TestParseScenario_ReturnsFirstScenario(t *testing.T) {
	t.Parallel()

	s, err := gherkin.ParseScenario(
		"Scenario: first\n Given a\nScenario: second\n Given b\n", "en", "")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "first", s.Name)
}

func TestParseSteps(t *testing.T) {
	t.Parallel()

	steps, err := gherkin.ParseSteps("Given a\nWhen b\nThen c\n", "en", "")
	require.NoError(t, err)
	require.Len(t, steps, 3)
	assert.Equal(t, []gherkin.StepType{gherkin.StepGiven, gherkin.StepWhen, gherkin.StepThen},
		[]gherkin.StepType{steps[0].Type, steps[1].Type, steps[2].Type})
}

func TestParseStep_RequiresExactlyOne(t *testing.T) {
	t.Parallel()

	_, err := gherkin.ParseStep("Given a\nWhen b\n", "en", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gherkin.ErrMultipleSteps))

	s, err := gherkin.ParseStep("Given a\n", "en", "")
	require.NoError(t, err)
	assert.Equal(t, "a", s.Text)
}

func TestParseTags(t *testing.T) {
	t.Parallel()

	tags, err := gherkin.ParseTags("@a @b  @c  # comment\n")
	require.NoError(t, err)

	names := make([]string, len(tags))
	for i, tg := range tags {
		names[i] = tg.Name
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestAndButWithoutPriorFails(t *testing.T) {
	t.Parallel()

	_, err := gherkin.ParseFeature("Feature: F\n Scenario: S\n  And a\n", "en", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gherkin.ErrAndOrButWithoutPrior))
}

func TestGenericBulletWithNoPriorResolvesToSentinel(t *testing.T) {
	t.Parallel()

	f, err := gherkin.ParseFeature("Feature: F\n Scenario: S\n  * a\n", "en", "")
	require.NoError(t, err)
	sc := f.Children[0].Scenario
	require.Len(t, sc.Steps, 1)
	assert.Equal(t, gherkin.StepUnknown, sc.Steps[0].Type)
}

func TestSecondBackgroundWithSteps(t *testing.T) {
	t.Parallel()

	_, err := gherkin.ParseFeature(
		"Feature: F\n Background:\n  Given a\n Background:\n  Given b\n", "en", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gherkin.ErrSecondBackground))
}

func TestBackgroundAfterScenarioFails(t *testing.T) {
	t.Parallel()

	_, err := gherkin.ParseFeature(
		"Feature: F\n Scenario: S\n  Given a\n Background:\n  Given b\n", "en", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gherkin.ErrBackgroundAfterScenario))
}

func TestBackgroundWithTagsFails(t *testing.T) {
	t.Parallel()

	_, err := gherkin.ParseFeature("Feature: F\n @wip\n Background:\n  Given a\n", "en", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gherkin.ErrBackgroundWithTags))
}

func TestExamplesOutsideOutlineFails(t *testing.T) {
	t.Parallel()

	_, err := gherkin.ParseFeature(
		"Feature: F\n Scenario: S\n  Given a\n  Examples:\n   | n |\n   | 1 |\n", "en", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gherkin.ErrExamplesOutsideOutline))
}

func TestExamplesAfterRuleHeaderFails(t *testing.T) {
	t.Parallel()

	input := "Feature: F\n" +
		" Scenario Outline: S\n" +
		"  Given <n>\n" +
		"  Examples:\n" +
		"   | n |\n" +
		"   | 1 |\n" +
		" Rule: R\n" +
		"  Examples:\n" +
		"   | n |\n"
	_, err := gherkin.ParseFeature(input, "en", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gherkin.ErrExamplesOutsideOutline))
}

func TestMalformedTableCellCountMismatch(t *testing.T) {
	t.Parallel()

	_, err := gherkin.ParseFeature(
		"Feature: F\n Scenario: S\n  Given a\n   | n | m |\n   | 1 |\n", "en", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gherkin.ErrMalformedTable))
}

func TestDocStringBeforeStepFails(t *testing.T) {
	t.Parallel()

	_, err := gherkin.ParseSteps("\"\"\"\nx\n\"\"\"\n", "en", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gherkin.ErrDocStringBeforeStep))
}

func TestUnknownLanguageFails(t *testing.T) {
	t.Parallel()

	_, err := gherkin.NewParser("xx-unknown")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gherkin.ErrLanguageNotSupported))
}

func TestLanguageDirectiveSwitchesKeywords(t *testing.T) {
	t.Parallel()

	input := "# language: de\nFunktionalität: F\n Szenario: S\n  Angenommen x\n"
	f, err := gherkin.ParseFeature(input, "en", "")
	require.NoError(t, err)
	assert.Equal(t, "de", f.Language)
	assert.Equal(t, "Funktionalität", f.Keyword)
	sc := f.Children[0].Scenario
	require.Len(t, sc.Steps, 1)
	assert.Equal(t, gherkin.StepGiven, sc.Steps[0].Type)
	assert.Equal(t, "Angenommen", sc.Steps[0].Keyword)
}

func TestStripTrailingColonOnStepWithTable(t *testing.T) {
	t.Parallel()

	p, err := gherkin.NewParser("en", gherkin.WithStripTrailingColon(true))
	require.NoError(t, err)

	f, err := p.ParseFeature(
		"Feature: F\n Scenario: S\n  Given data:\n   | n |\n   | 1 |\n", "")
	require.NoError(t, err)
	step := f.Children[0].Scenario.Steps[0]
	assert.Equal(t, "data", step.Text)

	// At most one colon comes off; "::" keeps one.
	f, err = p.ParseFeature(
		"Feature: F\n Scenario: S\n  Given data::\n   | n |\n   | 1 |\n", "")
	require.NoError(t, err)
	assert.Equal(t, "data:", f.Children[0].Scenario.Steps[0].Text)

	// A bare step keeps its colon even when stripping is on.
	f, err = p.ParseFeature("Feature: F\n Scenario: S\n  Given data:\n", "")
	require.NoError(t, err)
	assert.Equal(t, "data:", f.Children[0].Scenario.Steps[0].Text)
}

func TestParserReuseResetsLanguageDirective(t *testing.T) {
	t.Parallel()

	p, err := gherkin.NewParser("en")
	require.NoError(t, err)

	f, err := p.ParseFeature("# language: de\nFunktionalität: A\n Szenario: S\n  Angenommen x\n", "")
	require.NoError(t, err)
	assert.Equal(t, "de", f.Language)

	f, err = p.ParseFeature("Feature: B\n Scenario: S\n  Given x\n", "")
	require.NoError(t, err)
	assert.Equal(t, "en", f.Language)
	assert.Equal(t, "Feature", f.Keyword)
}

func TestParseFeature_NoFeatureInInputFails(t *testing.T) {
	t.Parallel()

	_, err := gherkin.ParseFeature("", "en", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gherkin.ErrNoFeature))

	_, err = gherkin.ParseFeature("# only a comment\n", "en", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gherkin.ErrNoFeature))
}

func TestEmptyExamplesDoesNotCaptureNextTable(t *testing.T) {
	t.Parallel()

	input := "Feature: f\n" +
		" Scenario Outline: o\n" +
		"  Given a <x>\n" +
		" Examples:\n" +
		" Scenario: b\n" +
		"  Given d\n" +
		"   | p |\n" +
		"   | 1 |\n"
	f, err := gherkin.ParseFeature(input, "en", "")
	require.NoError(t, err)

	outline := f.Children[0].Scenario
	require.Len(t, outline.Examples, 1)
	assert.Nil(t, outline.Examples[0].Table)

	sc := f.Children[1].Scenario
	require.Len(t, sc.Steps, 1)
	require.NotNil(t, sc.Steps[0].Table)
	assert.Equal(t, []string{"p"}, sc.Steps[0].Table.Headings)
}

func TestScenarioBeforeFeatureDiagnostic(t *testing.T) {
	t.Parallel()

	_, err := gherkin.ParseFeature("Scenario: S\n Given a\n", "en", "")
	require.Error(t, err)
	var perr *gherkin.ParserError
	require.True(t, errors.As(err, &perr))
	assert.Contains(t, perr.Explanation, "before Feature")
}
