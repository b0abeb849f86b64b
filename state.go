package gherkin

import (
	"strings"

	"github.com/google/uuid"
)

// action is the Grammar State Machine's top-level dispatch (§4.7
// preamble): comments and blank lines are special-cased outside any
// state (except inside a doc-string, where every line is data), then
// the line is routed to the current state's handler. A handler that
// neither consumes the line nor raises asks the Failure Oracle for an
// explanation before failing.
func (p *Parser) action(raw string) error {
	stripped := strings.TrimSpace(raw)

	if isCommentLine(stripped) && p.state != stateMultilineText {
		return p.actionComment(stripped)
	}

	var handled bool
	var err error
	switch p.state {
	case stateInitial:
		handled, err = p.actionInitial(stripped)
	case stateFeature:
		handled, err = p.actionFeature(stripped)
	case stateRule:
		handled, err = p.actionRule(stripped)
	case stateBackground, stateScenario:
		handled, err = p.actionScenario(stripped)
	case stateTaggableStatement:
		handled, err = p.subactionDetectTaggableStatement(stripped)
	case stateSteps:
		handled, err = p.actionSteps(raw, stripped)
	case stateMultilineText:
		err = p.actionMultilineText(raw)
		handled = true
	case stateTable:
		err = p.actionTable(raw)
		handled = true
	default:
		return p.err(ErrUnknownState, stripped)
	}

	if err != nil {
		return err
	}
	if !handled {
		return newOracleError(p.line, p.filename, stripped, p.diagnose(stripped))
	}
	return nil
}

// actionComment handles a line whose stripped form starts with "#". A
// leading "# language: xx" comment (only honored at the very start of a
// whole-file parse, before any tags, §6) switches the active Keyword
// Table; every other comment is simply dropped (comments are not part
// of the AST, §1).
func (p *Parser) actionComment(stripped string) error {
	if p.state != stateInitial || len(p.pendingTags) != 0 || p.variant != variantFeature {
		return nil
	}
	body := strings.TrimSpace(stripped[1:])
	if !strings.HasPrefix(strings.ToLower(body), "language:") {
		return nil
	}
	lang := strings.TrimSpace(body[len("language:"):])
	k, err := keywordsFor(lang)
	if err != nil {
		return err
	}
	p.language = lang
	p.keywords = k
	return nil
}

// actionInitial (§4.7 Initial): accept tag lines and "Feature:"; nothing
// else is legal before a Feature.
func (p *Parser) actionInitial(stripped string) (bool, error) {
	if isTagLine(stripped) {
		tags, err := parseTagLine(stripped, p.line, p.filename)
		if err != nil {
			return false, err
		}
		p.pendingTags = append(p.pendingTags, tags...)
		return true, nil
	}
	if kw, ok := matchBlockKeyword(stripped, p.keywords.Feature); ok {
		p.buildFeature(kw, stripped)
		p.state = stateFeature
		return true, nil
	}
	return false, nil
}

// subactionDetectTaggableStatement (§4.7): used once a tag line is seen,
// and directly by the Feature/Rule/Scenario/Steps handlers to detect the
// next taggable statement (Rule, Scenario, ScenarioOutline, or Examples
// within a ScenarioOutline). Background is detected here too, so every
// state that can see a "Background:" line routes it through the same
// misuse checks.
func (p *Parser) subactionDetectTaggableStatement(stripped string) (bool, error) {
	if isTagLine(stripped) {
		tags, err := parseTagLine(stripped, p.line, p.filename)
		if err != nil {
			return false, err
		}
		p.pendingTags = append(p.pendingTags, tags...)
		p.state = stateTaggableStatement
		return true, nil
	}
	if handled, err := p.detectBackground(stripped); handled || err != nil {
		return handled, err
	}
	if kw, ok := matchBlockKeyword(stripped, p.keywords.Rule); ok {
		p.buildRuleStatement(kw, stripped)
		p.state = stateRule
		return true, nil
	}
	if kw, ok := matchBlockKeyword(stripped, p.keywords.Scenario); ok {
		p.buildScenarioStatement(ScenarioKindScenario, kw, stripped)
		p.state = stateScenario
		return true, nil
	}
	if kw, ok := matchBlockKeyword(stripped, p.keywords.ScenarioOutline); ok {
		p.buildScenarioStatement(ScenarioKindOutline, kw, stripped)
		p.state = stateScenario
		return true, nil
	}
	if kw, ok := matchBlockKeyword(stripped, p.keywords.Examples); ok {
		if err := p.buildExamples(kw, stripped); err != nil {
			return false, err
		}
		p.state = stateTable
		return true, nil
	}
	return false, nil
}

// isFeatureLine reports whether a stripped line opens a Feature. The
// description-collecting handlers refuse such a line instead of
// swallowing it as text, so the Failure Oracle can explain it (a file
// holds at most one Feature, and it precedes everything else).
func (p *Parser) isFeatureLine(stripped string) bool {
	_, ok := matchBlockKeyword(stripped, p.keywords.Feature)
	return ok
}

// detectBackground recognizes a "Background:" line from any state that
// may legitimately (first occurrence) or illegitimately (second
// occurrence, or one following a Scenario) see one; buildBackgroundStatement
// itself tells the two apart.
func (p *Parser) detectBackground(stripped string) (bool, error) {
	kw, ok := matchBlockKeyword(stripped, p.keywords.Background)
	if !ok {
		return false, nil
	}
	if err := p.buildBackgroundStatement(kw, stripped); err != nil {
		return false, err
	}
	p.state = stateBackground
	return true, nil
}

// actionFeature (§4.7 Feature): accept Background:, accept the next
// taggable statement (or more tags), else the line is description text.
func (p *Parser) actionFeature(stripped string) (bool, error) {
	if handled, err := p.subactionDetectTaggableStatement(stripped); handled || err != nil {
		return handled, err
	}
	if p.isFeatureLine(stripped) {
		return false, nil
	}
	p.feature.Description = append(p.feature.Description, stripped)
	return true, nil
}

// actionRule (§4.7 Rule): same shape as actionFeature, but description
// lines accumulate on the Rule; a further "Rule:" line ends the current
// Rule and starts a new one.
func (p *Parser) actionRule(stripped string) (bool, error) {
	if handled, err := p.subactionDetectTaggableStatement(stripped); handled || err != nil {
		return handled, err
	}
	if p.isFeatureLine(stripped) {
		return false, nil
	}
	p.rule.Description = append(p.rule.Description, stripped)
	return true, nil
}

// actionScenario (§4.7 Scenario/Background — the same handler fills
// whichever statement is currently open): detect the first step (which
// ends the description part and moves to Steps), detect a repeated or
// misplaced Background, detect the next taggable statement, else collect
// a description line.
func (p *Parser) actionScenario(stripped string) (bool, error) {
	p.lastStepType = ""
	step, err := p.parseStepLine(stripped)
	if err != nil {
		return false, err
	}
	if step != nil {
		if p.statement == nil {
			return false, nil
		}
		p.state = stateSteps
		p.statement.appendStep(step)
		return true, nil
	}
	if handled, err := p.subactionDetectTaggableStatement(stripped); handled || err != nil {
		return handled, err
	}
	if p.statement == nil || p.isFeatureLine(stripped) {
		return false, nil
	}
	p.statement.appendDescription(stripped)
	return true, nil
}

// actionSteps (§4.7 Steps): a doc-string opener, a step, the next
// taggable statement, or a table row.
func (p *Parser) actionSteps(raw, stripped string) (bool, error) {
	if fence := docStringFence(stripped); fence != "" {
		if p.statement.lastStep() == nil {
			return false, p.err(ErrDocStringBeforeStep, raw)
		}
		p.doc = openDocString(raw, stripped, p.line)
		p.state = stateMultilineText
		return true, nil
	}

	step, err := p.parseStepLine(stripped)
	if err != nil {
		return false, err
	}
	if step != nil {
		p.statement.appendStep(step)
		return true, nil
	}

	if handled, err := p.subactionDetectTaggableStatement(stripped); handled || err != nil {
		return handled, err
	}

	if isTableRow(stripped) {
		if p.statement.lastStep() == nil {
			return false, p.err(ErrTableBeforeStep, raw)
		}
		p.state = stateTable
		if err := p.actionTable(raw); err != nil {
			return false, err
		}
		return true, nil
	}

	return false, nil
}

// actionMultilineText (§4.5): capture doc-string body lines until the
// matching fence closes the block.
func (p *Parser) actionMultilineText(raw string) error {
	if p.doc.isTerminator(raw) {
		step := p.statement.lastStep()
		step.DocString = p.doc.build()
		p.normalizeStepName(step)
		p.doc = nil
		p.state = stateSteps
		return nil
	}
	return p.doc.capture(raw, p.line, p.filename)
}

// actionTable (§4.6): accumulate table rows; a non-row line closes the
// table (binding it to the current step or Examples) and re-dispatches
// the line to the Steps handler.
func (p *Parser) actionTable(raw string) error {
	stripped := strings.TrimSpace(raw)
	if !isTableRow(stripped) {
		p.closeTable()
		p.state = stateSteps
		if stripped == "" {
			return nil
		}
		handled, err := p.actionSteps(raw, stripped)
		if err != nil {
			return err
		}
		if !handled {
			return newOracleError(p.line, p.filename, stripped, p.diagnose(stripped))
		}
		return nil
	}

	if p.table == nil {
		p.table = &tableBuilder{}
	}
	if !isWellFormedTableRow(stripped) {
		p.warnf("malformed table row at %s:%d", p.filename, p.line)
	}
	return p.table.addRow(stripped, p.line, p.filename)
}

func (p *Parser) closeTable() {
	if p.table == nil {
		// An "Examples:" header with no rows still ends here.
		p.examplesOpen = nil
		return
	}
	if p.examplesOpen != nil {
		p.examplesOpen.Table = p.table.build()
		p.examplesOpen = nil
	} else if step := p.statement.lastStep(); step != nil {
		step.Table = p.table.build()
		p.normalizeStepName(step)
	}
	p.table = nil
}

// --- AST node builders -----------------------------------------------
//
// Each builder creates the node at the current line, wires it into its
// owner, and resets the pending-tags accumulator (§4.9's "mutable
// pending tags" design note) — except buildBackgroundStatement, which
// forbids pending tags outright (Background is never taggable).

func titleAfterKeyword(line, keyword string) string {
	if len(line) <= len(keyword)+1 {
		return ""
	}
	return strings.TrimSpace(line[len(keyword)+1:])
}

func (p *Parser) buildFeature(keyword, line string) {
	name := titleAfterKeyword(line, keyword)
	f := newFeature(keyword, name, p.language, p.pendingTags, p.line)
	p.feature = f
	p.container = f
	p.rule = nil
	p.pendingTags = nil
}

func (p *Parser) buildRuleStatement(keyword, line string) {
	name := titleAfterKeyword(line, keyword)
	r := newRule(keyword, name, p.pendingTags, p.line)
	p.rule = r
	p.container = r
	p.statement = nil // a stale Scenario must not catch the next Examples
	if p.feature != nil {
		p.feature.addRule(r)
	}
	p.pendingTags = nil
}

func (p *Parser) buildBackgroundStatement(keyword, line string) error {
	if p.container != nil && p.container.hasScenario() {
		return p.err(ErrBackgroundAfterScenario, line)
	}
	if len(p.pendingTags) > 0 {
		return p.err(ErrBackgroundWithTags, line)
	}
	if p.container != nil {
		if cur := p.container.currentBackground(); cur != nil && len(cur.Steps) > 0 {
			return p.err(ErrSecondBackground, line)
		}
	}
	name := titleAfterKeyword(line, keyword)
	b := newBackground(keyword, name, p.line)
	if p.container != nil {
		_ = p.container.setBackground(b)
	}
	p.statement = b
	return nil
}

func (p *Parser) buildScenarioStatement(kind ScenarioKind, keyword, line string) {
	name := titleAfterKeyword(line, keyword)
	s := newScenario(kind, keyword, name, p.pendingTags, p.line)
	p.statement = s
	if p.firstScenario == nil {
		p.firstScenario = s
	}
	if p.container != nil {
		p.container.addScenario(s)
	}
	p.pendingTags = nil
}

func (p *Parser) buildExamples(keyword, line string) error {
	sc := p.currentScenario()
	if sc == nil || !sc.IsOutline() {
		return p.err(ErrExamplesOutsideOutline, line)
	}
	name := titleAfterKeyword(line, keyword)
	ex := &Examples{
		ID:      uuid.NewString(),
		Keyword: keyword,
		Name:    name,
		Tags:    p.pendingTags,
		Line:    p.line,
	}
	sc.Examples = append(sc.Examples, ex)
	p.examplesOpen = ex
	p.pendingTags = nil
	return nil
}
