package gherkin

import "github.com/google/uuid"

// parseStepLine implements the Step Parser (§4.4). It returns (nil, nil)
// when line isn't a step at all ("not a step"). lastStepType tracks the
// last non-generic, non-inherit semantic type seen in the current block;
// it is threaded through the Parser rather than this function so it
// persists across calls within one Background/Scenario.
func (p *Parser) parseStepLine(line string) (*Step, error) {
	m, ok := matchStepKeyword(line, p.keywords)
	if !ok {
		return nil, nil
	}

	var resolved StepType
	switch m.Raw {
	case rawGiven:
		resolved = StepGiven
		p.lastStepType = resolved
	case rawWhen:
		resolved = StepWhen
		p.lastStepType = resolved
	case rawThen:
		resolved = StepThen
		p.lastStepType = resolved
	case rawAnd, rawBut:
		if p.lastStepType == "" {
			p.lastStepType = p.fallbackBackgroundStepType()
			if p.lastStepType == "" {
				return nil, newParserError(ErrAndOrButWithoutPrior, p.line, p.filename, line)
			}
		}
		resolved = p.lastStepType
	case rawGeneric:
		if p.lastStepType != "" {
			resolved = p.lastStepType
		} else {
			// -- OPEN QUESTION (spec.md §9): no prior typed step in this
			// block (a "*" does not consult the Background). Defer
			// resolution to the step-definition registry rather than
			// guessing a type.
			resolved = StepUnknown
		}
	}

	return &Step{
		ID:      uuid.NewString(),
		Keyword: m.Alias,
		Type:    resolved,
		Text:    m.Rest,
		Line:    p.line,
	}, nil
}

// fallbackBackgroundStepType resolves an And/But step with no prior typed
// step in its own block against the last step of the applicable
// Background — the current container's own Background, or (for a Rule
// without one) the Feature's, via Rule.InheritedSteps.
func (p *Parser) fallbackBackgroundStepType() StepType {
	if p.container == nil {
		return ""
	}
	return p.container.lastBackgroundStepType()
}

// normalizeStepName applies the BEHAVE_STRIP_STEPS_WITH_TRAILING_COLON
// rule (§6/§9): strip at most one trailing colon from a step's text, but
// only once that step has ended up with a doc-string or a table attached.
func (p *Parser) normalizeStepName(step *Step) {
	if !p.stripTrailingColon {
		return
	}
	if len(step.Text) > 0 && step.Text[len(step.Text)-1] == ':' {
		step.Text = step.Text[:len(step.Text)-1]
	}
}
