package gherkin

// diagnose implements the Failure Oracle (§4.8): when a state handler
// rejects a line, probe it against each block keyword and return a
// context-aware explanation, or "" if none applies.
func (p *Parser) diagnose(line string) string {
	if _, ok := matchBlockKeyword(line, p.keywords.block(conceptFeature)); ok {
		return p.diagnoseFeatureUsage()
	}
	if _, ok := matchBlockKeyword(line, p.keywords.block(conceptRule)); ok {
		return "Rule should not be used here."
	}
	if _, ok := matchBlockKeyword(line, p.keywords.block(conceptBackground)); ok {
		return p.diagnoseBackgroundUsage()
	}
	if _, ok := matchBlockKeyword(line, p.keywords.block(conceptScenario)); ok {
		return p.diagnoseScenarioUsage()
	}
	if _, ok := matchBlockKeyword(line, p.keywords.block(conceptScenarioOutline)); ok {
		return p.diagnoseScenarioOutlineUsage()
	}
	if _, ok := matchBlockKeyword(line, p.keywords.block(conceptExamples)); ok {
		return p.diagnoseExamplesUsage()
	}
	if p.variant == variantFeature && p.feature == nil {
		return "No feature found."
	}
	return ""
}

func (p *Parser) diagnoseFeatureUsage() string {
	if p.feature != nil {
		return "Multiple features in one file are not supported."
	}
	return "Feature should not be used here."
}

func (p *Parser) diagnoseBackgroundUsage() string {
	if p.container != nil && p.container.hasScenario() {
		return "Background may not occur after Scenario/ScenarioOutline."
	}
	if len(p.pendingTags) > 0 {
		return "Background does not support tags."
	}
	return "Background should not be used here."
}

func (p *Parser) diagnoseScenarioUsage() string {
	if p.container == nil {
		return "Scenario may not occur before Feature."
	}
	return "Scenario should not be used here."
}

func (p *Parser) diagnoseScenarioOutlineUsage() string {
	if p.container == nil {
		return "ScenarioOutline may not occur before Feature."
	}
	return "ScenarioOutline should not be used here."
}

func (p *Parser) diagnoseExamplesUsage() string {
	if p.statement == nil || p.currentScenario() == nil || !p.currentScenario().IsOutline() {
		return "Examples must only appear inside scenario outline."
	}
	return "Examples should not be used here."
}
