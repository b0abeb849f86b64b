package gherkin

import (
	_ "embed"
	"fmt"

	"github.com/goccy/go-yaml"
)

//go:embed languages.yaml
var languagesYAML []byte

// concept is the grammatical concept a keyword alias stands for.
type concept int

const (
	conceptFeature concept = iota
	conceptRule
	conceptBackground
	conceptScenario
	conceptScenarioOutline
	conceptExamples
)

// languageKeywords holds, for one language, the ordered alias lists for
// every concept. Order matters: alias matching is first-match, so a
// longer/more-specific alias must precede any alias that is a prefix of
// it (§4.1).
type languageKeywords struct {
	Name            string   `yaml:"name"`
	Native          string   `yaml:"native"`
	Feature         []string `yaml:"feature"`
	Rule            []string `yaml:"rule"`
	Background      []string `yaml:"background"`
	Scenario        []string `yaml:"scenario"`
	ScenarioOutline []string `yaml:"scenario_outline"`
	Examples        []string `yaml:"examples"`
	Given           []string `yaml:"given"`
	When            []string `yaml:"when"`
	Then            []string `yaml:"then"`
	And             []string `yaml:"and"`
	But             []string `yaml:"but"`
	Generic         []string `yaml:"generic"`
}

func (k languageKeywords) block(c concept) []string {
	switch c {
	case conceptFeature:
		return k.Feature
	case conceptRule:
		return k.Rule
	case conceptBackground:
		return k.Background
	case conceptScenario:
		return k.Scenario
	case conceptScenarioOutline:
		return k.ScenarioOutline
	case conceptExamples:
		return k.Examples
	}
	return nil
}

var languages map[string]languageKeywords

func init() {
	raw := map[string]languageKeywords{}
	if err := yaml.Unmarshal(languagesYAML, &raw); err != nil {
		panic(fmt.Sprintf("gherkin: embedded languages.yaml is invalid: %v", err))
	}
	languages = raw
}

// HasLanguage reports whether language is a known IETF-like language tag.
func HasLanguage(language string) bool {
	_, ok := languages[language]
	return ok
}

// keywordsFor returns the keyword table for language, or an error if the
// language tag is unknown.
func keywordsFor(language string) (languageKeywords, error) {
	k, ok := languages[language]
	if !ok {
		return languageKeywords{}, newParserError(ErrLanguageNotSupported, 0, "", language)
	}
	return k, nil
}
