package gherkin

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLocalization verifies §8's localization property: for every
// supported language, a minimal feature built from that language's own
// first-choice aliases parses, and the resulting node keywords equal the
// aliases that were matched.
func TestLocalization(t *testing.T) {
	t.Parallel()

	var tags []string
	for tag := range languages {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	require.NotEmpty(t, tags)

	for _, tag := range tags {
		tag := tag
		t.Run(tag, func(t *testing.T) {
			t.Parallel()

			k := languages[tag]
			featureKW := k.Feature[0]
			scenarioKW := k.Scenario[0]
			givenKW := k.Given[0]

			text := fmt.Sprintf("%s: F\n %s: S\n  %sx\n", featureKW, scenarioKW, givenKW)

			f, err := ParseFeature(text, tag, "")
			require.NoErrorf(t, err, "language %s: %q", tag, text)

			assert.Equal(t, featureKW, f.Keyword)
			require.Len(t, f.Children, 1)
			sc := f.Children[0].Scenario
			require.NotNil(t, sc)
			assert.Equal(t, scenarioKW, sc.Keyword)
			require.Len(t, sc.Steps, 1)
			assert.Equal(t, strings.TrimRight(givenKW, " "), sc.Steps[0].Keyword)
			assert.Equal(t, "x", sc.Steps[0].Text)
		})
	}
}

func TestHasLanguage(t *testing.T) {
	t.Parallel()

	assert.True(t, HasLanguage("en"))
	assert.True(t, HasLanguage("zh-CN"))
	assert.False(t, HasLanguage("xx-nope"))
}
