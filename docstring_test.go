package gherkin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocStringBuilder_StripsOpenerIndent(t *testing.T) {
	t.Parallel()

	d := openDocString(`    """`, `"""`, 1)
	require.NoError(t, d.capture("    hello", 2, "f.feature"))
	require.NoError(t, d.capture("     world", 3, "f.feature"))

	text := d.build()
	assert.Equal(t, "hello\n world", text.Value)
	assert.Equal(t, "text/plain", text.ContentType)
	assert.Equal(t, 1, text.Line)
}

func TestDocStringBuilder_RejectsShallowerIndent(t *testing.T) {
	t.Parallel()

	d := openDocString(`    """`, `"""`, 1)
	err := d.capture("  oops", 2, "f.feature")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadDocStringIndent))
}

func TestDocStringBuilder_TerminatorMatchesFence(t *testing.T) {
	t.Parallel()

	d := openDocString(`  '''`, `'''`, 1)
	assert.False(t, d.isTerminator(`  """`))
	assert.True(t, d.isTerminator(`  '''`))
}
