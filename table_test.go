package gherkin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTableRowCells(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "| a | b | c |", []string{"a", "b", "c"}},
		{"escaped pipe", `| a\|b | c |`, []string{"a|b", "c"}},
		{"extra whitespace", "|  a  |  b  |", []string{"a", "b"}},
		{"single cell", "| only |", []string{"only"}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, splitTableRowCells(tc.in))
		})
	}
}

func TestIsWellFormedTableRow(t *testing.T) {
	t.Parallel()

	assert.True(t, isWellFormedTableRow("| a | b |"))
	assert.False(t, isWellFormedTableRow("| a | b"))
}

func TestTableBuilder_HeaderThenRows(t *testing.T) {
	t.Parallel()

	tb := &tableBuilder{}
	require.NoError(t, tb.addRow("| name | age |", 1, "f.feature"))
	require.NoError(t, tb.addRow("| Alice | 30 |", 2, "f.feature"))
	require.NoError(t, tb.addRow("| Bob | 25 |", 3, "f.feature"))

	table := tb.build()
	assert.Equal(t, []string{"name", "age"}, table.Headings)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"Alice", "30"}, table.Rows[0].Cells)
	assert.Equal(t, []string{"Bob", "25"}, table.Rows[1].Cells)
	assert.Equal(t, 1, table.Line)
}

func TestTableBuilder_CellCountMismatch(t *testing.T) {
	t.Parallel()

	tb := &tableBuilder{}
	require.NoError(t, tb.addRow("| name | age |", 1, "f.feature"))
	err := tb.addRow("| Alice |", 2, "f.feature")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedTable))
}
