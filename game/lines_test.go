package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinesLayout(t *testing.T) {
	g := BoardGrid(1)
	lines := Lines(g)
	require.Len(t, lines, 12)

	// Rows first, then columns, then the two diagonals.
	assert.Equal(t, [5]int{0, 1, 2, 3, 4}, lines[0].Indices)
	assert.Equal(t, [5]int{20, 21, 22, 23, 24}, lines[4].Indices)
	assert.Equal(t, [5]int{0, 5, 10, 15, 20}, lines[5].Indices)
	assert.Equal(t, [5]int{4, 9, 14, 19, 24}, lines[9].Indices)
	assert.Equal(t, [5]int{0, 6, 12, 18, 24}, lines[10].Indices)
	assert.Equal(t, [5]int{4, 8, 12, 16, 20}, lines[11].Indices)

	for _, line := range lines {
		for j, idx := range line.Indices {
			assert.Equal(t, g[idx], line.Numbers[j])
		}
	}
}

func TestVerifyWinEmptyCalled(t *testing.T) {
	_, won := VerifyWin(1, nil, false)
	assert.False(t, won)
	_, won = VerifyWin(1, nil, true)
	assert.False(t, won)
}

func TestVerifyWinTopRow(t *testing.T) {
	g := BoardGrid(3)
	called := []int{g[0], g[1], g[2], g[3], g[4]}

	res, won := VerifyWin(3, called, true)
	require.True(t, won)
	assert.Equal(t, 3, res.BoardID)
	assert.Equal(t, [5]int{0, 1, 2, 3, 4}, res.LineIndices)
	assert.Equal(t, [5]int{g[0], g[1], g[2], g[3], g[4]}, res.LineNumbers)
}

func TestVerifyWinFreeCellCountsAsCalled(t *testing.T) {
	g := BoardGrid(7)
	// Middle column needs only its four real numbers; the center is
	// wildcard.
	called := []int{g[2], g[7], g[17], g[22]}

	res, won := VerifyWin(7, called, true)
	require.True(t, won)
	assert.Equal(t, [5]int{2, 7, 12, 17, 22}, res.LineIndices)
}

func TestVerifyWinStrictRequiresLastCall(t *testing.T) {
	g := BoardGrid(7)
	// Complete the middle column, then call an unrelated number last.
	called := []int{g[2], g[7], g[17], g[22], g[0]}

	_, wonStrict := VerifyWin(7, called, true)
	assert.False(t, wonStrict, "a line finished moves ago must not pass the strict check")

	res, wonLenient := VerifyWin(7, called, false)
	require.True(t, wonLenient)
	assert.Equal(t, [5]int{2, 7, 12, 17, 22}, res.LineIndices)
}

func TestVerifyWinRowReportedBeforeColumn(t *testing.T) {
	g := BoardGrid(9)
	called := []int{g[1], g[2], g[3], g[4], g[5], g[10], g[15], g[20], g[0]}

	res, won := VerifyWin(9, called, true)
	require.True(t, won)
	// Both the top row and the first column are complete and contain
	// the last call; the row wins the tie.
	assert.Equal(t, [5]int{0, 1, 2, 3, 4}, res.LineIndices)
}

func TestVerifyWinIncompleteLine(t *testing.T) {
	g := BoardGrid(4)
	called := []int{g[0], g[1], g[2], g[3]}
	_, won := VerifyWin(4, called, false)
	assert.False(t, won)
}
