package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardGridDeterministic(t *testing.T) {
	for id := 1; id <= BoardCount; id++ {
		first := BoardGrid(id)
		second := BoardGrid(id)
		require.Equal(t, first, second, "board %d must map to a stable grid", id)
	}
}

func TestBoardGridStructure(t *testing.T) {
	for id := 1; id <= BoardCount; id++ {
		g := BoardGrid(id)

		require.Equal(t, FreeCell, g[12], "board %d center must be the free cell", id)

		for col := 0; col < 5; col++ {
			lo, hi := col*15+1, col*15+15
			seen := make(map[int]bool)
			for row := 0; row < 5; row++ {
				idx := row*5 + col
				if idx == 12 {
					continue
				}
				v := g[idx]
				assert.GreaterOrEqual(t, v, lo, "board %d cell %d below column range", id, idx)
				assert.LessOrEqual(t, v, hi, "board %d cell %d above column range", id, idx)
				assert.False(t, seen[v], "board %d column %d repeats %d", id, col, v)
				seen[v] = true
			}
		}
	}
}

func TestBoardGridsVary(t *testing.T) {
	distinct := make(map[string]bool)
	for id := 1; id <= BoardCount; id++ {
		distinct[fmt.Sprint(BoardGrid(id))] = true
	}
	// The pool must not collapse onto a handful of layouts.
	assert.GreaterOrEqual(t, len(distinct), 95)
}

func TestValidBoardID(t *testing.T) {
	assert.False(t, ValidBoardID(0))
	assert.True(t, ValidBoardID(1))
	assert.True(t, ValidBoardID(BoardCount))
	assert.False(t, ValidBoardID(BoardCount+1))
	assert.False(t, ValidBoardID(-3))
}
