package game

const (
	// BoardCount is the size of the selectable board pool per room.
	BoardCount = 100

	// FreeCell is the wildcard value at the center of every grid. It is
	// treated as always called.
	FreeCell = 0

	// freeCellIndex is the center of the 5x5 grid.
	freeCellIndex = 12

	gridSeedPrime = 15485863
	lcgMultiplier = 16807
	lcgModulus    = 2147483647
)

// Grid is a 5x5 bingo board in row-major order. Column c holds values
// from [15c+1, 15c+15], except the FreeCell at index 12.
type Grid [25]int

// BoardGrid derives the grid for a board id. The mapping is pure: the
// same id always yields the same grid, so clients can be handed grids
// from here instead of deriving their own.
//
// Each column draws five distinct values from its 15-number range off a
// multiplicative LCG seeded by the board id; duplicate draws are
// rejected and redrawn.
func BoardGrid(boardID int) Grid {
	seed := int64(boardID) * gridSeedPrime % lcgModulus
	next := func() int64 {
		seed = seed * lcgMultiplier % lcgModulus
		return seed
	}

	var g Grid
	for col := 0; col < 5; col++ {
		base := col*15 + 1
		var used [15]bool
		for row := 0; row < 5; row++ {
			for {
				offset := int(next() % 15)
				if used[offset] {
					continue
				}
				used[offset] = true
				g[row*5+col] = base + offset
				break
			}
		}
	}
	g[freeCellIndex] = FreeCell
	return g
}

// ValidBoardID reports whether id falls inside the board pool.
func ValidBoardID(id int) bool {
	return id >= 1 && id <= BoardCount
}
