package game

// lineIndices enumerates the 12 winning lines of a grid: five rows,
// five columns, the main diagonal and the anti-diagonal. The order
// matters: when several lines complete on the same call, the first one
// here is the one reported.
var lineIndices = [12][5]int{
	{0, 1, 2, 3, 4},
	{5, 6, 7, 8, 9},
	{10, 11, 12, 13, 14},
	{15, 16, 17, 18, 19},
	{20, 21, 22, 23, 24},
	{0, 5, 10, 15, 20},
	{1, 6, 11, 16, 21},
	{2, 7, 12, 17, 22},
	{3, 8, 13, 18, 23},
	{4, 9, 14, 19, 24},
	{0, 6, 12, 18, 24},
	{4, 8, 12, 16, 20},
}

// Line is one winning line of a specific grid.
type Line struct {
	Indices [5]int
	Numbers [5]int
}

// Lines returns the 12 winning lines of a grid in verification order.
func Lines(g Grid) []Line {
	out := make([]Line, len(lineIndices))
	for i, idx := range lineIndices {
		out[i] = Line{Indices: idx}
		for j, cell := range idx {
			out[i].Numbers[j] = g[cell]
		}
	}
	return out
}

// WinResult describes a verified winning line on a board.
type WinResult struct {
	BoardID     int    `json:"board_id"`
	LineIndices [5]int `json:"line_indices"`
	LineNumbers [5]int `json:"line_numbers"`
}

// VerifyWin checks a board against the called sequence. In strict mode
// the winning line must contain the most recent call; that is the rule
// applied to player claims, so a line that was already complete moves
// ago cannot be claimed late. Lenient mode drops the recency
// requirement and is used only for the house's forced settlement.
func VerifyWin(boardID int, called []int, strict bool) (WinResult, bool) {
	if len(called) == 0 {
		return WinResult{}, false
	}
	last := called[len(called)-1]
	calledSet := make(map[int]bool, len(called))
	for _, n := range called {
		calledSet[n] = true
	}

	grid := BoardGrid(boardID)
	for _, line := range Lines(grid) {
		if strict && !lineContains(line, last) {
			continue
		}
		if lineComplete(line, calledSet) {
			return WinResult{
				BoardID:     boardID,
				LineIndices: line.Indices,
				LineNumbers: line.Numbers,
			}, true
		}
	}
	return WinResult{}, false
}

func lineContains(l Line, n int) bool {
	for _, v := range l.Numbers {
		if v == n {
			return true
		}
	}
	return false
}

func lineComplete(l Line, calledSet map[int]bool) bool {
	for _, v := range l.Numbers {
		if v != FreeCell && !calledSet[v] {
			return false
		}
	}
	return true
}
