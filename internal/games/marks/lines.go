package marks

import (
	"slices"

	"github.com/vovakirdan/turn-arcade/internal/engine"
)

// axes are the four line orientations: row, column, and both diagonals.
var axes = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

// lineThrough returns the sorted cells of a run of at least n identical marks
// passing through idx, or nil. Only lines through the last played cell can
// have been completed by that move.
func lineThrough(grid []engine.Cell, w, h, n, idx int) []int {
	mark := grid[idx]
	if mark == engine.Empty {
		return nil
	}
	x, y := idx%w, idx/w

	for _, a := range axes {
		line := []int{idx}
		for _, sign := range [2]int{1, -1} {
			for step := 1; ; step++ {
				nx, ny := x+sign*step*a[0], y+sign*step*a[1]
				if nx < 0 || nx >= w || ny < 0 || ny >= h || grid[ny*w+nx] != mark {
					break
				}
				line = append(line, ny*w+nx)
			}
		}
		if len(line) >= n {
			slices.Sort(line)
			return line
		}
	}
	return nil
}

// FindLine scans the whole board for a completed line and returns its owner.
// It is the exhaustive counterpart of the incremental check.
func FindLine(s engine.GameState, n int) (engine.Player, []int) {
	for i, c := range s.Grid {
		if c != engine.MarkX && c != engine.MarkO {
			continue
		}
		if line := lineThrough(s.Grid, s.Width, s.Height, n, i); line != nil {
			if c == engine.MarkX {
				return engine.Player1, line
			}
			return engine.Player2, line
		}
	}
	return engine.NoPlayer, nil
}
