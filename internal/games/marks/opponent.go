package marks

import "github.com/vovakirdan/turn-arcade/internal/engine"

// randomCell picks uniformly among the empty cells.
func randomCell(s engine.GameState, rng engine.Rand) (int, bool) {
	cells := s.EmptyCells()
	if len(cells) == 0 {
		return 0, false
	}
	return cells[rng.Intn(len(cells))], true
}

// greedyCell completes a line if possible, otherwise blocks the opponent's
// immediate win, otherwise falls back to random.
func greedyCell(s engine.GameState, n int, rng engine.Rand) (int, bool) {
	cells := s.EmptyCells()
	if len(cells) == 0 {
		return 0, false
	}

	for _, p := range []engine.Player{s.Active, s.Active.Other()} {
		mark := engine.MarkOf(p)
		for _, c := range cells {
			s.Grid[c] = mark
			won := lineThrough(s.Grid, s.Width, s.Height, n, c) != nil
			s.Grid[c] = engine.Empty
			if won {
				return c, true
			}
		}
	}

	return cells[rng.Intn(len(cells))], true
}
