package engine

import (
	"fmt"
	"strings"
)

// GameState is the authoritative snapshot of one play session.
// Values returned by Engine.State are deep copies.
type GameState struct {
	Game   string
	Width  int
	Height int
	Grid   []Cell // row-major, len == Width*Height; empty for non-grid games

	Active Player
	Status Status
	Winner Player // set iff Status == StatusWon

	History []Move
	Score   map[Player]int
	Round   int

	// Movement games.
	Direction Direction
	Body      []Point // head first
	Food      Point

	// Finite choice games: throws of the last resolved round.
	LastChoices [2]Choice

	// Mark placing games: cells of the completed line.
	WinningLine []int
}

// Index converts a point to a grid index, or -1 if outside the grid.
func (s GameState) Index(p Point) int {
	if p.X < 0 || p.X >= s.Width || p.Y < 0 || p.Y >= s.Height {
		return -1
	}
	return p.Y*s.Width + p.X
}

// At returns the cell at (x, y), Empty when outside the grid.
func (s GameState) At(x, y int) Cell {
	i := s.Index(Point{X: x, Y: y})
	if i < 0 || i >= len(s.Grid) {
		return Empty
	}
	return s.Grid[i]
}

// EmptyCells lists the indexes of all Empty cells in ascending order.
func (s GameState) EmptyCells() []int {
	cells := make([]int, 0, len(s.Grid))
	for i, c := range s.Grid {
		if c == Empty {
			cells = append(cells, i)
		}
	}
	return cells
}

// ScoreOf returns a player's score.
func (s GameState) ScoreOf(p Player) int {
	return s.Score[p]
}

// Clone performs a deep copy.
func (s GameState) Clone() GameState {
	out := s
	if s.Grid != nil {
		out.Grid = append([]Cell(nil), s.Grid...)
	}
	if s.History != nil {
		out.History = append([]Move(nil), s.History...)
	}
	if s.Body != nil {
		out.Body = append([]Point(nil), s.Body...)
	}
	if s.WinningLine != nil {
		out.WinningLine = append([]int(nil), s.WinningLine...)
	}
	out.Score = make(map[Player]int, len(s.Score))
	for p, v := range s.Score {
		out.Score[p] = v
	}
	return out
}

// String renders the grid as rows of glyphs, mostly for tests and debugging.
func (s GameState) String() string {
	var b strings.Builder
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			b.WriteRune(s.At(x, y).Rune())
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "status=%s active=%s score=%d:%d round=%d\n",
		s.Status, s.Active, s.Score[Player1], s.Score[Player2], s.Round)
	return b.String()
}
