// Package engine defines the contract shared by all turn-based games in the
// arcade. Engines own their GameState exclusively and change it only through
// validated transitions. The package has no dependencies on the UI layer.
package engine

// Player identifies a participant. Single-agent games only use Player1.
type Player int

const (
	NoPlayer Player = iota
	Player1
	Player2
)

// Other returns the opposing participant.
func (p Player) Other() Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return NoPlayer
	}
}

// String returns a human-readable name for the player.
func (p Player) String() string {
	switch p {
	case Player1:
		return "Player 1"
	case Player2:
		return "Player 2"
	default:
		return "Nobody"
	}
}

// Cell is the content of one grid cell.
type Cell int

const (
	Empty Cell = iota
	MarkX      // Player1's mark
	MarkO      // Player2's mark
	Food
	SnakeBody
	SnakeHead
)

// MarkOf returns the mark placed by a player.
func MarkOf(p Player) Cell {
	switch p {
	case Player1:
		return MarkX
	case Player2:
		return MarkO
	default:
		return Empty
	}
}

// Rune returns the ASCII glyph for a cell.
func (c Cell) Rune() rune {
	switch c {
	case MarkX:
		return 'X'
	case MarkO:
		return 'O'
	case Food:
		return '*'
	case SnakeBody:
		return 'o'
	case SnakeHead:
		return '@'
	default:
		return '.'
	}
}

// Status is the lifecycle state of a game. Every status except InProgress is
// terminal and only Reset leaves it.
type Status int

const (
	StatusInProgress Status = iota
	StatusWon
	StatusDraw
	StatusAborted
	StatusGameOver // movement games: the agent crashed
)

// Terminal reports whether no further moves are accepted.
func (s Status) Terminal() bool {
	return s != StatusInProgress
}

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in_progress"
	case StatusWon:
		return "won"
	case StatusDraw:
		return "draw"
	case StatusAborted:
		return "aborted"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Direction is a movement heading for single-agent games.
type Direction int

const (
	DirNone Direction = iota // keep the current heading
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return DirNone
	}
}

// Delta returns the (dx, dy) step for the heading. Y grows downwards.
func (d Direction) Delta() (int, int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Choice is a throw from a fixed finite choice set (rock-paper-scissors).
type Choice int

const (
	NoChoice Choice = iota
	Rock
	Paper
	Scissors
)

// Choices lists the legal throws in a stable order.
var Choices = []Choice{Rock, Paper, Scissors}

// Beats reports whether c wins against other.
func (c Choice) Beats(other Choice) bool {
	return (c == Rock && other == Scissors) ||
		(c == Scissors && other == Paper) ||
		(c == Paper && other == Rock)
}

func (c Choice) String() string {
	switch c {
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissors:
		return "scissors"
	default:
		return "none"
	}
}

// ParseChoice maps a name to a Choice. Unknown names return NoChoice.
func ParseChoice(s string) Choice {
	switch s {
	case "rock", "r":
		return Rock
	case "paper", "p":
		return Paper
	case "scissors", "s":
		return Scissors
	default:
		return NoChoice
	}
}

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// Move is one input event. Which fields matter depends on the variant:
// Cell for mark placing, Dir for movement, Choice for finite choice games.
// Player may be left as NoPlayer to mean "whoever is active".
type Move struct {
	Player Player
	Cell   int
	Dir    Direction
	Choice Choice
}

// PlaceAt builds a mark-placing move for the active player.
func PlaceAt(cell int) Move {
	return Move{Cell: cell}
}

// Steer builds a movement move.
func Steer(d Direction) Move {
	return Move{Player: Player1, Dir: d, Cell: -1}
}

// Throw builds a choice move for the given player.
func Throw(p Player, c Choice) Move {
	return Move{Player: p, Choice: c, Cell: -1}
}
