package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/turn-arcade/internal/engine"
	"github.com/vovakirdan/turn-arcade/internal/registry"
)

// Intent is what a key press asks the game screen to do.
type Intent int

const (
	IntentNone Intent = iota
	IntentMove
	IntentCursor
	IntentNewGame
	IntentResetScore
	IntentBack
	IntentHelp
	IntentQuit
)

// Input is a translated key press. Move is set for IntentMove, DX/DY for
// IntentCursor.
type Input struct {
	Intent Intent
	Move   engine.Move
	DX, DY int
}

func moveInput(m engine.Move) Input {
	return Input{Intent: IntentMove, Move: m}
}

// Translate maps a key press to an input for a game of the given kind.
// cells is the board size, used for direct digit placement on small boards.
func (k GameKeyMap) Translate(kind registry.Kind, msg tea.KeyMsg, cursor, cells int) Input {
	switch {
	case key.Matches(msg, k.Quit):
		return Input{Intent: IntentQuit}
	case key.Matches(msg, k.Back):
		return Input{Intent: IntentBack}
	case key.Matches(msg, k.Help):
		return Input{Intent: IntentHelp}
	case key.Matches(msg, k.NewGame):
		return Input{Intent: IntentNewGame}
	case key.Matches(msg, k.ResetScore):
		return Input{Intent: IntentResetScore}
	}

	switch kind {
	case registry.KindMarks:
		return k.translateMarks(msg, cursor, cells)
	case registry.KindChoice:
		return k.translateChoice(msg)
	case registry.KindMovement:
		return k.translateMovement(msg)
	}
	return Input{}
}

func (k GameKeyMap) translateMarks(msg tea.KeyMsg, cursor, cells int) Input {
	switch {
	case key.Matches(msg, k.Up):
		return Input{Intent: IntentCursor, DY: -1}
	case key.Matches(msg, k.Down):
		return Input{Intent: IntentCursor, DY: 1}
	case key.Matches(msg, k.Left):
		return Input{Intent: IntentCursor, DX: -1}
	case key.Matches(msg, k.Right):
		return Input{Intent: IntentCursor, DX: 1}
	case key.Matches(msg, k.Place):
		return moveInput(engine.PlaceAt(cursor))
	}

	// 1-9 address the cells of a small board directly
	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		if idx := int(s[0] - '1'); idx < cells && cells <= 9 {
			return moveInput(engine.PlaceAt(idx))
		}
	}
	return Input{}
}

func (k GameKeyMap) translateChoice(msg tea.KeyMsg) Input {
	var c engine.Choice
	switch {
	case key.Matches(msg, k.Rock):
		c = engine.Rock
	case key.Matches(msg, k.Paper):
		c = engine.Paper
	case key.Matches(msg, k.Scissors):
		c = engine.Scissors
	default:
		return Input{}
	}
	// no player: the engine assigns the throw to whoever is active
	return moveInput(engine.Move{Choice: c, Cell: -1})
}

func (k GameKeyMap) translateMovement(msg tea.KeyMsg) Input {
	switch {
	case key.Matches(msg, k.Up):
		return moveInput(engine.Steer(engine.DirUp))
	case key.Matches(msg, k.Down):
		return moveInput(engine.Steer(engine.DirDown))
	case key.Matches(msg, k.Left):
		return moveInput(engine.Steer(engine.DirLeft))
	case key.Matches(msg, k.Right):
		return moveInput(engine.Steer(engine.DirRight))
	}
	return Input{}
}
