package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/turn-arcade/internal/registry"
)

// GameKeyMap defines the key bindings used while a game is running.
type GameKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Place      key.Binding
	Rock       key.Binding
	Paper      key.Binding
	Scissors   key.Binding
	NewGame    key.Binding
	ResetScore key.Binding
	Back       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Place, k.NewGame, k.Back, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Place},
		{k.Rock, k.Paper, k.Scissors},
		{k.NewGame, k.ResetScore, k.Back, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h", "a"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "d"),
			key.WithHelp("→/l", "right"),
		),
		Place: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "place"),
		),
		Rock: key.NewBinding(
			key.WithKeys("1", "r"),
			key.WithHelp("1/r", "rock"),
		),
		Paper: key.NewBinding(
			key.WithKeys("2", "p"),
			key.WithHelp("2/p", "paper"),
		),
		Scissors: key.NewBinding(
			key.WithKeys("3", "s"),
			key.WithHelp("3/s", "scissors"),
		),
		NewGame: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new game"),
		),
		ResetScore: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reset score"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "menu"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to menu actions.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}

// kindHelp narrows the help footer to the keys a game kind uses.
type kindHelp struct {
	keys GameKeyMap
	kind registry.Kind
}

// ShortHelp returns key bindings for the short help view.
func (h kindHelp) ShortHelp() []key.Binding {
	k := h.keys
	switch h.kind {
	case registry.KindChoice:
		return []key.Binding{k.Rock, k.Paper, k.Scissors, k.NewGame, k.ResetScore, k.Back, k.Help}
	case registry.KindMovement:
		return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.NewGame, k.Back, k.Help}
	}
	return k.ShortHelp()
}

// FullHelp returns key bindings for the full help view.
func (h kindHelp) FullHelp() [][]key.Binding {
	k := h.keys
	switch h.kind {
	case registry.KindChoice:
		return [][]key.Binding{{k.Rock, k.Paper, k.Scissors}, {k.NewGame, k.ResetScore, k.Back, k.Quit}}
	case registry.KindMovement:
		return [][]key.Binding{{k.Up, k.Down, k.Left, k.Right}, {k.NewGame, k.ResetScore, k.Back, k.Quit}}
	}
	return k.FullHelp()
}
