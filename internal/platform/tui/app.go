package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/turn-arcade/internal/config"
	"github.com/vovakirdan/turn-arcade/internal/session"
	"github.com/vovakirdan/turn-arcade/internal/storage"
)

// PresetOptions builds game options from the game's YAML preset with a
// difficulty applied. config.DifficultyAsConfigured keeps the YAML opponent
// and tick. A tick_ms set in a custom config file survives any difficulty.
// Sink, store, logger and size are left to the caller.
func PresetOptions(gameID, customPath string, d config.DifficultyPreset) (GameOptions, error) {
	preset, err := config.Load(gameID, customPath)
	if err != nil {
		return GameOptions{}, err
	}
	tickMS := preset.Snake.TickMS
	config.ApplyPreset(&preset, d)
	if customPath != "" && tickMS > 0 {
		preset.Snake.TickMS = tickMS
	}

	cfg, err := preset.Engine()
	if err != nil {
		return GameOptions{}, fmt.Errorf("%s: %w", gameID, err)
	}
	return GameOptions{
		GameID: gameID,
		Config: cfg,
		Tick:   preset.TickInterval(),
	}, nil
}

// ArcadeOptions configures the menu-driven arcade.
type ArcadeOptions struct {
	Store  *storage.Store
	Sink   session.ScoreSink
	Logger *log.Logger
	Seed   int64 // 0 = fresh seed per game
	Width  int
	Height int
}

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenScores
)

// ArcadeModel manages the full arcade flow: menu -> game -> menu, plus the
// scoreboard. It is the top-level model for local and SSH sessions.
type ArcadeModel struct {
	opts     ArcadeOptions
	screen   screen
	menu     MenuModel
	game     GameModel
	scores   ScoreboardModel
	width    int
	height   int
	err      string
	quitting bool
}

// NewArcadeModel creates the arcade starting at the menu.
func NewArcadeModel(opts ArcadeOptions) ArcadeModel {
	return ArcadeModel{
		opts:   opts,
		menu:   NewMenuModel(opts.Width, opts.Height),
		width:  opts.Width,
		height: opts.Height,
	}
}

// Init initializes the arcade.
func (m ArcadeModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m ArcadeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

func (m ArcadeModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.opts.Store, m.width, m.height)
		m.screen = screenScores
		return m, m.scores.Init()

	case m.menu.Selected() != nil:
		sel := *m.menu.Selected()
		game, err := m.newGame(sel)
		if err != nil {
			m.err = err.Error()
			m.menu = NewMenuModel(m.width, m.height)
			return m, nil
		}
		m.err = ""
		m.game = game
		m.screen = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

func (m ArcadeModel) newGame(sel MenuSelection) (GameModel, error) {
	opts, err := PresetOptions(sel.GameID, "", sel.Difficulty)
	if err != nil {
		return GameModel{}, err
	}
	if m.opts.Seed != 0 {
		opts.Config.Seed = m.opts.Seed
	}
	opts.Sink = m.opts.Sink
	opts.Store = m.opts.Store
	opts.Logger = m.opts.Logger
	opts.Width = m.width
	opts.Height = m.height
	return NewGameModel(opts)
}

func (m ArcadeModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		m.screen = screenMenu
		m.menu = NewMenuModel(m.width, m.height)
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m ArcadeModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scores = sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.screen = screenMenu
		m.menu = NewMenuModel(m.width, m.height)
		return m, m.menu.Init()
	}
	return m, cmd
}

// View renders the active screen.
func (m ArcadeModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	}

	view := m.menu.View()
	if m.err != "" {
		view += "\n" + centerText(messageStyle.Render(m.err), m.width)
	}
	return view
}

// RunArcade runs the menu-driven arcade until the player quits.
func RunArcade(opts ArcadeOptions) error {
	p := tea.NewProgram(NewArcadeModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
