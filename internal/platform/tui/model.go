package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/turn-arcade/internal/engine"
	"github.com/vovakirdan/turn-arcade/internal/registry"
	"github.com/vovakirdan/turn-arcade/internal/session"
	"github.com/vovakirdan/turn-arcade/internal/storage"
)

// GameOptions configures a game screen.
type GameOptions struct {
	GameID string
	Config engine.Config
	Tick   time.Duration // movement games only
	Sink   session.ScoreSink
	Store  *storage.Store // high score lookups, optional
	Logger *log.Logger
	Width  int
	Height int
}

// snapshot receives the session's pushed states. It is shared by all copies
// of a GameModel.
type snapshot struct {
	state engine.GameState
}

// GameModel is the Bubble Tea model for one game session.
type GameModel struct {
	info       registry.Info
	sess       *session.Session
	view       *snapshot
	store      *storage.Store
	keys       GameKeyMap
	help       help.Model
	watch      stopwatch.Model
	tick       time.Duration
	gen        int
	steer      engine.Direction
	cursor     int
	message    string
	high       int
	width      int
	height     int
	standalone bool
	quitting   bool
	backToMenu bool
}

// NewGameModel creates the engine and session for a game.
func NewGameModel(opts GameOptions) (GameModel, error) {
	info, ok := registry.Lookup(opts.GameID)
	if !ok {
		return GameModel{}, fmt.Errorf("tui: unknown game %q", opts.GameID)
	}
	eng, err := registry.Create(opts.GameID)
	if err != nil {
		return GameModel{}, err
	}

	sessOpts := []session.Option{session.WithLogger(opts.Logger)}
	if opts.Sink != nil {
		sessOpts = append(sessOpts, session.WithSink(opts.Sink))
	}
	sess := session.New(eng, opts.Config, sessOpts...)

	view := &snapshot{state: sess.State()}
	sess.Subscribe(func(st engine.GameState) { view.state = st })

	tick := opts.Tick
	if tick <= 0 {
		tick = 150 * time.Millisecond
	}

	h := help.New()
	h.Width = opts.Width

	m := GameModel{
		info:   info,
		sess:   sess,
		view:   view,
		store:  opts.Store,
		keys:   DefaultGameKeyMap(),
		help:   h,
		watch:  stopwatch.NewWithInterval(time.Second),
		tick:   tick,
		width:  opts.Width,
		height: opts.Height,
	}
	m.cursor = m.centerCell()
	m.loadHighScore()
	return m, nil
}

// Init starts the stopwatch and, for movement games, the tick loop.
func (m GameModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.watch.Init()}
	if m.info.Kind == registry.KindMovement {
		cmds = append(cmds, tickCmd(m.gen, m.tick))
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	var cmd tea.Cmd
	m.watch, cmd = m.watch.Update(msg)
	return m, cmd
}

// handleKey runs a key press through the input adapter.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	in := m.keys.Translate(m.info.Kind, msg, m.cursor, len(m.view.state.Grid))

	switch in.Intent {
	case IntentQuit:
		m.sess.Abort(context.Background())
		m.quitting = true
		return m, tea.Quit

	case IntentBack:
		m.sess.Abort(context.Background())
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil

	case IntentHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case IntentNewGame:
		m.sess.Reset()
		return m.restart()

	case IntentResetScore:
		m.sess.ClearScore()
		return m.restart()

	case IntentCursor:
		m.moveCursor(in.DX, in.DY)
		return m, nil

	case IntentMove:
		if m.info.Kind == registry.KindMovement {
			// applied on the next tick
			m.steer = in.Move.Dir
			return m, nil
		}
		return m.apply(in.Move)
	}

	return m, nil
}

// apply sends a move to the session and reacts to the result.
func (m GameModel) apply(mv engine.Move) (tea.Model, tea.Cmd) {
	res := m.sess.Apply(context.Background(), mv)
	if !res.Applied() {
		m.message = rejectMessage(res.Err)
		return m, nil
	}
	m.message = ""
	if res.State.Status.Terminal() {
		return m.finished()
	}
	return m, nil
}

// handleTick advances a movement game by one step.
func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || m.view.state.Status.Terminal() {
		return m, nil
	}

	ctx := context.Background()
	res := m.sess.Apply(ctx, engine.Steer(m.steer))
	if res.Outcome == engine.Rejected && errors.Is(res.Err, engine.ErrInvalidMove) {
		// a reversal is ignored and the snake keeps going
		res = m.sess.Apply(ctx, engine.Steer(engine.DirNone))
	}
	m.steer = engine.DirNone

	if res.State.Status.Terminal() {
		return m.finished()
	}
	return m, tickCmd(m.gen, m.tick)
}

func (m GameModel) finished() (tea.Model, tea.Cmd) {
	m.loadHighScore()
	return m, m.watch.Stop()
}

// restart bumps the tick generation so stale ticks are dropped.
func (m GameModel) restart() (tea.Model, tea.Cmd) {
	m.gen++
	m.steer = engine.DirNone
	m.message = ""
	m.cursor = m.centerCell()
	cmds := []tea.Cmd{m.watch.Reset(), m.watch.Start()}
	if m.info.Kind == registry.KindMovement {
		cmds = append(cmds, tickCmd(m.gen, m.tick))
	}
	return m, tea.Batch(cmds...)
}

func (m *GameModel) moveCursor(dx, dy int) {
	st := m.view.state
	if st.Width == 0 || st.Height == 0 {
		return
	}
	x := min(max(m.cursor%st.Width+dx, 0), st.Width-1)
	y := min(max(m.cursor/st.Width+dy, 0), st.Height-1)
	m.cursor = y*st.Width + x
}

func (m GameModel) centerCell() int {
	st := m.view.state
	if st.Width == 0 || st.Height == 0 {
		return 0
	}
	return (st.Height/2)*st.Width + st.Width/2
}

func (m *GameModel) loadHighScore() {
	if m.store == nil {
		return
	}
	if high, err := m.store.HighScore(m.info.ID); err == nil {
		m.high = high
	}
}

// rejectMessage turns an engine rejection into a player-facing hint.
func rejectMessage(err error) string {
	switch {
	case errors.Is(err, engine.ErrGameAlreadyOver):
		return "The game is over. Press n for a new one."
	case errors.Is(err, engine.ErrOutOfBounds):
		return "That cell is off the board."
	case errors.Is(err, engine.ErrInvalidMove):
		return "That move is not allowed."
	case err != nil:
		return err.Error()
	}
	return ""
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	st := m.view.state
	return Render(Frame{
		Title:      m.info.Title,
		Kind:       m.info.Kind,
		State:      st,
		Opponent:   m.sess.Config().Opponent,
		Cursor:     m.cursor,
		ShowCursor: m.info.Kind == registry.KindMarks && st.Status == engine.StatusInProgress,
		Message:    m.message,
		Elapsed:    m.watch.View(),
		Help:       m.help.View(kindHelp{keys: m.keys, kind: m.info.Kind}),
		Width:      m.width,
		HighScore:  m.high,
	})
}

// State returns the last state pushed by the session.
func (m GameModel) State() engine.GameState {
	return m.view.state
}

// SessionID returns the session identifier.
func (m GameModel) SessionID() string {
	return m.sess.ID()
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game in its own Bubble Tea program.
func Run(opts GameOptions) error {
	model, err := NewGameModel(opts)
	if err != nil {
		return err
	}
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
