package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/turn-arcade/internal/engine"
	"github.com/vovakirdan/turn-arcade/internal/registry"
	"github.com/vovakirdan/turn-arcade/internal/storage"
)

const (
	minWidthForSidebar = 80
	sidebarWidth       = 22
	maxScores          = 100
	maxResults         = 50
)

// boardView selects what the scoreboard table lists.
type boardView int

const (
	viewTopScores boardView = iota
	viewRecent
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 4)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Toggle   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextGame, k.PrevGame, k.Toggle, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Toggle, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		NextGame: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "next game")),
		PrevGame: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev game")),
		Toggle:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "scores/recent")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the best scores, recent results and win/loss
// record of each game. A nil store shows empty tables.
type ScoreboardModel struct {
	games     []registry.Info
	selected  int
	view      boardView
	store     *storage.Store
	scores    []storage.ScoreEntry
	results   []storage.ResultEntry
	stats     *storage.GameStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard positioned on the first game.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.reload()
	return m
}

// game returns the selected game, or a zero Info when none are registered.
func (m ScoreboardModel) game() registry.Info {
	if len(m.games) == 0 {
		return registry.Info{}
	}
	return m.games[m.selected]
}

// reload fetches the selected game's data and rebuilds the table.
func (m *ScoreboardModel) reload() {
	m.scores, m.results, m.stats = nil, nil, nil
	id := m.game().ID
	if m.store != nil && id != "" {
		if scores, err := m.store.TopScores(id, maxScores); err == nil {
			m.scores = scores
		}
		if results, err := m.store.Results(id, maxResults); err == nil {
			m.results = results
		}
		if stats, err := m.store.Stats(id); err == nil {
			m.stats = stats
		}
	}
	m.table = m.buildTable()
}

// tableWidth is the room left for the table after margins and the sidebar.
func (m ScoreboardModel) tableWidth() int {
	w := m.width - 6
	if m.width >= minWidthForSidebar {
		w -= sidebarWidth + 4
	}
	return max(w, 30)
}

func (m ScoreboardModel) buildTable() table.Model {
	var columns []table.Column
	var rows []table.Row

	dateWidth := min(max(m.tableWidth()-40, 12), 18)
	switch m.view {
	case viewRecent:
		columns = []table.Column{
			{Title: "Result", Width: 10},
			{Title: "Score", Width: 8},
			{Title: "Moves", Width: 6},
			{Title: "Time", Width: 7},
			{Title: "Date", Width: dateWidth},
		}
		for _, r := range m.results {
			rows = append(rows, table.Row{
				resultLabel(r),
				fmt.Sprintf("%d:%d", r.Score1, r.Score2),
				fmt.Sprintf("%d", r.Moves),
				(time.Duration(r.DurationMS) * time.Millisecond).Round(time.Second).String(),
				r.CreatedAt.Format("Jan 02 15:04"),
			})
		}
	default:
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 10},
			{Title: "Date", Width: dateWidth},
		}
		for i, s := range m.scores {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprintf("%d", s.Score),
				s.CreatedAt.Format("Jan 02 15:04"),
			})
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-12, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// resultLabel names a stored result from player one's side.
func resultLabel(r storage.ResultEntry) string {
	switch r.Status {
	case engine.StatusWon.String():
		if engine.Player(r.Winner) == engine.Player1 {
			return "won"
		}
		return "lost"
	case engine.StatusGameOver.String():
		return "game over"
	case engine.StatusAborted.String():
		return "abandoned"
	}
	return r.Status
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextGame):
			if n := len(m.games); n > 0 {
				m.selected = (m.selected + 1) % n
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			if n := len(m.games); n > 0 {
				m.selected = (m.selected + n - 1) % n
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			if m.view == viewTopScores {
				m.view = viewRecent
			} else {
				m.view = viewTopScores
			}
			m.table = m.buildTable()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.buildTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	heading := "HIGH SCORES"
	if m.view == viewRecent {
		heading = "RECENT GAMES"
	}
	if g := m.game(); g.ID != "" {
		heading += " - " + g.Title
	}

	body := panelStyle.Render(m.tableContent())
	if m.width >= minWidthForSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", body)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, m.tabs(), "", body)
	}

	parts := []string{
		"",
		titleStyle.Render(heading),
		"",
		body,
		"",
		m.statsLine(),
		"",
		mutedStyle.Render(m.help.View(m.keys)),
	}
	out := lipgloss.JoinVertical(lipgloss.Left, parts...)
	if m.width > 0 {
		out = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, out)
	}
	return out
}

// sidebar lists the games with the selected one highlighted.
func (m ScoreboardModel) sidebar() string {
	var b strings.Builder
	b.WriteString("Games\n")
	b.WriteString(strings.Repeat("-", sidebarWidth-4))
	for i, g := range m.games {
		b.WriteString("\n")
		line := fmt.Sprintf("  %s", g.Title)
		if i == m.selected {
			line = titleStyle.Render("> " + g.Title)
		}
		b.WriteString(line)
	}
	return panelStyle.Width(sidebarWidth).Render(b.String())
}

// tabs is the narrow-terminal replacement for the sidebar.
func (m ScoreboardModel) tabs() string {
	if len(m.games) == 0 {
		return ""
	}
	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.selected {
			tabs[i] = activeTabStyle.Render(g.Title)
		} else {
			tabs[i] = mutedStyle.Render(" " + g.Title + " ")
		}
	}
	line := strings.Join(tabs, " ")
	if m.width > 0 && lipgloss.Width(line) > m.width-4 {
		line = fmt.Sprintf("< %s >", m.game().Title)
	}
	return line
}

func (m ScoreboardModel) tableContent() string {
	empty := len(m.scores) == 0
	hint := "No scores recorded yet.\nFinish a game to set a high score!"
	if m.view == viewRecent {
		empty = len(m.results) == 0
		hint = "No games finished yet."
	}
	if empty {
		return emptyStyle.Render(hint)
	}
	return m.table.View()
}

// statsLine renders the win/loss record for the selected game.
func (m ScoreboardModel) statsLine() string {
	st := m.stats
	if st == nil || st.GamesCount == 0 {
		return mutedStyle.Render("No games finished yet.")
	}
	line := fmt.Sprintf("Games %d   Won %d   Lost %d   Drawn %d   Abandoned %d   Best %d   Avg %.1f",
		st.GamesCount, st.Wins, st.Losses, st.Draws, st.Aborted, st.HighScore, st.AvgScore)
	return statusStyle.Render(line)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
