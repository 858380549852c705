package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/turn-arcade/internal/engine"
	"github.com/vovakirdan/turn-arcade/internal/registry"
)

// cellStyles maps engine cells to lipgloss styles.
var cellStyles = map[engine.Cell]lipgloss.Style{
	engine.Empty:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	engine.MarkX:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	engine.MarkO:     lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
	engine.Food:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	engine.SnakeBody: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	engine.SnakeHead: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	lineStyle    = lipgloss.NewStyle().Background(lipgloss.Color("57")).Foreground(lipgloss.Color("229")).Bold(true)
	boardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// Frame is everything the renderer needs for one view. Rendering never
// touches the engine.
type Frame struct {
	Title      string
	Kind       registry.Kind
	State      engine.GameState
	Opponent   engine.OpponentMode
	Cursor     int
	Message    string
	Elapsed    string
	Help       string
	Width      int
	HighScore  int
	ShowCursor bool
}

// Render draws a complete game screen.
func Render(f Frame) string {
	header := titleStyle.Render(f.Title)
	if f.Elapsed != "" {
		header += mutedStyle.Render("  " + f.Elapsed)
	}

	var body string
	switch f.Kind {
	case registry.KindChoice:
		body = RenderChoice(f.State, f.Opponent)
	default:
		body = RenderBoard(f.State, f.Cursor, f.ShowCursor)
	}

	parts := []string{
		header,
		"",
		boardStyle.Render(body),
		statusStyle.Render(StatusLine(f.State, f.Kind, f.Opponent)),
		mutedStyle.Render(ScoreLine(f.State, f.Kind, f.Opponent, f.HighScore)),
	}
	if f.Message != "" {
		parts = append(parts, messageStyle.Render(f.Message))
	}
	if f.Help != "" {
		parts = append(parts, "", f.Help)
	}

	out := lipgloss.JoinVertical(lipgloss.Left, parts...)
	if f.Width > 0 {
		out = lipgloss.PlaceHorizontal(f.Width, lipgloss.Center, out)
	}
	return out
}

// RenderBoard draws a grid state. The cursor and the winning line are
// highlighted.
func RenderBoard(st engine.GameState, cursor int, showCursor bool) string {
	onLine := make(map[int]bool, len(st.WinningLine))
	for _, i := range st.WinningLine {
		onLine[i] = true
	}

	var sb strings.Builder
	for y := 0; y < st.Height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < st.Width; x++ {
			if x > 0 {
				sb.WriteRune(' ')
			}
			idx := y*st.Width + x
			cell := st.Grid[idx]

			style, ok := cellStyles[cell]
			if !ok {
				style = cellStyles[engine.Empty]
			}
			switch {
			case showCursor && idx == cursor:
				style = cursorStyle
			case onLine[idx]:
				style = lineStyle
			}
			sb.WriteString(style.Render(string(cell.Rune())))
		}
	}
	return sb.String()
}

// RenderChoice draws the rock-paper-scissors table.
func RenderChoice(st engine.GameState, opponent engine.OpponentMode) string {
	p1, p2 := playerNames(registry.KindChoice, opponent)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Round %d\n\n", st.Round)

	last := st.LastChoices
	if last[0] == engine.NoChoice {
		sb.WriteString("Choose: [1] rock  [2] paper  [3] scissors")
		return sb.String()
	}

	fmt.Fprintf(&sb, "%-8s %s\n", p1+":", last[0])
	fmt.Fprintf(&sb, "%-8s %s\n\n", p2+":", last[1])
	switch {
	case last[0].Beats(last[1]):
		fmt.Fprintf(&sb, "%s takes the round", p1)
	case last[1].Beats(last[0]):
		fmt.Fprintf(&sb, "%s takes the round", p2)
	default:
		sb.WriteString("Tie")
	}
	return sb.String()
}

// StatusLine describes whose turn it is or how the game ended.
func StatusLine(st engine.GameState, kind registry.Kind, opponent engine.OpponentMode) string {
	p1, p2 := playerNames(kind, opponent)
	name := func(p engine.Player) string {
		if p == engine.Player2 {
			return p2
		}
		return p1
	}

	switch st.Status {
	case engine.StatusWon:
		if kind == registry.KindMovement {
			return "Board cleared. You win!  (n: new game)"
		}
		return fmt.Sprintf("%s wins!  (n: new game)", name(st.Winner))
	case engine.StatusDraw:
		return "Draw.  (n: new game)"
	case engine.StatusGameOver:
		return "Game over.  (n: new game)"
	case engine.StatusAborted:
		return "Game abandoned."
	}

	switch kind {
	case registry.KindMovement:
		return fmt.Sprintf("Heading %s", st.Direction)
	case registry.KindChoice:
		if st.Active == engine.Player2 && opponent == engine.OpponentNone {
			return fmt.Sprintf("%s, your throw (hidden from %s)", p2, p1)
		}
		return fmt.Sprintf("%s, your throw", p1)
	}
	return fmt.Sprintf("%s to move", name(st.Active))
}

// ScoreLine shows the running score.
func ScoreLine(st engine.GameState, kind registry.Kind, opponent engine.OpponentMode, high int) string {
	if kind == registry.KindMovement {
		return fmt.Sprintf("Score %d   Length %d   Best %d", st.ScoreOf(engine.Player1), len(st.Body), high)
	}
	p1, p2 := playerNames(kind, opponent)
	return fmt.Sprintf("%s %d : %d %s", p1, st.ScoreOf(engine.Player1), st.ScoreOf(engine.Player2), p2)
}

func playerNames(kind registry.Kind, opponent engine.OpponentMode) (string, string) {
	vsComputer := opponent != engine.OpponentNone && opponent != ""
	switch {
	case kind == registry.KindMarks && vsComputer:
		return "You (X)", "CPU (O)"
	case kind == registry.KindMarks:
		return "X", "O"
	case vsComputer:
		return "You", "CPU"
	}
	return "P1", "P2"
}
