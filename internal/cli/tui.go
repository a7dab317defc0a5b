package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/skyline/pkg/street"
)

var (
	viewHeaderStyle = StyleTitle
	viewHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	viewPosStyle    = lipgloss.NewStyle().Foreground(colorGray)
)

// viewChrome is the number of terminal rows used by header and footer.
const viewChrome = 3

// =============================================================================
// SceneViewModel - Scrollable read-only scene viewer
// =============================================================================

// SceneViewModel is the bubbletea model behind `skyline view`. It shows the
// framed scene in a window the size of the terminal and scrolls over it.
type SceneViewModel struct {
	Title string
	Lines [][]rune

	Width, Height int // viewport size in cells
	X, Y          int // scroll offset
}

// NewSceneViewModel creates a viewer for scene.
func NewSceneViewModel(scene *street.Scene) SceneViewModel {
	lines := scene.Lines()
	runes := make([][]rune, len(lines))
	for i, l := range lines {
		runes[i] = []rune(l)
	}
	return SceneViewModel{
		Title:  fmt.Sprintf("skyline %d×%d · %d elements", scene.Width(), scene.Height()+1, len(scene.Elements())),
		Lines:  runes,
		Width:  80,
		Height: 24 - viewChrome,
	}
}

func (m SceneViewModel) Init() tea.Cmd {
	return nil
}

func (m SceneViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.Y--
		case "down", "j":
			m.Y++
		case "left", "h":
			m.X--
		case "right", "l":
			m.X++
		case "pgup":
			m.Y -= m.Height
		case "pgdown", " ":
			m.Y += m.Height
		case "home", "g":
			m.X, m.Y = 0, 0
		case "end", "G":
			m.X, m.Y = m.maxX(), m.maxY()
		}
	case tea.WindowSizeMsg:
		m.Width = max(msg.Width, 1)
		m.Height = max(msg.Height-viewChrome, 1)
	}
	m.X = clamp(m.X, 0, m.maxX())
	m.Y = clamp(m.Y, 0, m.maxY())
	return m, nil
}

func (m SceneViewModel) View() string {
	var b strings.Builder

	b.WriteString(viewHeaderStyle.Render(m.Title))
	b.WriteString("\n")

	end := min(m.Y+m.Height, len(m.Lines))
	for _, line := range m.Lines[m.Y:end] {
		if m.X < len(line) {
			b.WriteString(string(line[m.X:min(m.X+m.Width, len(line))]))
		}
		b.WriteString("\n")
	}
	for i := end - m.Y; i < m.Height; i++ {
		b.WriteString("\n")
	}

	b.WriteString(viewHelpStyle.Render("←↓↑→/hjkl scroll  g/G ends  q quit"))
	b.WriteString("  ")
	b.WriteString(viewPosStyle.Render(fmt.Sprintf("[%d,%d]", m.X, m.Y)))
	return b.String()
}

func (m SceneViewModel) maxX() int {
	widest := 0
	for _, l := range m.Lines {
		widest = max(widest, len(l))
	}
	return max(widest-m.Width, 0)
}

func (m SceneViewModel) maxY() int {
	return max(len(m.Lines)-m.Height, 0)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
