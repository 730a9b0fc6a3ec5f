package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mfriedel/cabinetry/pkg/plan"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// WallListModel - Interactive wall selection
// =============================================================================

// wallItem is one selectable row in the wall list.
type wallItem struct {
	Name     string
	Length   float64
	Cabinets int
}

// WallListModel is the bubbletea model for interactive wall selection.
type WallListModel struct {
	Walls    []wallItem
	Cursor   int
	Selected string
	Height   int
	Offset   int
}

// NewWallListModel creates a new wall list model from a plan.
func NewWallListModel(p *plan.Plan) WallListModel {
	items := make([]wallItem, 0, len(p.Walls))
	for _, name := range p.WallNames() {
		items = append(items, wallItem{
			Name:     name,
			Length:   p.Walls[name].Length,
			Cabinets: len(p.Run(name)),
		})
	}
	return WallListModel{
		Walls:  items,
		Height: 15,
	}
}

func (m WallListModel) Init() tea.Cmd {
	return nil
}

func (m WallListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Walls)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Walls[m.Cursor].Name
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m WallListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Wall"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Walls) {
		end = len(m.Walls)
	}

	for i := m.Offset; i < end; i++ {
		w := m.Walls[i]

		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}

		line := fmt.Sprintf("%s%-16s %8.2f\"", cursor, w.Name, w.Length)
		detail := fmt.Sprintf("  %d cabinets", w.Cabinets)
		if w.Cabinets == 0 {
			detail = "  no run"
		}

		b.WriteString(style.Render(line))
		b.WriteString(listDimStyle.Render(detail))
		b.WriteString("\n")
	}

	return b.String()
}

// pickWall runs the interactive wall picker. It fails with a plain list of
// wall names when stdout is not a terminal, so scripted callers get a
// usable error instead of a hung prompt.
func pickWall(p *plan.Plan) (string, error) {
	if fi, err := os.Stdout.Stat(); err != nil || fi.Mode()&os.ModeCharDevice == 0 {
		return "", fmt.Errorf("multiple walls declared, pass --wall (walls: %s)",
			strings.Join(p.WallNames(), ", "))
	}

	model := NewWallListModel(p)
	prog := tea.NewProgram(model)
	final, err := prog.Run()
	if err != nil {
		return "", fmt.Errorf("wall selection: %w", err)
	}

	m, ok := final.(WallListModel)
	if !ok || m.Selected == "" {
		return "", fmt.Errorf("no wall selected")
	}
	return m.Selected, nil
}
