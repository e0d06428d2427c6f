package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mirrorgrid/internal/levels"
)

// MenuModel is the level picker.
type MenuModel struct {
	levels   []levels.Level
	table    table.Model
	help     help.Model
	keys     MenuKeyMap
	width    int
	height   int
	selected int // -1 until a level is chosen
	quitting bool
}

// NewMenuModel creates a level picker with the cursor on index cursor.
func NewMenuModel(lvls []levels.Level, width, height, cursor int) MenuModel {
	h := help.New()
	h.Width = width

	m := MenuModel{
		levels:   lvls,
		help:     h,
		keys:     DefaultMenuKeyMap(),
		width:    width,
		height:   height,
		selected: -1,
	}
	m.table = m.createTable()
	m.table.SetRows(levelRows(lvls))
	if cursor > 0 && cursor < len(lvls) {
		m.table.SetCursor(cursor)
	}
	return m
}

// createTable creates the level table sized to the window.
func (m *MenuModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "ID", Width: 10},
		{Title: "Name", Width: 20},
		{Title: "Size", Width: 7},
		{Title: "Enemies", Width: 8},
		{Title: "Mirrors", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
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

func levelRows(lvls []levels.Level) []table.Row {
	rows := make([]table.Row, len(lvls))
	for i, l := range lvls {
		rows[i] = table.Row{
			fmt.Sprint(i + 1),
			l.ID,
			l.Title(),
			l.Bounds.String(),
			fmt.Sprint(len(l.Automatic)),
			fmt.Sprint(len(l.Deflectors)),
		}
	}
	return rows
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if len(m.levels) > 0 {
				m.selected = m.table.Cursor()
				return m, tea.Quit
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		cursor := m.table.Cursor()
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.table.SetRows(levelRows(m.levels))
		m.table.SetCursor(cursor)
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting || m.selected >= 0 {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("M I R R O R G R I D"), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.levels) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 4).
			Render("No levels found.\nCheck --levels or levels.dir in the config.")
		b.WriteString(centerText(boxStyle.Render(empty), m.width))
	} else {
		b.WriteString(centerText(boxStyle.Render(m.table.View()), m.width))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Selected returns the chosen level index, or -1.
func (m MenuModel) Selected() int {
	return m.selected
}

// centerText centers each line of a block within width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	pad := strings.Repeat(" ", (width-w)/2)
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Index int // Selected level, -1 when the user quit
	Quit  bool
}

// RunMenu runs the level picker and returns the selection.
func RunMenu(lvls []levels.Level, width, height, cursor int) (MenuResult, error) {
	model := NewMenuModel(lvls, width, height, cursor)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return MenuResult{Index: -1}, err
	}

	m, ok := final.(MenuModel)
	if !ok || m.Selected() < 0 {
		return MenuResult{Index: -1, Quit: true}, nil
	}
	return MenuResult{Index: m.Selected()}, nil
}
