package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/core"
	"github.com/vovakirdan/lane-dodge/internal/games/lanedodge"
)

// Setup holds the choices made in the setup menu.
type Setup struct {
	Mode       lanedodge.Mode
	Difficulty config.DifficultyPreset
}

// DefaultSetup returns solo mode at normal difficulty.
func DefaultSetup() Setup {
	return Setup{Mode: lanedodge.ModeSolo, Difficulty: config.DifficultyNormal}
}

// Difficulty presets in menu order
var menuDifficulties = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

// Menu rows
const (
	rowMode = iota
	rowDifficulty
	rowStart
	rowCount
)

// MenuKeyMap defines the key bindings of the setup menu.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Prev   key.Binding
	Next   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Prev, k.Next, k.Select, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Prev, k.Next}, {k.Select, k.Quit}}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/h", "change"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/l", "change"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuItemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

// MenuModel is the Bubble Tea model for the setup menu shown before play.
type MenuModel struct {
	cursor   int
	setup    Setup
	width    int
	height   int
	keys     MenuKeyMap
	help     help.Model
	quitting bool
	selected bool
}

// NewMenuModel creates a new menu model preselecting the given setup.
func NewMenuModel(setup Setup, cfg core.RuntimeConfig) MenuModel {
	if !setup.Mode.Valid() {
		setup.Mode = lanedodge.ModeSolo
	}
	if setup.Difficulty == "" {
		setup.Difficulty = config.DifficultyNormal
	}
	return MenuModel{
		cursor: rowStart,
		setup:  setup,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < rowCount-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Prev):
		m.change(-1)

	case key.Matches(msg, m.keys.Next):
		m.change(1)

	case key.Matches(msg, m.keys.Select):
		if m.cursor == rowStart {
			m.selected = true
			return m, tea.Quit
		}
		m.change(1)
	}

	return m, nil
}

// change cycles the value of the row under the cursor.
func (m *MenuModel) change(step int) {
	switch m.cursor {
	case rowMode:
		m.setup.Mode = m.setup.Mode.Toggle()
	case rowDifficulty:
		i := 0
		for j, d := range menuDifficulties {
			if d == m.setup.Difficulty {
				i = j
			}
		}
		n := len(menuDifficulties)
		m.setup.Difficulty = menuDifficulties[((i+step)%n+n)%n]
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("L A N E   D O D G E"), m.width))
	b.WriteString("\n\n")

	rows := []string{
		fmt.Sprintf("Mode        < %s >", m.setup.Mode),
		fmt.Sprintf("Difficulty  < %s >", m.setup.Difficulty),
		"Start",
	}
	for i, row := range rows {
		line := "  " + menuItemStyle.Render(row)
		if i == m.cursor {
			line = "> " + menuActiveStyle.Render(row)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen setup, or nil if none was confirmed.
func (m MenuModel) Selected() *Setup {
	if !m.selected {
		return nil
	}
	s := m.setup
	return &s
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width, measuring styled text by its
// printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// RunMenu shows the setup menu and returns the confirmed setup, or nil when
// the user quit.
func RunMenu(setup Setup, cfg core.RuntimeConfig) (*Setup, error) {
	p := tea.NewProgram(NewMenuModel(setup, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("tui: menu: %w", err)
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.IsQuitting() {
		return nil, nil
	}
	return m.Selected(), nil
}
