package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/lane-dodge/internal/core"
	"github.com/vovakirdan/lane-dodge/internal/registry"
)

// statusRows is the number of terminal rows below the game screen.
const statusRows = 1

// Model is the Bubble Tea model for running a game. Its tick loop is the
// frame clock: each tick advances the game to the milliseconds elapsed since
// the model was created.
type Model struct {
	game     registry.Game
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     *KeyMapper
	help     help.Model
	logger   *log.Logger
	input    core.MultiInputFrame
	state    core.GameState
	start    time.Time
	roundID  string
	best     int // Best survival of this session, in seconds
	last     int
	quitting bool
}

// NewModel creates a new Bubble Tea model for the given game.
// A nil logger discards all events.
func NewModel(game registry.Game, logger *log.Logger, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-statusRows, 0)),
		config: cfg,
		keys:   NewKeyMapper(),
		help:   help.New(),
		logger: logger,
		input:  core.NewMultiInputFrame(),
		start:  time.Now(),
	}
}

// Init initializes the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Debug("game ready", "game", m.game.ID(), "seed", m.config.Seed, "fps", m.config.TickRate)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keys.MapMouseToMultiFrame(msg, m.screen.Width(), m.screen.Height(), &m.input)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey queues the action of a key for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.MapKeyToMultiFrame(msg, &m.input) {
		m.quitting = true
		m.logger.Info("quit", "best", m.best)
		return m, tea.Quit
	}
	return m, nil
}

// handleResize adapts the screen buffer. The field is resolution
// independent, so the running round is kept.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-statusRows, 0))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick steps the game with the input collected since the last tick.
func (m Model) handleTick(t TickMsg) (tea.Model, tea.Cmd) {
	prev := m.state

	result := m.game.Step(frameTimestamp(m.start, t), m.input)
	m.state = result.State
	m.input.Clear()

	switch {
	case !prev.Running && m.state.Running:
		m.roundID = uuid.NewString()
		m.logger.Info("round started", "round", m.roundID, "mode", m.state.Mode)
	case !m.state.Running && prev.Mode != "" && prev.Mode != m.state.Mode:
		m.logger.Info("mode changed", "mode", m.state.Mode)
	}

	if result.Ended {
		m.last = m.state.Score
		if m.last > m.best {
			m.best = m.last
		}
		m.logger.Info("round ended",
			"round", m.roundID,
			"mode", m.state.Mode,
			"survived", m.last,
			"best", m.best,
		)
	}

	return m, tickCmd(m.config.TickRate)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	status := renderStatus(m.best, m.last, m.help.View(m.keys.Keys), m.screen.Width())
	return RenderScreen(m.screen) + "\n" + status
}

// Run starts the Bubble Tea program for the game.
func Run(game registry.Game, logger *log.Logger, cfg core.RuntimeConfig) error {
	model := NewModel(game, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Presses and drags steer players
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
