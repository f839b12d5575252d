package lanedodge

import (
	"math/rand"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/core"
	"github.com/vovakirdan/lane-dodge/internal/registry"
)

// GameID is the registry identifier.
const GameID = "lanedodge"

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset
var startMode = ModeSolo

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// SetStartMode sets the mode of the first round.
func SetStartMode(m Mode) {
	if m.Valid() {
		startMode = m
	}
}

// Game adapts Engine to the registry.Game interface: it turns input frames
// into engine commands and draws snapshots.
type Game struct {
	engine  *Engine
	runtime core.RuntimeConfig
	cfg     config.LaneDodgeConfig
	started bool // Whether any round has been started since Reset
}

// New creates a new Lane Dodge game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Lane Dodge"
}

// Reset loads the config and builds a fresh, stopped engine.
// The selected mode survives resets.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadLaneDodge(configPath)
	if err != nil {
		cfg = config.DefaultLaneDodgeConfig()
	}
	config.ApplyLaneDodgePreset(&cfg, difficultyPreset)
	g.cfg = cfg

	mode := startMode
	if g.engine != nil {
		mode = g.engine.NextMode()
	}

	engine, err := NewEngine(cfg, rand.New(rand.NewSource(runtime.Seed)))
	if err != nil {
		engine, _ = NewEngine(config.DefaultLaneDodgeConfig(), rand.New(rand.NewSource(runtime.Seed)))
	}
	engine.SetMode(mode)
	engine.Reset()

	g.engine = engine
	g.started = false
}

// Step applies input and advances the engine to timestampMs.
func (g *Game) Step(timestampMs float64, in core.MultiInputFrame) core.StepResult {
	if g.engine == nil {
		g.Reset(core.DefaultConfig())
	}

	if !g.engine.Running() {
		if in.Has(core.ActionMode) {
			g.engine.SetMode(g.engine.NextMode().Toggle())
			g.engine.Reset()
			g.started = false
		}
		if in.Has(core.ActionConfirm) || in.Has(core.ActionRestart) {
			g.engine.Start()
			g.started = true
		}
	} else {
		g.applyMoves(in)
	}

	res := g.engine.Advance(timestampMs)
	return core.StepResult{
		State: g.State(),
		Ended: res.Outcome == OutcomeRoundEnded,
	}
}

// applyMoves forwards lane changes in arrival order. In solo mode both key
// sets steer the only player.
func (g *Game) applyMoves(in core.MultiInputFrame) {
	solo := g.engine.State().Mode == ModeSolo
	for _, id := range []core.PlayerID{core.Player1, core.Player2} {
		index := int(id)
		if solo {
			index = 0
		}
		for _, a := range in.Player(id).Actions {
			switch a {
			case core.ActionLeft:
				g.engine.MovePlayer(index, DirLeft)
			case core.ActionRight:
				g.engine.MovePlayer(index, DirRight)
			}
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	snap := g.engine.Snapshot()
	score := snap.ElapsedSeconds
	if snap.RoundEnded {
		score = snap.SurvivalSeconds
	}
	mode := snap.NextMode
	if snap.Running {
		mode = snap.Mode
	}
	return core.GameState{
		Score:      score,
		Running:    snap.Running,
		RoundEnded: snap.RoundEnded,
		Mode:       mode.String(),
	}
}

// Engine exposes the underlying simulation.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
