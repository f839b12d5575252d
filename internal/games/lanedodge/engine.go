// Package lanedodge implements a lane dodging arcade game.
// One or two players move between three lanes to avoid falling obstacles;
// obstacles speed up and arrive more often the longer the round lasts, and
// any collision ends the round.
//
// Engine is the simulation. It is a plain step function: an external frame
// clock calls Advance with monotonic timestamps, and the engine never
// schedules itself.
package lanedodge

import (
	"fmt"
	"math"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/core"
)

// State is the simulation clock state of the current round.
type State struct {
	Running              bool
	ElapsedMs            float64
	SpeedMultiplier      float64
	DifficultyMultiplier float64
	Mode                 Mode
}

// Player is one avatar. Group i of the layout belongs to player i.
type Player struct {
	ID     core.PlayerID
	Group  LaneGroup
	Lane   int
	Width  float64
	Height float64
}

// Outcome is the result kind of one Advance call.
type Outcome int

const (
	OutcomeIdle       Outcome = iota // No round running; nothing was simulated
	OutcomeContinue                  // Frame simulated, round goes on
	OutcomeRoundEnded                // A collision ended the round this frame
)

// String returns a lowercase name for logging.
func (o Outcome) String() string {
	switch o {
	case OutcomeIdle:
		return "idle"
	case OutcomeContinue:
		return "continue"
	case OutcomeRoundEnded:
		return "round_ended"
	default:
		return "unknown"
	}
}

// Result is returned by Advance.
type Result struct {
	Outcome         Outcome
	SurvivalSeconds int             // Set on OutcomeRoundEnded
	Crashed         []core.PlayerID // Players that hit an obstacle on that frame
}

// Engine owns all state of the simulation: clock, players and obstacles.
type Engine struct {
	cfg     config.LaneDodgeConfig
	rng     Rand
	mode    Mode // Applied on the next Reset
	layout  Layout
	curve   *config.DifficultyCurve
	spawner *Spawner
	players []Player
	state   State

	lastTimestamp float64
	clockSeeded   bool

	roundEnded      bool
	survivalSeconds int
	crashed         []core.PlayerID
}

// NewEngine validates the config and returns a reset, stopped engine in
// solo mode.
func NewEngine(cfg config.LaneDodgeConfig, rng Rand) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("lanedodge: nil random source")
	}
	palette, err := cfg.PaletteColors()
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:     cfg,
		rng:     rng,
		mode:    ModeSolo,
		spawner: NewSpawner(rng, cfg, palette),
	}
	e.Reset()
	return e, nil
}

// Reset returns every value to its initial state and applies the mode chosen
// with SetMode. The round is left stopped.
func (e *Engine) Reset() {
	modeCfg := modeConfig(e.cfg, e.mode)

	e.layout = ResolveLayout(e.cfg, e.mode)
	e.curve = config.NewDifficultyCurve(modeCfg.Difficulty)
	e.spawner.Reset(e.layout, modeCfg)

	e.players = make([]Player, len(e.layout.Groups))
	for i, g := range e.layout.Groups {
		e.players[i] = Player{
			ID:     core.PlayerID(i),
			Group:  g.Group,
			Lane:   g.MiddleLane(),
			Width:  e.cfg.Player.Width,
			Height: e.cfg.Player.Height,
		}
	}

	e.state = State{
		Running:              false,
		ElapsedMs:            0,
		SpeedMultiplier:      1,
		DifficultyMultiplier: 1,
		Mode:                 e.mode,
	}
	e.lastTimestamp = 0
	e.clockSeeded = false
	e.roundEnded = false
	e.survivalSeconds = 0
	e.crashed = nil
}

// Start resets the engine and starts a round. The next Advance seeds the
// clock and simulates zero time.
func (e *Engine) Start() {
	e.Reset()
	e.state.Running = true
}

// Stop halts the round without a collision. Later Advance calls are no-ops.
func (e *Engine) Stop() {
	e.state.Running = false
}

// SetMode selects the mode for the next Reset or Start. It is ignored while
// a round is running or for an invalid mode, and reports whether it was
// accepted.
func (e *Engine) SetMode(m Mode) bool {
	if e.state.Running || !m.Valid() {
		return false
	}
	e.mode = m
	return true
}

// NextMode returns the mode the next round will use.
func (e *Engine) NextMode() Mode {
	return e.mode
}

// MovePlayer shifts a player one lane. It is ignored when no round is
// running or the index is out of range, and clamps at the outer lanes.
func (e *Engine) MovePlayer(index int, dir Direction) bool {
	if !e.state.Running || index < 0 || index >= len(e.players) {
		return false
	}

	p := &e.players[index]
	g, _, ok := e.layout.Group(p.Group)
	if !ok {
		return false
	}

	lane := p.Lane
	switch dir {
	case DirLeft:
		lane--
	case DirRight:
		lane++
	default:
		return false
	}
	p.Lane = core.Clamp(lane, 0, g.LaneCount()-1)
	return true
}

// Advance simulates the frame at timestampMs. The tick order is fixed:
// multipliers, spawn timers and spawning, movement and pruning, collision.
func (e *Engine) Advance(timestampMs float64) Result {
	if !e.state.Running {
		return Result{Outcome: OutcomeIdle}
	}

	if !e.clockSeeded {
		e.lastTimestamp = timestampMs
		e.clockSeeded = true
	}

	delta := timestampMs - e.lastTimestamp
	if delta < 0 {
		delta = 0
	}
	e.lastTimestamp = timestampMs
	e.state.ElapsedMs += delta

	// Recomputed from elapsed time each frame; no incremental drift.
	e.state.SpeedMultiplier = e.curve.SpeedMultiplier(e.state.ElapsedMs)
	e.state.DifficultyMultiplier = e.curve.DifficultyMultiplier(e.state.ElapsedMs)

	e.spawner.Tick(delta, e.state.SpeedMultiplier, e.state.DifficultyMultiplier)

	if crashed := e.collisions(); len(crashed) > 0 {
		e.endRound(crashed)
		return Result{
			Outcome:         OutcomeRoundEnded,
			SurvivalSeconds: e.survivalSeconds,
			Crashed:         append([]core.PlayerID(nil), crashed...),
		}
	}
	return Result{Outcome: OutcomeContinue}
}

// collisions returns every player overlapping an obstacle of its own group.
func (e *Engine) collisions() []core.PlayerID {
	var crashed []core.PlayerID
	for _, p := range e.players {
		pr := e.layout.PlayerRect(p)
		for _, o := range e.spawner.Obstacles() {
			if o.Group != p.Group {
				continue
			}
			if pr.Intersects(e.layout.ObstacleRect(o)) {
				crashed = append(crashed, p.ID)
				break
			}
		}
	}
	return crashed
}

// endRound stops the round for all players at once.
func (e *Engine) endRound(crashed []core.PlayerID) {
	e.state.Running = false
	e.roundEnded = true
	e.survivalSeconds = int(math.Floor(e.state.ElapsedMs / 1000))
	e.crashed = crashed
}

// State returns a copy of the clock state.
func (e *Engine) State() State {
	return e.state
}

// Running reports whether a round is in progress.
func (e *Engine) Running() bool {
	return e.state.Running
}

// Layout returns a copy of the active layout.
func (e *Engine) Layout() Layout {
	return e.layout.clone()
}
