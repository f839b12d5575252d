package lanedodge

import (
	"math"

	"github.com/vovakirdan/lane-dodge/internal/core"
)

// Snapshot is a read-only copy of everything a view needs to draw a frame.
type Snapshot struct {
	Running              bool
	RoundEnded           bool
	Mode                 Mode // Mode of the current or last round
	NextMode             Mode // Mode the next round will use
	ElapsedMs            float64
	ElapsedSeconds       int
	SpeedMultiplier      float64
	DifficultyMultiplier float64
	SurvivalSeconds      int             // Valid when RoundEnded
	Crashed              []core.PlayerID // Valid when RoundEnded
	Players              []Player
	Obstacles            []Obstacle
	Timers               []float64
	Spawned              int // Obstacles created this round
	Pruned               int // Obstacles that left the field this round
}

// Snapshot copies the current engine state.
func (e *Engine) Snapshot() Snapshot {
	spawned, pruned := e.spawner.Counts()
	return Snapshot{
		Running:              e.state.Running,
		RoundEnded:           e.roundEnded,
		Mode:                 e.state.Mode,
		NextMode:             e.mode,
		ElapsedMs:            e.state.ElapsedMs,
		ElapsedSeconds:       int(math.Floor(e.state.ElapsedMs / 1000)),
		SpeedMultiplier:      e.state.SpeedMultiplier,
		DifficultyMultiplier: e.state.DifficultyMultiplier,
		SurvivalSeconds:      e.survivalSeconds,
		Crashed:              append([]core.PlayerID(nil), e.crashed...),
		Players:              append([]Player(nil), e.players...),
		Obstacles:            append([]Obstacle(nil), e.spawner.Obstacles()...),
		Timers:               append([]float64(nil), e.spawner.Timers()...),
		Spawned:              spawned,
		Pruned:               pruned,
	}
}
