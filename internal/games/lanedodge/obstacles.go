package lanedodge

import (
	"math"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/core"
)

// Rand is the random source used for obstacle generation.
// *math/rand.Rand satisfies it; tests inject scripted sources.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Obstacle is a falling square confined to one lane of one lane group.
type Obstacle struct {
	Group LaneGroup
	Lane  int
	Size  float64
	Y     float64 // Top edge; negative while entering the field
	Speed float64 // Baseline speed in units/s, scaled by the speed multiplier
	Color core.Color
}

// Spawner handles spawning, movement, and removal of obstacles.
// It keeps one spawn timer per lane group of the current layout.
type Spawner struct {
	rng       Rand
	spawn     config.SpawnConfig
	minSize   float64
	maxSize   float64
	minSpeed  float64
	maxSpeed  float64
	palette   []core.Color
	layout    Layout
	timers    []float64
	obstacles []Obstacle
	spawned   int // Obstacles created since Reset
	pruned    int // Obstacles removed since Reset
}

// NewSpawner creates a spawner. Reset must be called before the first Tick.
func NewSpawner(rng Rand, cfg config.LaneDodgeConfig, palette []core.Color) *Spawner {
	return &Spawner{
		rng:       rng,
		spawn:     cfg.Spawn,
		minSize:   cfg.Obstacles.MinSize,
		maxSize:   cfg.Obstacles.MaxSize,
		palette:   palette,
		obstacles: make([]Obstacle, 0, 32),
	}
}

// Reset clears obstacles and timers and adopts a new layout and speed range.
func (s *Spawner) Reset(layout Layout, modeCfg config.ModeConfig) {
	s.layout = layout
	s.minSpeed = modeCfg.MinSpeed
	s.maxSpeed = modeCfg.MaxSpeed
	s.timers = make([]float64, len(layout.Groups))
	s.obstacles = s.obstacles[:0]
	s.spawned = 0
	s.pruned = 0
}

// Interval returns the spawn interval at the given speed multiplier.
func (s *Spawner) Interval(speedMul float64) float64 {
	return s.spawn.BaseIntervalMs / speedMul
}

// Tick runs one frame: timers and spawning, then movement, then pruning.
func (s *Spawner) Tick(deltaMs, speedMul, difficultyMul float64) {
	s.updateTimers(deltaMs, speedMul, difficultyMul)
	s.Advance(deltaMs, speedMul)
	s.Prune()
}

// updateTimers accumulates delta into each group's timer and spawns when the
// interval is reached. The timer is reset to zero, not decremented, so any
// overshoot is discarded.
func (s *Spawner) updateTimers(deltaMs, speedMul, difficultyMul float64) {
	interval := s.Interval(speedMul)
	chance := SecondaryChance(difficultyMul, s.spawn.SecondaryCap, s.spawn.SecondaryDivisor)

	for i := range s.timers {
		updated := s.timers[i] + deltaMs
		if updated < interval {
			s.timers[i] = updated
			continue
		}

		first := s.spawnObstacle(i, -1)
		if s.rng.Float64() < chance {
			s.spawnObstacle(i, first.Lane)
		}
		s.timers[i] = 0
	}
}

// spawnObstacle appends one obstacle to group index gi. When avoid is a lane
// index and the group has more than one lane, a draw that lands on it is
// moved to the next lane (wrapping), never re-rolled.
// Random draws happen in a fixed order: lane, size, speed, color.
func (s *Spawner) spawnObstacle(gi, avoid int) Obstacle {
	group := s.layout.Groups[gi]
	count := group.LaneCount()

	lane := s.rng.Intn(count)
	if avoid >= 0 && count > 1 && lane == avoid {
		lane = (lane + 1) % count
	}

	size := s.minSize + s.rng.Float64()*(s.maxSize-s.minSize)
	speed := s.minSpeed + s.rng.Float64()*(s.maxSpeed-s.minSpeed)

	color := core.ColorDefault
	if len(s.palette) > 0 {
		color = s.palette[s.rng.Intn(len(s.palette))]
	}

	o := Obstacle{
		Group: group.Group,
		Lane:  lane,
		Size:  size,
		Y:     -size,
		Speed: speed,
		Color: color,
	}
	s.obstacles = append(s.obstacles, o)
	s.spawned++
	return o
}

// Advance moves every obstacle down by speed * speedMul * delta.
func (s *Spawner) Advance(deltaMs, speedMul float64) {
	for i := range s.obstacles {
		s.obstacles[i].Y += s.obstacles[i].Speed * speedMul * deltaMs / 1000
	}
}

// Prune removes obstacles whose top is below the field height plus their
// own size. This is the only way obstacles leave the field.
func (s *Spawner) Prune() {
	limit := s.layout.FieldHeight
	kept := s.obstacles[:0]
	for _, o := range s.obstacles {
		if o.Y <= limit+o.Size {
			kept = append(kept, o)
		}
	}
	s.pruned += len(s.obstacles) - len(kept)
	s.obstacles = kept
}

// Obstacles returns the live obstacles. The slice is owned by the spawner.
func (s *Spawner) Obstacles() []Obstacle {
	return s.obstacles
}

// Counts returns how many obstacles were spawned and pruned since Reset.
func (s *Spawner) Counts() (spawned, pruned int) {
	return s.spawned, s.pruned
}

// Timers returns the spawn timers, index-aligned with the layout groups.
func (s *Spawner) Timers() []float64 {
	return s.timers
}

// SecondaryChance returns the probability of a second obstacle in the same
// spawn: min(limit, (difficulty-1)/divisor), never below zero.
func SecondaryChance(difficultyMul, limit, divisor float64) float64 {
	if divisor <= 0 {
		return 0
	}
	return math.Max(0, math.Min(limit, (difficultyMul-1)/divisor))
}
