// Package config provides YAML-based game configuration loading and
// difficulty curves for Lane Dodge.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/lane-dodge/internal/core"
)

// LaneDodgeConfig contains all tunable parameters of the lane dodging game.
// Distances are in field units, times in ms.
type LaneDodgeConfig struct {
	Field     FieldConfig    `yaml:"field"`
	Player    PlayerConfig   `yaml:"player"`
	Spawn     SpawnConfig    `yaml:"spawn"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
	Solo      ModeConfig     `yaml:"solo"`
	Duo       ModeConfig     `yaml:"duo"`
}

// FieldConfig defines the logical play field.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig defines the player hitbox and its fixed band near the bottom.
type PlayerConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	BottomMargin float64 `yaml:"bottom_margin"` // Gap between player bottom and field bottom
}

// SpawnConfig defines obstacle spawn timing.
type SpawnConfig struct {
	BaseIntervalMs   float64 `yaml:"base_interval_ms"`  // Interval at speed multiplier 1
	SecondaryCap     float64 `yaml:"secondary_cap"`     // Upper bound of the second-obstacle chance
	SecondaryDivisor float64 `yaml:"secondary_divisor"` // chance = (difficulty-1) / divisor
}

// ObstacleConfig defines obstacle generation ranges.
type ObstacleConfig struct {
	MinSize float64  `yaml:"min_size"`
	MaxSize float64  `yaml:"max_size"`
	Palette []string `yaml:"palette"` // core.Color names
}

// ModeConfig holds the parameters that differ between solo and duo play.
type ModeConfig struct {
	// Lanes lists lane centers as fractions of the field width, one list per
	// lane group. Solo uses one group, duo uses two (left, right).
	Lanes      [][]float64      `yaml:"lanes"`
	MinSpeed   float64          `yaml:"min_speed"` // Baseline obstacle speed, units/s
	MaxSpeed   float64          `yaml:"max_speed"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// DifficultyConfig defines how the speed and difficulty multipliers ramp
// with elapsed time: multiplier = 1 + min(elapsed/ramp, cap).
type DifficultyConfig struct {
	Enabled          bool    `yaml:"enabled"`
	SpeedRampMs      float64 `yaml:"speed_ramp_ms"`
	SpeedCap         float64 `yaml:"speed_cap"`
	DifficultyRampMs float64 `yaml:"difficulty_ramp_ms"`
	DifficultyCap    float64 `yaml:"difficulty_cap"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ErrUnknownPreset is returned by ParsePreset for unrecognized names.
var ErrUnknownPreset = errors.New("config: unknown difficulty preset")

// ParsePreset converts a CLI string to a preset. An empty string means "use
// the config as loaded" and returns an empty preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownPreset, s)
	}
}

// PaletteColors resolves the configured palette names.
func (c LaneDodgeConfig) PaletteColors() ([]core.Color, error) {
	colors := make([]core.Color, 0, len(c.Obstacles.Palette))
	for _, name := range c.Obstacles.Palette {
		col, ok := core.ParseColor(name)
		if !ok {
			return nil, fmt.Errorf("config: unknown palette color %q", name)
		}
		colors = append(colors, col)
	}
	return colors, nil
}

// Validate checks the config for values the simulation cannot work with.
func (c LaneDodgeConfig) Validate() error {
	var errs []error

	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		errs = append(errs, fmt.Errorf("field size must be positive, got %gx%g", c.Field.Width, c.Field.Height))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, fmt.Errorf("player size must be positive, got %gx%g", c.Player.Width, c.Player.Height))
	}
	if c.Player.BottomMargin < 0 {
		errs = append(errs, fmt.Errorf("player bottom_margin must not be negative"))
	}
	if c.Spawn.BaseIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("spawn base_interval_ms must be positive"))
	}
	if c.Spawn.SecondaryCap < 0 || c.Spawn.SecondaryCap > 1 {
		errs = append(errs, fmt.Errorf("spawn secondary_cap must be in [0, 1], got %g", c.Spawn.SecondaryCap))
	}
	if c.Spawn.SecondaryDivisor <= 0 {
		errs = append(errs, fmt.Errorf("spawn secondary_divisor must be positive"))
	}
	if c.Obstacles.MinSize <= 0 || c.Obstacles.MaxSize < c.Obstacles.MinSize {
		errs = append(errs, fmt.Errorf("obstacle size range [%g, %g] is invalid", c.Obstacles.MinSize, c.Obstacles.MaxSize))
	}
	if len(c.Obstacles.Palette) == 0 {
		errs = append(errs, fmt.Errorf("obstacle palette must not be empty"))
	} else if _, err := c.PaletteColors(); err != nil {
		errs = append(errs, err)
	}

	errs = append(errs, c.Solo.validate("solo", 1)...)
	errs = append(errs, c.Duo.validate("duo", 2)...)

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid lanedodge config: %w", errors.Join(errs...))
	}
	return nil
}

func (m ModeConfig) validate(name string, groups int) []error {
	var errs []error

	if len(m.Lanes) != groups {
		errs = append(errs, fmt.Errorf("%s: expected %d lane groups, got %d", name, groups, len(m.Lanes)))
	}
	for i, lanes := range m.Lanes {
		if len(lanes) == 0 {
			errs = append(errs, fmt.Errorf("%s: lane group %d is empty", name, i))
		}
		for _, x := range lanes {
			if x <= 0 || x >= 1 {
				errs = append(errs, fmt.Errorf("%s: lane center %g must be inside (0, 1)", name, x))
			}
		}
	}
	if m.MinSpeed <= 0 || m.MaxSpeed < m.MinSpeed {
		errs = append(errs, fmt.Errorf("%s: speed range [%g, %g] is invalid", name, m.MinSpeed, m.MaxSpeed))
	}

	d := m.Difficulty
	if d.Enabled && (d.SpeedRampMs <= 0 || d.DifficultyRampMs <= 0) {
		errs = append(errs, fmt.Errorf("%s: difficulty ramps must be positive", name))
	}
	if d.SpeedCap < 0 || d.DifficultyCap < 0 {
		errs = append(errs, fmt.Errorf("%s: difficulty caps must not be negative", name))
	}
	return errs
}
