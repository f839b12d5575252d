package config

import (
	_ "embed"
)

//go:embed defaults/lanedodge.yaml
var defaultLaneDodgeYAML []byte

// DefaultLaneDodgeConfig returns the default Lane Dodge configuration.
// It mirrors defaults/lanedodge.yaml and is used when the embedded file
// cannot be parsed.
func DefaultLaneDodgeConfig() LaneDodgeConfig {
	difficulty := DifficultyConfig{
		Enabled:          true,
		SpeedRampMs:      18000,
		SpeedCap:         2.4,
		DifficultyRampMs: 12000,
		DifficultyCap:    3,
	}

	return LaneDodgeConfig{
		Field: FieldConfig{
			Width:  960,
			Height: 640,
		},
		Player: PlayerConfig{
			Width:        46,
			Height:       60,
			BottomMargin: 24,
		},
		Spawn: SpawnConfig{
			BaseIntervalMs:   820,
			SecondaryCap:     0.35,
			SecondaryDivisor: 3,
		},
		Obstacles: ObstacleConfig{
			MinSize: 36,
			MaxSize: 54,
			Palette: []string{"red", "orange", "purple", "teal"},
		},
		Solo: ModeConfig{
			Lanes:      [][]float64{{0.3, 0.5, 0.7}},
			MinSpeed:   120,
			MaxSpeed:   200,
			Difficulty: difficulty,
		},
		Duo: ModeConfig{
			Lanes:      [][]float64{{0.13, 0.25, 0.37}, {0.63, 0.75, 0.87}},
			MinSpeed:   140,
			MaxSpeed:   220,
			Difficulty: difficulty,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultLaneDodgeYAML
}
