package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "lanedodge.yaml"

// LoadLaneDodge loads Lane Dodge configuration.
// Search order: customPath -> ~/.lanedodge/configs/lanedodge.yaml ->
// ./configs/lanedodge.yaml -> embedded default.
// The result is validated; a custom path that fails to read, parse or
// validate is an error, other locations are skipped when unusable.
func LoadLaneDodge(customPath string) (LaneDodgeConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return LaneDodgeConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return LaneDodgeConfig{}, fmt.Errorf("config: failed to load %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultLaneDodgeYAML)
	if err != nil {
		return DefaultLaneDodgeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults, so a partial file only
// overrides the keys it sets, and validates the result.
func Parse(data []byte) (LaneDodgeConfig, error) {
	cfg := DefaultLaneDodgeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return LaneDodgeConfig{}, fmt.Errorf("config: failed to parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return LaneDodgeConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lanedodge", "configs", filename)
}

// ApplyLaneDodgePreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyLaneDodgePreset(cfg *LaneDodgeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyFixed:
		cfg.Solo.Difficulty.Enabled = false
		cfg.Duo.Difficulty.Enabled = false
		return
	case DifficultyEasy:
		cfg.Spawn.BaseIntervalMs *= 1.25
		scaleRamps(cfg, 1.5)
	case DifficultyHard:
		cfg.Spawn.BaseIntervalMs *= 0.8
		scaleRamps(cfg, 0.7)
	case DifficultyNormal, "":
		return
	}
	cfg.Solo.Difficulty.Enabled = true
	cfg.Duo.Difficulty.Enabled = true
}

// scaleRamps stretches (factor > 1) or compresses the time it takes both
// multipliers to reach their caps.
func scaleRamps(cfg *LaneDodgeConfig, factor float64) {
	for _, m := range []*ModeConfig{&cfg.Solo, &cfg.Duo} {
		m.Difficulty.SpeedRampMs *= factor
		m.Difficulty.DifficultyRampMs *= factor
	}
}
