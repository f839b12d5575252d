package config

import "math"

// DifficultyCurve derives the speed and difficulty multipliers from elapsed
// round time. Both are pure functions of elapsed time, so they do not depend
// on how the time was split into frames.
type DifficultyCurve struct {
	cfg DifficultyConfig
}

// NewDifficultyCurve creates a curve for the given mode difficulty config.
func NewDifficultyCurve(cfg DifficultyConfig) *DifficultyCurve {
	return &DifficultyCurve{cfg: cfg}
}

// IsEnabled returns whether the multipliers ramp at all.
func (d *DifficultyCurve) IsEnabled() bool {
	return d.cfg.Enabled
}

// SpeedMultiplier returns 1 + min(elapsed/SpeedRampMs, SpeedCap).
func (d *DifficultyCurve) SpeedMultiplier(elapsedMs float64) float64 {
	return d.ramp(elapsedMs, d.cfg.SpeedRampMs, d.cfg.SpeedCap)
}

// DifficultyMultiplier returns 1 + min(elapsed/DifficultyRampMs, DifficultyCap).
func (d *DifficultyCurve) DifficultyMultiplier(elapsedMs float64) float64 {
	return d.ramp(elapsedMs, d.cfg.DifficultyRampMs, d.cfg.DifficultyCap)
}

func (d *DifficultyCurve) ramp(elapsedMs, rampMs, limit float64) float64 {
	if !d.cfg.Enabled || rampMs <= 0 || elapsedMs <= 0 {
		return 1
	}
	return 1 + math.Min(elapsedMs/rampMs, limit)
}
