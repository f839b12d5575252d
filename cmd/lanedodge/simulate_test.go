package main

import (
	"bytes"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/games/lanedodge"
)

func TestSimulateDeterministic(t *testing.T) {
	cfg := config.DefaultLaneDodgeConfig()
	logger := log.New(io.Discard)

	a, err := simulate(cfg, lanedodge.ModeDuo, 42, 3600, 60, logger)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	b, err := simulate(cfg, lanedodge.ModeDuo, 42, 3600, 60, logger)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed must give the same result")
	}
	if a.Frames == 0 || a.Frames > 3600 {
		t.Errorf("frames = %d", a.Frames)
	}
	if a.Snapshot.Spawned == 0 {
		t.Error("a minute of play must spawn obstacles")
	}
}

func TestSimulateFixedDifficulty(t *testing.T) {
	cfg := config.DefaultLaneDodgeConfig()
	config.ApplyLaneDodgePreset(&cfg, config.DifficultyFixed)

	res, err := simulate(cfg, lanedodge.ModeSolo, 7, 600, 60, log.New(io.Discard))
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	if res.Snapshot.SpeedMultiplier != 1 || res.Snapshot.DifficultyMultiplier != 1 {
		t.Errorf("fixed preset must keep multipliers at 1, got %g / %g",
			res.Snapshot.SpeedMultiplier, res.Snapshot.DifficultyMultiplier)
	}
}

func TestSimulateRejectsBadArgs(t *testing.T) {
	cfg := config.DefaultLaneDodgeConfig()
	logger := log.New(io.Discard)

	if _, err := simulate(cfg, lanedodge.ModeSolo, 1, 0, 60, logger); err == nil {
		t.Error("expected error for zero frames")
	}
	if _, err := simulate(cfg, lanedodge.ModeSolo, 1, 10, 0, logger); err == nil {
		t.Error("expected error for zero fps")
	}

	cfg.Field.Height = -1
	if _, err := simulate(cfg, lanedodge.ModeSolo, 1, 10, 60, logger); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestPrintSimResult(t *testing.T) {
	res, err := simulate(config.DefaultLaneDodgeConfig(), lanedodge.ModeSolo, 3, 30, 60, log.New(io.Discard))
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}

	var buf bytes.Buffer
	printSimResult(&buf, res, 60)
	out := buf.String()

	for _, want := range []string{"Mode:         SOLO", "Seed:         3", "Frames:       30 at 60 fps", "survived the frame limit"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}
