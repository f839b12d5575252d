package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/games/lanedodge"
)

var (
	flagFrames        int
	flagSimMode       string
	flagSimDifficulty string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless round and print statistics",
	Long: `Run one round without a terminal UI. Players never move, so the
round lasts until the first collision or until --frames frames have been
simulated at --fps. Useful for checking how a config plays out.

Examples:
  lanedodge simulate
  lanedodge simulate --frames 7200 --mode duo --seed 42
  lanedodge simulate --difficulty fixed --config ./my-lanes.yaml`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagFrames, "frames", 3600, "Maximum number of frames to simulate")
	simulateCmd.Flags().StringVar(&flagSimMode, "mode", "solo", "Mode: solo or duo")
	simulateCmd.Flags().StringVar(&flagSimDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	simulateCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

// simResult summarizes a headless round.
type simResult struct {
	Mode          lanedodge.Mode
	Seed          int64
	Frames        int
	Snapshot      lanedodge.Snapshot
	PeakObstacles int
}

func runSimulate(_ *cobra.Command, _ []string) {
	mode, ok := lanedodge.ParseMode(flagSimMode)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q (use solo or duo)\n", flagSimMode)
		os.Exit(1)
	}

	preset, err := config.ParsePreset(flagSimDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := effectiveConfig(flagConfig, preset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	res, err := simulate(cfg, mode, seed, flagFrames, flagFPS, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	printSimResult(os.Stdout, res, flagFPS)
}

// simulate runs one round with idle players on a fixed frame step.
func simulate(cfg config.LaneDodgeConfig, mode lanedodge.Mode, seed int64, frames, fps int, logger *log.Logger) (simResult, error) {
	if frames <= 0 {
		return simResult{}, errors.New("simulate: --frames must be positive")
	}
	if fps <= 0 {
		return simResult{}, errors.New("simulate: --fps must be positive")
	}

	engine, err := lanedodge.NewEngine(cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		return simResult{}, fmt.Errorf("simulate: %w", err)
	}
	engine.SetMode(mode)
	engine.Start()
	logger.Debug("simulation started", "mode", mode, "seed", seed, "frames", frames, "fps", fps)

	res := simResult{Mode: mode, Seed: seed}
	frameMs := 1000 / float64(fps)

	for frame := 0; frame < frames; frame++ {
		out := engine.Advance(float64(frame) * frameMs)
		res.Frames = frame + 1
		res.PeakObstacles = max(res.PeakObstacles, len(engine.Snapshot().Obstacles))

		if out.Outcome == lanedodge.OutcomeRoundEnded {
			logger.Info("round ended",
				"mode", mode,
				"survived", out.SurvivalSeconds,
				"crashed", out.Crashed,
			)
			break
		}
	}

	res.Snapshot = engine.Snapshot()
	if !res.Snapshot.RoundEnded {
		logger.Info("frame limit reached", "mode", mode, "elapsed_ms", res.Snapshot.ElapsedMs)
	}
	return res, nil
}

// printSimResult writes a human readable report.
func printSimResult(w io.Writer, res simResult, fps int) {
	snap := res.Snapshot

	outcome := "survived the frame limit"
	seconds := snap.ElapsedSeconds
	if snap.RoundEnded {
		names := make([]string, len(snap.Crashed))
		for i, id := range snap.Crashed {
			names[i] = id.String()
		}
		outcome = "crashed (" + strings.Join(names, ", ") + ")"
		seconds = snap.SurvivalSeconds
	}

	fmt.Fprintf(w, "Mode:         %s\n", res.Mode)
	fmt.Fprintf(w, "Seed:         %d\n", res.Seed)
	fmt.Fprintf(w, "Frames:       %d at %d fps\n", res.Frames, fps)
	fmt.Fprintf(w, "Outcome:      %s\n", outcome)
	fmt.Fprintf(w, "Survival:     %d seconds\n", seconds)
	fmt.Fprintf(w, "Obstacles:    %d spawned, %d passed, %d peak on field\n", snap.Spawned, snap.Pruned, res.PeakObstacles)
	fmt.Fprintf(w, "Multipliers:  speed %.2fx, difficulty %.2fx\n", snap.SpeedMultiplier, snap.DifficultyMultiplier)
}
