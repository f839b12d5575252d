package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/core"
	"github.com/vovakirdan/lane-dodge/internal/games/lanedodge"
	"github.com/vovakirdan/lane-dodge/internal/platform/tui"
	"github.com/vovakirdan/lane-dodge/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagMode       string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Lane Dodge",
	Long: `Start playing Lane Dodge.

Controls:
  A/D          - Player 1 left/right
  Left/Right   - Player 2 left/right (also Player 1 in solo)
  Mouse        - Press or drag: left half P1, right half P2;
                 left quarter of a half moves left, right quarter right
  Space/Enter  - Start a round, retry after a crash
  M            - Switch solo/duo between rounds
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower spawns, longer ramp to top speed
  normal - Config as loaded
  hard   - Faster spawns, shorter ramp
  fixed  - No ramp, speed and difficulty stay at 1x

Examples:
  lanedodge play
  lanedodge play --mode duo
  lanedodge play --difficulty hard
  lanedodge play --config ./my-lanes.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagMode, "mode", "solo", "Starting mode: solo or duo")
}

func runPlay(_ *cobra.Command, _ []string) {
	mode, ok := lanedodge.ParseMode(flagMode)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q (use solo or duo)\n", flagMode)
		os.Exit(1)
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := playGame(tui.Setup{Mode: mode, Difficulty: preset}, runtimeConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// playGame validates the config, prepares the game and runs it until the
// player quits.
func playGame(setup tui.Setup, cfg core.RuntimeConfig) error {
	// Fail before taking over the terminal
	if _, err := effectiveConfig(flagConfig, setup.Difficulty); err != nil {
		return err
	}

	lanedodge.SetConfigPath(flagConfig)
	lanedodge.SetDifficultyPreset(setup.Difficulty)
	lanedodge.SetStartMode(setup.Mode)

	game, err := registry.Create(lanedodge.GameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Info("session started",
		"mode", setup.Mode,
		"difficulty", setup.Difficulty,
		"fps", cfg.TickRate,
		"seed", cfg.Seed,
	)

	if err := tui.Run(game, logger, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// effectiveConfig loads the config and applies a difficulty preset.
func effectiveConfig(path string, preset config.DifficultyPreset) (config.LaneDodgeConfig, error) {
	cfg, err := config.LoadLaneDodge(path)
	if err != nil {
		return config.LaneDodgeConfig{}, err
	}
	config.ApplyLaneDodgePreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return config.LaneDodgeConfig{}, err
	}
	return cfg, nil
}

// runtimeConfig builds the runtime config from global flags and the
// terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
