// lanedodge is a lane dodging arcade game for the terminal.
//
// Usage:
//
//	lanedodge play              - Play a round (solo or duo)
//	lanedodge menu              - Pick mode and difficulty interactively
//	lanedodge list              - List available games
//	lanedodge simulate          - Run a headless round and print statistics
//	lanedodge config            - Print the default or effective config
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--log-file <path>   - Write the event log to a file
//	--debug             - Enable debug logging
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/lane-dodge/internal/games/lanedodge"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lanedodge",
	Short: "Lane Dodge - dodge falling blocks in your terminal",
	Long: `Lane Dodge is a terminal arcade game. Move between three lanes to
avoid falling obstacles; they get faster and more frequent the longer
you survive. Play alone or with a friend on the same keyboard.

Available commands:
  play      - Start playing
  menu      - Interactive setup menu
  list      - Show all available games
  simulate  - Headless run for tuning configs
  config    - Print configuration

Examples:
  lanedodge play
  lanedodge play --mode duo --difficulty hard
  lanedodge menu
  lanedodge simulate --frames 3600 --seed 42`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write the event log to this file (default: discard)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger creates the event logger. The terminal belongs to the game, so
// interactive commands log to --log-file or nowhere; fallback is used when no
// file is given.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	w := fallback
	closeFn := func() {}

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeFn = func() {
			//nolint:errcheck // Best-effort close on exit
			f.Close()
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "lanedodge",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn, nil
}
