package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-dodge/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick mode and difficulty, then play",
	Long: `Start Lane Dodge with an interactive setup menu.

Choose solo or duo and a difficulty preset, then select Start.
Quitting the game returns to the menu.

Controls:
  Up/Down      - Move between rows
  Left/Right   - Change the value
  Enter        - Start
  Q/Esc        - Quit

Examples:
  lanedodge menu
  lanedodge menu --fps 30 --log-file lanedodge.log`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runMenu(_ *cobra.Command, _ []string) {
	setup := tui.DefaultSetup()

	for {
		cfg := runtimeConfig()

		selected, err := tui.RunMenu(setup, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if selected == nil {
			return
		}
		setup = *selected

		if err := playGame(setup, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}
