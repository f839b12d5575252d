package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/lane-dodge/internal/config"
)

var (
	flagEffective        bool
	flagConfigDifficulty string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the game configuration",
	Long: `Print the embedded default configuration as YAML. Save it to
~/.lanedodge/configs/lanedodge.yaml or ./configs/lanedodge.yaml to
customize the game; keys left out keep their default values.

With --effective, print the configuration the game would actually use
after the search path and the difficulty preset are applied.

Examples:
  lanedodge config > ~/.lanedodge/configs/lanedodge.yaml
  lanedodge config --effective --difficulty hard
  lanedodge config --effective --config ./my-lanes.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagEffective, "effective", false, "Print the loaded config with the preset applied")
	configCmd.Flags().StringVar(&flagConfigDifficulty, "difficulty", "", "Difficulty preset applied with --effective")
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runConfig(_ *cobra.Command, _ []string) {
	if !flagEffective {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	preset, err := config.ParsePreset(flagConfigDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := effectiveConfig(flagConfig, preset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: encoding config: %v\n", err)
		os.Exit(1)
	}
	//nolint:errcheck // Flushes the document end; output already written
	enc.Close()
}
