package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/config"
)

var flagConfigFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration pong would use, after the search order:
--config, ~/.pong/configs/pong.yaml, ./configs/pong.yaml, then the
built-in defaults. The output is a valid config file.

Examples:
  pong config > ~/.pong/configs/pong.yaml
  pong config --format toml > my-pong.toml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfigFormat, "format", "yaml", "Output format: yaml or toml")
}

func runConfig(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}
	return config.Encode(os.Stdout, cfg, config.Format(flagConfigFormat))
}
