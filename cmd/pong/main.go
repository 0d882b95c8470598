// pong is the classic paddle game for the terminal: one player against the
// CPU or two players on one keyboard, with suspend and resume.
//
// Usage:
//
//	pong                     - Start the menu
//	pong play                - Resume the saved game or start a new one
//	pong serve               - Start SSH server for remote play
//	pong scores [level]      - Show high scores or match history
//	pong simulate            - Run a headless session and print a summary
//	pong config              - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Difficulty table and timing (YAML or TOML)
//	--db <path>         - Set database path (default: ~/.pong/pong.db)
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Log file used while the terminal UI runs
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pong",
	Short: "Pong - the classic paddle game in your terminal",
	Long: `Pong for the terminal. Play against the CPU or a friend on the same
keyboard; leave at any time and pick the game up where you left it.

Available commands:
  menu      - Interactive menu (the default)
  play      - Jump straight into a game
  serve     - Start SSH server for remote play
  scores    - View high scores and match history
  simulate  - Run a session without a terminal
  config    - Print the effective configuration

Examples:
  pong
  pong play --difficulty hard
  pong play --two-player --new
  pong serve --ssh :2222
  pong scores normal`,
	RunE: runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a custom config (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pong/pong.db", "Path to the database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.pong/pong.log", "Log file used while the terminal UI runs")

	// Add subcommands
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}
