package main

import (
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start pong with the menu",
	Long: `Start pong in interactive menu mode.

Resume a suspended game, start a new one against the CPU or a friend,
pick the difficulty and browse the scores.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right      - Change difficulty
  Enter/Space     - Select
  Tab             - Scores
  Q               - Quit

Examples:
  pong menu
  pong menu --config ./my-pong.toml
  pong menu --db ./pong.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	return runUI(nil)
}
