package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/platform/tui"
)

var (
	flagDifficulty string
	flagTwoPlayer  bool
	flagNewGame    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Resume the suspended game, or start a new one.

A new game starts when there is nothing to resume, when --new is given,
or when --difficulty or --two-player differ from the suspended game.

Controls:
  A/D, Left/Right - Move player 1 (bottom)
  J/L             - Move player 2 (top, two-player mode)
  Mouse           - Move the paddle of the half the pointer is in
  P/Esc           - Save and return to the menu
  Enter           - Play again (after the game ends)
  Q/Ctrl+C        - Save and quit

Examples:
  pong play
  pong play --difficulty hard
  pong play --two-player --new`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty name or index (default: last used)")
	playCmd.Flags().BoolVar(&flagTwoPlayer, "two-player", false, "Two players on one keyboard")
	playCmd.Flags().BoolVar(&flagNewGame, "new", false, "Discard the suspended game")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	return runUI(func(cfg config.PongConfig, env *tui.Env) (*tui.Settings, error) {
		saved := env.LoadSettings()
		s := saved
		if flagDifficulty != "" {
			d, err := parseDifficulty(cfg, flagDifficulty)
			if err != nil {
				return nil, err
			}
			s.Difficulty = d
		}
		if cmd.Flags().Changed("two-player") {
			s.SinglePlayer = !flagTwoPlayer
		}

		resume := env.CanResume() && !flagNewGame && s.Difficulty == saved.Difficulty
		if resume {
			resumed := env.ResumeSettings(s)
			if cmd.Flags().Changed("two-player") && resumed.SinglePlayer != s.SinglePlayer {
				resume = false
			} else {
				s = resumed
			}
		}
		if !resume {
			env.Discard(saved)
		}
		env.SaveSettings(s)
		return &s, nil
	})
}
