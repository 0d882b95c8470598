package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/sim"
)

var (
	flagSimDuration   time.Duration
	flagSimStep       time.Duration
	flagSimDifficulty string
	flagSimTwoPlayer  bool
	flagSimAutopilot  bool
	flagSimSmoothing  bool
	flagSimUntilEnd   bool
	flagSimYAML       bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a session without a terminal",
	Long: `Run a session headless on a simulated clock and print a summary.
Runs with the same flags always produce the same result.

Examples:
  pong simulate
  pong simulate --duration 5m --step 8ms --autopilot
  pong simulate --two-player --until-end --yaml`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().DurationVar(&flagSimDuration, "duration", time.Minute, "Simulated time")
	simulateCmd.Flags().DurationVar(&flagSimStep, "step", time.Second/60, "Time between frames")
	simulateCmd.Flags().StringVar(&flagSimDifficulty, "difficulty", "", "Difficulty name or index (default: configured default)")
	simulateCmd.Flags().BoolVar(&flagSimTwoPlayer, "two-player", false, "Two-player rules")
	simulateCmd.Flags().BoolVar(&flagSimAutopilot, "autopilot", false, "Human paddles follow the ball")
	simulateCmd.Flags().BoolVar(&flagSimSmoothing, "smoothing", false, "Average frame deltas")
	simulateCmd.Flags().BoolVar(&flagSimUntilEnd, "until-end", false, "Stop when the session ends")
	simulateCmd.Flags().BoolVar(&flagSimYAML, "yaml", false, "Print the summary as YAML")
}

// simSummary is the printable outcome of a run.
type simSummary struct {
	Difficulty string  `yaml:"difficulty"`
	Mode       string  `yaml:"mode"`
	Frames     int     `yaml:"frames"`
	Seconds    float64 `yaml:"seconds"`
	State      string  `yaml:"state"`
	Score      int     `yaml:"score"`
	LivesP1    int     `yaml:"lives_p1"`
	LivesP2    int     `yaml:"lives_p2"`
	LostP1     int     `yaml:"lost_p1"`
	LostP2     int     `yaml:"lost_p2"`
}

func runSimulate(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	difficulty := cfg.DefaultDifficulty
	if flagSimDifficulty != "" {
		if difficulty, err = parseDifficulty(cfg, flagSimDifficulty); err != nil {
			return err
		}
	}
	level, _ := cfg.Level(difficulty)

	res, err := sim.Run(sim.Options{
		Duration:  flagSimDuration,
		Step:      flagSimStep,
		Smoothing: flagSimSmoothing,
		Tunables:  config.TunablesFor(cfg, difficulty, !flagSimTwoPlayer),
		Autopilot: flagSimAutopilot,
		StopOnEnd: flagSimUntilEnd,
	}, logger.WithPrefix("sim"))
	if err != nil {
		return err
	}

	mode := "single-player"
	if flagSimTwoPlayer {
		mode = "two-player"
	}
	summary := simSummary{
		Difficulty: level.Name,
		Mode:       mode,
		Frames:     res.Frames,
		Seconds:    res.Elapsed.Seconds(),
		State:      res.Final.State.String(),
		Score:      res.Final.Score,
		LivesP1:    res.Final.Lives[0],
		LivesP2:    res.Final.Lives[1],
		LostP1:     res.LostP1,
		LostP2:     res.LostP2,
	}

	if flagSimYAML {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(summary)
	}

	fmt.Printf("Simulated %s of %s pong (%s)\n", res.Elapsed, summary.Mode, summary.Difficulty)
	fmt.Println()
	fmt.Printf("  Frames:   %d\n", summary.Frames)
	fmt.Printf("  State:    %s\n", summary.State)
	fmt.Printf("  Score:    %d\n", summary.Score)
	fmt.Printf("  Lives:    %d / %d\n", summary.LivesP1, summary.LivesP2)
	fmt.Printf("  Lost:     %d / %d\n", summary.LostP1, summary.LostP2)
	return nil
}
