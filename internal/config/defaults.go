package config

import (
	_ "embed"
)

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

// DefaultDifficulty is the table index used when none, or an invalid one,
// is requested.
const DefaultDifficulty = 1

// DefaultPongConfig returns the default pong configuration.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		DefaultDifficulty: DefaultDifficulty,
		Difficulties: []Level{
			{Name: "easy", MaxLives: 4, MinSpeed: 200, MaxSpeed: 500, BallSize: 2, Paddle1Size: 2, Paddle2Size: 0.5, CPUDelayMS: 300},
			{Name: "normal", MaxLives: 3, MinSpeed: 300, MaxSpeed: 800, BallSize: 1, Paddle1Size: 1, Paddle2Size: 0.8, CPUDelayMS: 100},
			{Name: "hard", MaxLives: 3, MinSpeed: 600, MaxSpeed: 1200, BallSize: 1, Paddle1Size: 0.8, Paddle2Size: 1, CPUDelayMS: 50},
			{Name: "absurd", MaxLives: 1, MinSpeed: 1000, MaxSpeed: 100000, BallSize: 1, Paddle1Size: 0.5, Paddle2Size: 2, CPUDelayMS: 0},
		},
		Timing: Timing{
			FrameRate:    60,
			ReadyPauseMS: 1500,
			ServePauseMS: 500,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultPongYAML
}
