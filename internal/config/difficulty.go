package config

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/games/pong"
)

// Level returns the difficulty at index. An out-of-range index is replaced
// by the configured default (or DefaultDifficulty) and reported as false.
func (c PongConfig) Level(index int) (Level, bool) {
	if index >= 0 && index < len(c.Difficulties) {
		return c.Difficulties[index], true
	}
	fallback := c.DefaultDifficulty
	if fallback < 0 || fallback >= len(c.Difficulties) {
		fallback = DefaultDifficulty
	}
	if fallback >= len(c.Difficulties) {
		return DefaultPongConfig().Difficulties[DefaultDifficulty], false
	}
	return c.Difficulties[fallback], false
}

// TunablesFor builds session tunables for a difficulty index and mode.
// An out-of-range index is logged and the default level used instead.
func TunablesFor(cfg PongConfig, index int, singlePlayer bool) pong.Tunables {
	level, ok := cfg.Level(index)
	if !ok {
		log.Warn("difficulty index out of range, using default", "index", index, "level", level.Name)
	}
	return pong.Tunables{
		MaxLives:     level.MaxLives,
		MinSpeed:     level.MinSpeed,
		MaxSpeed:     level.MaxSpeed,
		BallSize:     level.BallSize,
		Paddle1Size:  level.Paddle1Size,
		Paddle2Size:  level.Paddle2Size,
		CPUDelay:     time.Duration(level.CPUDelayMS) * time.Millisecond,
		SinglePlayer: singlePlayer,
		ReadyPause:   time.Duration(cfg.Timing.ReadyPauseMS) * time.Millisecond,
		ServePause:   time.Duration(cfg.Timing.ServePauseMS) * time.Millisecond,
	}
}
