// Package config provides YAML (or TOML) configuration loading for pong:
// the difficulty table, the frame rate and the pause lengths.
package config

import (
	"errors"
	"fmt"
)

// Level is one row of the difficulty table.
type Level struct {
	Name        string  `yaml:"name" toml:"name"`
	MaxLives    int     `yaml:"max_lives" toml:"max_lives"`
	MinSpeed    float64 `yaml:"min_speed" toml:"min_speed"` // Arena units per second
	MaxSpeed    float64 `yaml:"max_speed" toml:"max_speed"`
	BallSize    float64 `yaml:"ball_size" toml:"ball_size"` // Multipliers of the base sizes
	Paddle1Size float64 `yaml:"paddle1_size" toml:"paddle1_size"`
	Paddle2Size float64 `yaml:"paddle2_size" toml:"paddle2_size"`
	CPUDelayMS  int     `yaml:"cpu_delay_ms" toml:"cpu_delay_ms"` // CPU reaction time
}

// Timing holds the frame rate and pause lengths.
type Timing struct {
	FrameRate    int `yaml:"frame_rate" toml:"frame_rate"`
	ReadyPauseMS int `yaml:"ready_pause_ms" toml:"ready_pause_ms"`
	ServePauseMS int `yaml:"serve_pause_ms" toml:"serve_pause_ms"`
}

// PongConfig contains all configuration for a pong session.
type PongConfig struct {
	DefaultDifficulty int     `yaml:"default_difficulty" toml:"default_difficulty"`
	Difficulties      []Level `yaml:"difficulties" toml:"difficulties"`
	Timing            Timing  `yaml:"timing" toml:"timing"`
}

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid configuration")

// Validate checks that every level can drive a session.
func (c PongConfig) Validate() error {
	if len(c.Difficulties) == 0 {
		return fmt.Errorf("%w: no difficulty levels", ErrInvalid)
	}
	for i, l := range c.Difficulties {
		switch {
		case l.MaxLives < 1:
			return fmt.Errorf("%w: level %d (%s): max_lives must be at least 1", ErrInvalid, i, l.Name)
		case l.MinSpeed <= 0 || l.MaxSpeed < l.MinSpeed:
			return fmt.Errorf("%w: level %d (%s): need 0 < min_speed <= max_speed", ErrInvalid, i, l.Name)
		case l.BallSize <= 0 || l.Paddle1Size <= 0 || l.Paddle2Size <= 0:
			return fmt.Errorf("%w: level %d (%s): sizes must be positive", ErrInvalid, i, l.Name)
		case l.CPUDelayMS < 0:
			return fmt.Errorf("%w: level %d (%s): cpu_delay_ms must not be negative", ErrInvalid, i, l.Name)
		}
	}
	if c.Timing.FrameRate < 0 || c.Timing.ReadyPauseMS < 0 || c.Timing.ServePauseMS < 0 {
		return fmt.Errorf("%w: timing values must not be negative", ErrInvalid)
	}
	return nil
}

// LevelNames returns the difficulty names in table order.
func (c PongConfig) LevelNames() []string {
	names := make([]string, len(c.Difficulties))
	for i, l := range c.Difficulties {
		names[i] = l.Name
	}
	return names
}

// IndexOf returns the table index of a named level, or -1.
func (c PongConfig) IndexOf(name string) int {
	for i, l := range c.Difficulties {
		if l.Name == name {
			return i
		}
	}
	return -1
}

// FrameRate returns the configured frame rate, 60 when unset.
func (c PongConfig) FrameRate() int {
	if c.Timing.FrameRate <= 0 {
		return 60
	}
	return c.Timing.FrameRate
}
