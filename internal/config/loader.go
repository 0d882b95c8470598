package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for config files that are neither YAML nor TOML.
var ErrUnknownFormat = errors.New("config: unknown config format")

// Format is a config file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Load loads the pong configuration.
// Search order: customPath -> ~/.pong/configs/pong.yaml -> ./configs/pong.yaml -> embedded default
func Load(customPath string) (PongConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return PongConfig{}, err
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("pong.yaml"); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := loadFile(filepath.Join("configs", "pong.yaml")); err == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := Decode(defaultPongYAML, FormatYAML)
	if err != nil {
		return DefaultPongConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func loadFile(path string) (PongConfig, error) {
	format, err := FormatOf(path)
	if err != nil {
		return PongConfig{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return PongConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Decode(data, format)
	if err != nil {
		return PongConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses and validates a configuration. Fields left out keep their
// default values.
func Decode(data []byte, format Format) (PongConfig, error) {
	cfg := DefaultPongConfig()
	// Lists are replaced, not merged.
	cfg.Difficulties = nil

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return PongConfig{}, err
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return PongConfig{}, err
		}
	default:
		return PongConfig{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if len(cfg.Difficulties) == 0 {
		cfg.Difficulties = DefaultPongConfig().Difficulties
	}
	if err := cfg.Validate(); err != nil {
		return PongConfig{}, err
	}
	return cfg, nil
}

// Encode writes cfg in the given format.
func Encode(w io.Writer, cfg PongConfig, format Format) error {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	case FormatTOML:
		return toml.NewEncoder(w).Encode(cfg)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pong", "configs", filename)
}
