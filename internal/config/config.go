// Package config holds the run configuration: defaults, an optional YAML
// file, and validation.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ensigniasec/matrix-rain/internal/driver"
	"github.com/ensigniasec/matrix-rain/internal/validate"
)

// Backend names.
const (
	BackendTcell = "tcell"
	BackendTea   = "tea"
)

const (
	defaultSeconds = 60
	defaultFPS     = 30

	maxConfigSize = 64 * 1024
)

// Config is the full run configuration.
type Config struct {
	// Seconds is the run duration; zero or less runs until interrupted.
	Seconds int    `yaml:"seconds"`
	FPS     int    `yaml:"fps" validate:"gt=0"`
	Backend string `yaml:"backend" validate:"oneof=tcell tea"`
	// Seed makes runs reproducible; zero seeds from entropy.
	Seed uint64 `yaml:"seed"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Seconds: defaultSeconds,
		FPS:     defaultFPS,
		Backend: BackendTcell,
	}
}

// Load overlays the YAML file at path onto the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	expanded, err := expandTilde(path)
	if err != nil {
		return cfg, err
	}
	logrus.Debug("Loading config file from: ", expanded)

	info, err := os.Stat(expanded)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if info.Size() > maxConfigSize {
		return cfg, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigSize)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parsing config %s: %w", expanded, err)
	}
	return cfg, nil
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	return validate.Struct(c)
}

// FrameDelay is the sleep between frames.
func (c Config) FrameDelay() time.Duration {
	return driver.FrameDelay(c.FPS)
}

// expandTilde expands the tilde in a path to the user's home directory.
func expandTilde(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}
