// Package config holds the node widget defaults and CLI settings. Values
// come from an optional .env file and LATENTFMT_* environment variables,
// falling back to the defaults the nodes advertise.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/eleven-am/latentfmt/internal/duration"
	"github.com/eleven-am/latentfmt/internal/logging"
	"github.com/eleven-am/latentfmt/internal/preset"
)

// Widget bounds advertised to the host. The resolver does not re-check them.
const (
	MinDimension  = 256
	MaxDimension  = 2048
	DimensionStep = 8
	MinFrames     = 1
	MaxFrames     = 240
	MinBatch      = 1
	MaxBatch      = 4
)

// ColorMode controls ANSI styling of CLI output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

type Config struct {
	Preset       string
	CustomWidth  int // Default: 832.
	CustomHeight int // Default: 480.
	Frames       int // Default: 33.
	Duration     string
	CustomFrames int // Default: 72.
	BatchSize    int // Default: 1.

	LogLevel  string    // Default: "info".
	ColorMode ColorMode // Default: "auto".
}

func Default() Config {
	return Config{
		Preset:       preset.Default,
		CustomWidth:  832,
		CustomHeight: 480,
		Frames:       33,
		Duration:     duration.Default,
		CustomFrames: 72,
		BatchSize:    1,
		LogLevel:     "info",
		ColorMode:    ColorAuto,
	}
}

// Load reads path (default ".env") when it exists, then overlays
// LATENTFMT_* variables on Default. Variables already set in the process
// environment win over the file.
func Load(path string) (Config, error) {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err == nil {
		if err := godotenv.Load(path); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}

	def := Default()
	cfg := Config{
		Preset:       envStr("LATENTFMT_PRESET", def.Preset),
		CustomWidth:  envInt("LATENTFMT_CUSTOM_WIDTH", def.CustomWidth),
		CustomHeight: envInt("LATENTFMT_CUSTOM_HEIGHT", def.CustomHeight),
		Frames:       envInt("LATENTFMT_FRAMES", def.Frames),
		Duration:     envStr("LATENTFMT_DURATION", def.Duration),
		CustomFrames: envInt("LATENTFMT_CUSTOM_FRAMES", def.CustomFrames),
		BatchSize:    envInt("LATENTFMT_BATCH_SIZE", def.BatchSize),
		LogLevel:     envStr("LATENTFMT_LOG_LEVEL", def.LogLevel),
		ColorMode:    ColorMode(envStr("LATENTFMT_COLOR", string(def.ColorMode))),
	}
	return cfg, nil
}

// Validate checks values against the widget bounds and the combo options.
func (c *Config) Validate() error {
	if !contains(preset.Names(), c.Preset) {
		return fmt.Errorf("unknown preset %q", c.Preset)
	}
	if !contains(duration.Labels(), c.Duration) {
		return fmt.Errorf("unknown duration %q", c.Duration)
	}
	if err := checkDimension("custom width", c.CustomWidth); err != nil {
		return err
	}
	if err := checkDimension("custom height", c.CustomHeight); err != nil {
		return err
	}
	if c.Frames < MinFrames || c.Frames > MaxFrames {
		return fmt.Errorf("frames %d out of range [%d, %d]", c.Frames, MinFrames, MaxFrames)
	}
	if c.CustomFrames < MinFrames || c.CustomFrames > MaxFrames {
		return fmt.Errorf("custom frames %d out of range [%d, %d]", c.CustomFrames, MinFrames, MaxFrames)
	}
	if c.BatchSize < MinBatch || c.BatchSize > MaxBatch {
		return fmt.Errorf("batch size %d out of range [%d, %d]", c.BatchSize, MinBatch, MaxBatch)
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}

func checkDimension(name string, v int) error {
	if v < MinDimension || v > MaxDimension {
		return fmt.Errorf("%s %d out of range [%d, %d]", name, v, MinDimension, MaxDimension)
	}
	if v%DimensionStep != 0 {
		return fmt.Errorf("%s %d is not a multiple of %d", name, v, DimensionStep)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
