package vktut

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the window and renderer settings the example applications
// share. Values come from the environment, optionally seeded from a .env
// file.
type Config struct {
	// Width and Height are the initial window size in screen coordinates.
	Width  int
	Height int

	// Title is the window title.
	Title string

	// ShaderDir is the directory SPIR-V binaries are loaded from.
	ShaderDir string

	// Validation enables the Khronos validation layer and debug reporting.
	Validation bool

	// FramesInFlight caps how many frames the CPU records ahead of the GPU.
	FramesInFlight int
}

// DefaultConfig returns the settings used when the environment specifies
// nothing.
func DefaultConfig(title string) Config {
	return Config{
		Width:          800,
		Height:         600,
		Title:          title,
		ShaderDir:      "shaders",
		Validation:     false,
		FramesInFlight: MaxFramesInFlight,
	}
}

// LoadConfig builds a Config from the environment. A .env file in the
// working directory is loaded first when present; variables already set in
// the environment win.
//
// Recognized variables: VKTUT_WIDTH, VKTUT_HEIGHT, VKTUT_TITLE,
// VKTUT_SHADER_DIR, VKTUT_VALIDATION, VKTUT_FRAMES_IN_FLIGHT.
func LoadConfig(title string) (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	cfg := DefaultConfig(title)

	var err error
	if cfg.Width, err = intFromEnv("VKTUT_WIDTH", cfg.Width); err != nil {
		return Config{}, err
	}
	if cfg.Height, err = intFromEnv("VKTUT_HEIGHT", cfg.Height); err != nil {
		return Config{}, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Config{}, fmt.Errorf("window size %dx%d is not positive", cfg.Width, cfg.Height)
	}

	if v := os.Getenv("VKTUT_TITLE"); v != "" {
		cfg.Title = v
	}
	if v := os.Getenv("VKTUT_SHADER_DIR"); v != "" {
		cfg.ShaderDir = v
	}

	if cfg.Validation, err = boolFromEnv("VKTUT_VALIDATION", cfg.Validation); err != nil {
		return Config{}, err
	}

	if cfg.FramesInFlight, err = intFromEnv("VKTUT_FRAMES_IN_FLIGHT", cfg.FramesInFlight); err != nil {
		return Config{}, err
	}
	if cfg.FramesInFlight < 1 {
		return Config{}, fmt.Errorf("frames in flight must be at least 1, got %d", cfg.FramesInFlight)
	}

	logrus.WithFields(logrus.Fields{
		"size":       fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"validation": cfg.Validation,
		"shaders":    cfg.ShaderDir,
	}).Debug("loaded configuration")

	return cfg, nil
}

func intFromEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q: %w", key, v, err)
	}
	return n, nil
}

func boolFromEnv(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parsing %s=%q: %w", key, v, err)
	}
	return b, nil
}
