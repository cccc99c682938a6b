package vktut

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("triangle")
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, "triangle", cfg.Title)
	assert.Equal(t, "shaders", cfg.ShaderDir)
	assert.False(t, cfg.Validation)
	assert.Equal(t, MaxFramesInFlight, cfg.FramesInFlight)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("VKTUT_WIDTH", "1280")
	t.Setenv("VKTUT_HEIGHT", "720")
	t.Setenv("VKTUT_TITLE", "windowed")
	t.Setenv("VKTUT_SHADER_DIR", "assets/spv")
	t.Setenv("VKTUT_VALIDATION", "true")
	t.Setenv("VKTUT_FRAMES_IN_FLIGHT", "3")

	cfg, err := LoadConfig("ignored default")
	require.NoError(t, err)

	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, 720, cfg.Height)
	assert.Equal(t, "windowed", cfg.Title)
	assert.Equal(t, "assets/spv", cfg.ShaderDir)
	assert.True(t, cfg.Validation)
	assert.Equal(t, 3, cfg.FramesInFlight)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("VKTUT_WIDTH", "not-a-number")
	_, err := LoadConfig("x")
	assert.Error(t, err)
}

func TestLoadConfigRejectsZeroSize(t *testing.T) {
	t.Setenv("VKTUT_WIDTH", "0")
	_, err := LoadConfig("x")
	assert.Error(t, err)
}

func TestLoadConfigRejectsZeroFramesInFlight(t *testing.T) {
	t.Setenv("VKTUT_FRAMES_IN_FLIGHT", "0")
	_, err := LoadConfig("x")
	assert.Error(t, err)
}
