package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wavesurface/internal/wave"
)

// setFlags overrides command-line flags for one test and restores them
// afterwards.
func setFlags(t *testing.T, values map[string]string) {
	t.Helper()
	for name, value := range values {
		f := flag.Lookup(name)
		require.NotNil(t, f, "flag %s", name)
		old := f.Value.String()
		require.NoError(t, flag.Set(name, value))
		t.Cleanup(func() { _ = flag.Set(name, old) })
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, backendCPU, cfg.backend)
	assert.Equal(t, defaultPointsX, cfg.sim.Grid.PointsX)
	assert.Equal(t, defaultPointsY, cfg.sim.Grid.PointsY)
	assert.Equal(t, wave.EdgeClamp, cfg.sim.Edge)
	assert.Equal(t, wave.DefaultGroupSize, cfg.sim.GroupSize)
	assert.True(t, cfg.sim.AtRest)
	assert.Equal(t, defaultBumpRadius, cfg.sim.Bump.Radius)
	assert.Equal(t, defaultStepsPerFrame, cfg.stepsPerFrame)
	assert.False(t, cfg.headless)

	p, err := cfg.sim.Params()
	require.NoError(t, err)
	dx, _ := cfg.sim.Grid.Spacing()
	assert.InDelta(t, wave.ComputeWaveFactor(defaultSpeed, defaultTimeStep, dx), p.WaveFactor, 1e-9)
}

func TestLoadConfigOverrides(t *testing.T) {
	setFlags(t, map[string]string{
		"backend":         " OpenCL ",
		"points-x":        "16",
		"points-y":        "8",
		"wave-factor":     "0.2",
		"edge":            "fixed",
		"group-size":      "0",
		"steps-per-frame": "0",
		"headless":        "true",
	})
	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, backendOpenCL, cfg.backend)
	assert.Equal(t, 16, cfg.sim.Grid.PointsX)
	assert.Equal(t, 8, cfg.sim.Grid.PointsY)
	assert.InDelta(t, 0.2, cfg.sim.WaveFactor, 1e-6)
	assert.Equal(t, wave.EdgeFixed, cfg.sim.Edge)
	assert.Equal(t, wave.DefaultGroupSize, cfg.sim.GroupSize, "non-positive group size falls back")
	assert.Equal(t, 1, cfg.stepsPerFrame)
	assert.True(t, cfg.headless)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		target error
	}{
		{"tiny grid", map[string]string{"points-x": "1"}, wave.ErrInvalidGrid},
		{"negative size", map[string]string{"size-y": "-1"}, wave.ErrInvalidGrid},
		{"bad edge", map[string]string{"edge": "wrap"}, wave.ErrUnknownEdgePolicy},
		{"unstable", map[string]string{"wave-factor": "0.75"}, wave.ErrInvalidWaveFactor},
		{"damping", map[string]string{"damping": "1.5"}, wave.ErrInvalidDamping},
		{"inexact", map[string]string{"points-x": "33", "exact-dispatch": "true"}, wave.ErrWorkGroupMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setFlags(t, tt.values)
			_, err := loadConfig()
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestLoadConfigUnknownBackend(t *testing.T) {
	setFlags(t, map[string]string{"backend": "vulkan"})
	_, err := loadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown backend "vulkan"`)
}
