package main

import (
	"fmt"
	"strings"

	"wavesurface/internal/wave"
)

// Simulation and viewer defaults. The grid is 100x100 samples over a 5x5
// world, advanced with a propagation speed of 10 at a fixed 0.0009 timestep.
const (
	defaultPointsX       = 100
	defaultPointsY       = 100
	defaultSizeX         = 5.0
	defaultSizeY         = 5.0
	defaultSpeed         = 10.0
	defaultTimeStep      = 0.0009
	defaultBumpRadius    = 9
	defaultBumpHeight    = 1.0
	defaultStepsPerFrame = 4
	defaultHeadlessSteps = 1000
	defaultReportEvery   = 250
	windowWidth          = 800
	windowHeight         = 800
	windowTitle          = "Wave Surface"
)

// runConfig is everything main needs, resolved from flags.
type runConfig struct {
	backend string
	workers int
	sim     wave.Config

	headless      bool
	steps         int
	stepsPerFrame int
	reportEvery   int

	metricsAddr string
	logLevel    string
	debug       bool
	cpuProfile  string
}

// loadConfig folds the parsed flags into a runConfig and validates it.
func loadConfig() (runConfig, error) {
	grid, err := wave.NewGrid(*pointsXFlag, *pointsYFlag, float32(*sizeXFlag), float32(*sizeYFlag))
	if err != nil {
		return runConfig{}, err
	}
	edge, err := wave.ParseEdgePolicy(*edgeFlag)
	if err != nil {
		return runConfig{}, err
	}
	backend := strings.ToLower(strings.TrimSpace(*backendFlag))
	switch backend {
	case backendCPU, backendOpenCL, backendGL:
	default:
		return runConfig{}, fmt.Errorf("unknown backend %q (want %s, %s or %s)", *backendFlag, backendCPU, backendOpenCL, backendGL)
	}
	groupSize := *groupSizeFlag
	if groupSize <= 0 {
		groupSize = wave.DefaultGroupSize
	}
	stepsPerFrame := *stepsPerFrameFlag
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}

	cfg := runConfig{
		backend: backend,
		workers: *workersFlag,
		sim: wave.Config{
			Grid:          grid,
			WaveFactor:    float32(*waveFactorFlag),
			Speed:         float32(*speedFlag),
			TimeStep:      float32(*timeStepFlag),
			Damping:       float32(*dampingFlag),
			Edge:          edge,
			GroupSize:     groupSize,
			ExactDispatch: *exactDispatchFlag,
			Bump:          wave.Bump{Radius: *bumpRadiusFlag, Height: float32(*bumpHeightFlag)},
			AtRest:        *atRestFlag,
		},
		headless:      *headlessFlag,
		steps:         *stepsFlag,
		stepsPerFrame: stepsPerFrame,
		reportEvery:   *reportEveryFlag,
		metricsAddr:   *metricsAddrFlag,
		logLevel:      *logLevelFlag,
		debug:         *debugFlag,
		cpuProfile:    *cpuProfileFlag,
	}
	// Surface configuration errors before any device is opened.
	if _, err := cfg.sim.Params(); err != nil {
		return runConfig{}, err
	}
	return cfg, nil
}
