package main

import (
	"flag"

	"wavesurface/internal/wave"
)

// Command-line flags. loadConfig folds them into a runConfig after
// flag.Parse.
var (
	// backendFlag selects the device the kernels run on.
	backendFlag = flag.String("backend", backendCPU, "compute backend: cpu, opencl (build tag opencl) or gl (build tag gl)")
	workersFlag = flag.Int("workers", 0, "cpu backend worker goroutines (0 = one per CPU)")

	pointsXFlag = flag.Int("points-x", defaultPointsX, "grid samples along X")
	pointsYFlag = flag.Int("points-y", defaultPointsY, "grid samples along Y")
	sizeXFlag   = flag.Float64("size-x", defaultSizeX, "world extent along X")
	sizeYFlag   = flag.Float64("size-y", defaultSizeY, "world extent along Y")

	speedFlag      = flag.Float64("speed", defaultSpeed, "wave propagation speed used to derive the wave factor")
	timeStepFlag   = flag.Float64("dt", defaultTimeStep, "fixed simulation timestep used to derive the wave factor")
	waveFactorFlag = flag.Float64("wave-factor", 0, "integrator coefficient; overrides -speed and -dt when non-zero (stable up to 0.5)")
	dampingFlag    = flag.Float64("damping", 1, "multiplier applied to each new height, in (0, 1]")
	edgeFlag       = flag.String("edge", "clamp", "boundary policy: clamp (reflecting) or fixed")

	// groupSizeFlag sets the square work-group edge length shared by every backend.
	groupSizeFlag     = flag.Int("group-size", wave.DefaultGroupSize, "work-group edge length")
	exactDispatchFlag = flag.Bool("exact-dispatch", false, "reject grids that are not a whole number of work-groups")

	bumpRadiusFlag = flag.Int("bump-radius", defaultBumpRadius, "radius of the initial raised-cosine bump, in samples")
	bumpHeightFlag = flag.Float64("bump-height", defaultBumpHeight, "peak height of the initial bump")
	atRestFlag     = flag.Bool("at-rest", true, "start the bump with zero velocity")

	headlessFlag      = flag.Bool("headless", false, "run without a window and log field diagnostics")
	stepsFlag         = flag.Int("steps", defaultHeadlessSteps, "steps to run in headless mode (0 = until interrupted)")
	stepsPerFrameFlag = flag.Int("steps-per-frame", defaultStepsPerFrame, "simulation steps per rendered frame")
	reportEveryFlag   = flag.Int("report-every", defaultReportEvery, "log field diagnostics every N steps (0 disables)")

	metricsAddrFlag = flag.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	logLevelFlag    = flag.String("log-level", "info", "log level: debug, info, warn or error")

	// debugFlag enables the FPS and simulation overlay.
	debugFlag      = flag.Bool("debug", false, "show FPS and simulation overlay and log in development mode")
	cpuProfileFlag = flag.String("cpuprofile", "", "write a CPU profile to this file")
)
