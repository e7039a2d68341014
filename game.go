//go:build !gl

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"wavesurface/internal/glwave"
	"wavesurface/internal/metrics"
	"wavesurface/internal/wave"
)

// Game presents a running session as a lit top-down image, one pixel per
// grid sample.
type Game struct {
	ctx           context.Context
	sess          *session
	grid          wave.Grid
	stepsPerFrame int
	debug         bool

	eye             mgl32.Vec3
	pixels          []byte
	lastSimDuration time.Duration
}

// newGame wires a Game to sess.
func newGame(ctx context.Context, sess *session, stepsPerFrame int, debug bool) *Game {
	grid := sess.sim.Grid()
	eye, _ := glwave.Camera(grid)
	return &Game{
		ctx:           ctx,
		sess:          sess,
		grid:          grid,
		stepsPerFrame: stepsPerFrame,
		debug:         debug,
		eye:           eye,
		pixels:        make([]byte, grid.Len()*4),
	}
}

// Update advances the simulation by stepsPerFrame steps.
func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	simStart := time.Now()
	if err := g.sess.step(g.stepsPerFrame); err != nil {
		return err
	}
	g.lastSimDuration = time.Since(simStart)
	return nil
}

// runViewer opens the device and shows the surface in an ebiten window until
// it is closed or ctx is cancelled.
func runViewer(ctx context.Context, cfg runConfig, rec *metrics.Recorder, log *zap.Logger) error {
	dev, release, err := openDevice(cfg, nil, log)
	if err != nil {
		return err
	}
	defer release()

	sim, err := wave.New(cfg.sim, dev, log)
	if err != nil {
		return fmt.Errorf("creating simulation: %w", err)
	}
	defer sim.Close()

	g := newGame(ctx, newSession(sim, dev.Name(), rec, cfg.reportEvery, log), cfg.stepsPerFrame, cfg.debug)
	scale := windowWidth / cfg.sim.Grid.PointsX
	if scale < 1 {
		scale = 1
	}
	ebiten.SetWindowSize(cfg.sim.Grid.PointsX*scale, cfg.sim.Grid.PointsY*scale)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	log.Info("viewer started", zap.String("device", dev.Name()), zap.Int("steps_per_frame", cfg.stepsPerFrame))

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	log.Info("viewer closed", zap.Uint64("steps", sim.Steps()))
	return nil
}
