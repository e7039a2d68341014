//go:build gl

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"wavesurface/internal/glwave"
	"wavesurface/internal/metrics"
	"wavesurface/internal/wave"
)

// runViewer draws the surface in perspective with the GL renderer until the
// window is closed or ctx is cancelled. With the gl backend the active
// storage buffer is drawn in place; other backends upload a host snapshot
// every frame.
func runViewer(ctx context.Context, cfg runConfig, rec *metrics.Recorder, log *zap.Logger) error {
	host, err := newGLHost(true, windowWidth, windowHeight, windowTitle)
	if err != nil {
		return err
	}
	defer host.Close()

	dev, release, err := openDevice(cfg, host, log)
	if err != nil {
		return err
	}
	defer release()

	sim, err := wave.New(cfg.sim, dev, log)
	if err != nil {
		return fmt.Errorf("creating simulation: %w", err)
	}
	defer sim.Close()
	sess := newSession(sim, dev.Name(), rec, cfg.reportEvery, log)

	r, err := glwave.NewRenderer(sim.Grid())
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	defer r.Close()

	_, onGPU := dev.(*glwave.Device)
	log.Info("viewer started", zap.String("device", dev.Name()), zap.Bool("zero_copy", onGPU))

	lastTitle := time.Now()
	frames := 0
	for !host.window.ShouldClose() {
		if ctx.Err() != nil {
			break
		}
		if err := sess.step(cfg.stepsPerFrame); err != nil {
			return err
		}
		width, height := host.window.GetFramebufferSize()
		if onGPU {
			r.Draw(sim.ActiveBuffer(), width, height)
		} else {
			buf, err := sess.read()
			if err != nil {
				return err
			}
			r.DrawSamples(buf, width, height)
		}
		host.window.SwapBuffers()
		glfw.PollEvents()

		frames++
		if cfg.debug && time.Since(lastTitle) >= time.Second {
			fps := float64(frames) / time.Since(lastTitle).Seconds()
			host.window.SetTitle(fmt.Sprintf("%s | %.1f FPS | step %d | sim %.2f ms",
				windowTitle, fps, sim.Steps(), sess.lastStep.Seconds()*1000))
			frames = 0
			lastTitle = time.Now()
		}
	}
	log.Info("viewer closed", zap.Uint64("steps", sim.Steps()))
	return nil
}
