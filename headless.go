package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"wavesurface/internal/metrics"
	"wavesurface/internal/wave"
)

// runHeadless steps the simulation without a window until cfg.steps have
// run or ctx is cancelled, then logs the final field.
func runHeadless(ctx context.Context, cfg runConfig, rec *metrics.Recorder, log *zap.Logger) (wave.FieldStats, error) {
	dev, release, err := openDevice(cfg, nil, log)
	if err != nil {
		return wave.FieldStats{}, err
	}
	defer release()

	sim, err := wave.New(cfg.sim, dev, log)
	if err != nil {
		return wave.FieldStats{}, fmt.Errorf("creating simulation: %w", err)
	}
	defer sim.Close()
	sess := newSession(sim, dev.Name(), rec, cfg.reportEvery, log)

	initial, err := sess.report()
	if err != nil {
		return wave.FieldStats{}, err
	}
	log.Info("running headless", zap.Int("steps", cfg.steps), zap.Float64("initial_energy", initial.Energy))

	batch := cfg.stepsPerFrame
	for cfg.steps == 0 || int(sim.Steps()) < cfg.steps {
		if err := ctx.Err(); err != nil {
			if errors.Is(err, context.Canceled) {
				log.Info("interrupted", zap.Uint64("step", sim.Steps()))
				break
			}
			return wave.FieldStats{}, err
		}
		n := batch
		if cfg.steps > 0 && int(sim.Steps())+n > cfg.steps {
			n = cfg.steps - int(sim.Steps())
		}
		if err := sess.step(n); err != nil {
			return wave.FieldStats{}, err
		}
	}

	final, err := sess.report()
	if err != nil {
		return wave.FieldStats{}, err
	}
	ratio := 0.0
	if initial.Energy > 0 {
		ratio = final.Energy / initial.Energy
	}
	log.Info("headless run complete",
		zap.Uint64("steps", sim.Steps()),
		zap.Float64("energy_ratio", ratio),
		zap.String("checksum", fmt.Sprintf("%016x", final.Checksum)),
	)
	return final, nil
}
