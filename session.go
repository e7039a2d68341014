package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"wavesurface/internal/metrics"
	"wavesurface/internal/wave"
)

// session drives one Simulation for a front end, recording metrics and
// logging periodic field diagnostics.
type session struct {
	sim         *wave.Simulation
	rec         *metrics.Recorder
	log         *zap.Logger
	reportEvery int

	lastStep time.Duration
	snapshot []float32
}

func newSession(sim *wave.Simulation, device string, rec *metrics.Recorder, reportEvery int, log *zap.Logger) *session {
	if rec == nil {
		rec = metrics.New()
	}
	if log == nil {
		log = zap.NewNop()
	}
	rec.SetSession(device, fmt.Sprintf("%dx%d", sim.Grid().PointsX, sim.Grid().PointsY))
	return &session{
		sim:         sim,
		rec:         rec,
		log:         log,
		reportEvery: reportEvery,
		snapshot:    make([]float32, sim.Grid().Floats()),
	}
}

// step advances the simulation n times, reporting whenever the step count
// crosses a multiple of reportEvery.
func (s *session) step(n int) error {
	var total time.Duration
	for i := 0; i < n; i++ {
		start := time.Now()
		err := s.sim.Step()
		elapsed := time.Since(start)
		s.rec.ObserveStep(elapsed, err)
		if err != nil {
			return err
		}
		total += elapsed
		if s.reportEvery > 0 && s.sim.Steps()%uint64(s.reportEvery) == 0 {
			if _, err := s.report(); err != nil {
				return err
			}
		}
	}
	s.lastStep = total
	return nil
}

// read copies the active buffer into the session snapshot and returns it.
func (s *session) read() ([]float32, error) {
	if err := s.sim.Read(s.snapshot); err != nil {
		return nil, fmt.Errorf("reading active buffer: %w", err)
	}
	return s.snapshot, nil
}

// report logs and records the statistics of the active buffer.
func (s *session) report() (wave.FieldStats, error) {
	buf, err := s.read()
	if err != nil {
		return wave.FieldStats{}, err
	}
	st := wave.Stats(s.sim.Grid(), buf)
	s.rec.ObserveField(st.Energy, st.MaxAbs)
	s.log.Info("wave field",
		zap.Uint64("step", s.sim.Steps()),
		zap.Float64("energy", st.Energy),
		zap.Float32("max_abs", st.MaxAbs),
		zap.Float32("max_abs_edge", st.MaxAbsEdge),
		zap.String("checksum", fmt.Sprintf("%016x", st.Checksum)),
	)
	if st.NaN {
		s.log.Warn("wave field contains NaN", zap.Uint64("step", s.sim.Steps()))
	}
	return st, nil
}
