package wave

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Config describes one simulation session.
type Config struct {
	Grid Grid

	// WaveFactor overrides the coefficient derived from Speed and TimeStep
	// when non-zero.
	WaveFactor float32
	Speed      float32
	TimeStep   float32

	// Damping multiplies each new height; zero means no damping.
	Damping float32
	Edge    EdgePolicy

	// GroupSize is the work-group edge length; zero uses DefaultGroupSize.
	GroupSize     int
	ExactDispatch bool

	// Heights, when set, replaces Bump as the initial surface.
	Heights []float32
	Bump    Bump
	// AtRest seeds the previous buffer too, so the surface starts with zero
	// velocity.
	AtRest bool
}

// Params resolves the kernel constants for c.
func (c Config) Params() (Params, error) {
	if _, err := NewGrid(c.Grid.PointsX, c.Grid.PointsY, c.Grid.SizeX, c.Grid.SizeY); err != nil {
		return Params{}, err
	}
	dx, dy := c.Grid.Spacing()
	wf := c.WaveFactor
	if wf == 0 {
		wf = ComputeWaveFactor(c.Speed, c.TimeStep, dx)
	}
	damp := c.Damping
	if damp == 0 {
		damp = 1
	}
	size := c.GroupSize
	if size == 0 {
		size = DefaultGroupSize
	}
	gx, gy, err := WorkGroups(c.Grid, size, c.ExactDispatch)
	if err != nil {
		return Params{}, err
	}
	p := Params{
		WaveFactor: wf,
		Damping:    damp,
		Edge:       c.Edge,
		PointsX:    c.Grid.PointsX,
		PointsY:    c.Grid.PointsY,
		DX:         dx,
		DY:         dy,
		GroupSize:  size,
		GroupsX:    gx,
		GroupsY:    gy,
	}
	if err := p.validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Simulation owns the three rotating buffers on a Device and advances them
// one step at a time. It is driven from a single goroutine.
type Simulation struct {
	grid    Grid
	params  Params
	dev     Device
	log     *zap.Logger
	buffers [NumBuffers]BufferHandle
	sched   Scheduler

	steps  uint64
	err    error
	closed bool
}

// New allocates and seeds the buffer set on dev. The device stays owned by the
// caller; the buffers belong to the Simulation until Close.
func New(cfg Config, dev Device, log *zap.Logger) (*Simulation, error) {
	if log == nil {
		log = zap.NewNop()
	}
	p, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	heights := cfg.Heights
	if heights == nil {
		heights = cfg.Bump.Heights(cfg.Grid)
	}
	flat := FlatLayout(cfg.Grid)
	seeded := make([]float32, len(flat))
	copy(seeded, flat)
	if err := applyHeights(seeded, heights); err != nil {
		return nil, err
	}

	s := &Simulation{grid: cfg.Grid, params: p, dev: dev, log: log}
	initial := [NumBuffers][]float32{flat, flat, flat}
	initial[s.sched.Slot(RoleCurrent)] = seeded
	if cfg.AtRest {
		initial[s.sched.Slot(RolePrevious)] = seeded
	}
	for i, data := range initial {
		h, err := dev.Allocate(data)
		if err != nil {
			s.release()
			return nil, fmt.Errorf("allocating wave buffer %d: %w", i, err)
		}
		s.buffers[i] = h
	}

	// Light the seed surface so a frame drawn before the first step has normals.
	if err := dev.EstimateNormals(p, s.ActiveBuffer()); err != nil {
		s.release()
		return nil, fmt.Errorf("estimating seed normals: %w", err)
	}
	if err := dev.Barrier(); err != nil {
		s.release()
		return nil, fmt.Errorf("seed barrier: %w", err)
	}

	log.Info("wave simulation ready",
		zap.Stringer("grid", cfg.Grid),
		zap.String("device", dev.Name()),
		zap.Float32("wave_factor", p.WaveFactor),
		zap.Float32("damping", p.Damping),
		zap.Stringer("edge", p.Edge),
		zap.Int("groups_x", p.GroupsX),
		zap.Int("groups_y", p.GroupsY),
	)
	return s, nil
}

// Step advances the height field once: integrate into the target buffer,
// barrier, estimate its normals, barrier, then rotate roles. A failure leaves
// the roles untouched and poisons the session.
func (s *Simulation) Step() error {
	if s.closed {
		return ErrSimulationClosed
	}
	if s.err != nil {
		return fmt.Errorf("%w: %w", ErrSimulationFailed, s.err)
	}
	target := s.buffers[s.sched.Slot(RoleTarget)]
	current := s.buffers[s.sched.Slot(RoleCurrent)]
	previous := s.buffers[s.sched.Slot(RolePrevious)]

	if err := s.dev.Integrate(s.params, target, current, previous); err != nil {
		return s.fail("integrating", err)
	}
	if err := s.dev.Barrier(); err != nil {
		return s.fail("integrator barrier", err)
	}
	if err := s.dev.EstimateNormals(s.params, target); err != nil {
		return s.fail("estimating normals", err)
	}
	if err := s.dev.Barrier(); err != nil {
		return s.fail("normal barrier", err)
	}
	s.sched.Advance()
	s.steps++
	return nil
}

// StepN runs n steps, checking ctx between steps. A step in progress is never
// interrupted.
func (s *Simulation) StepN(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulation) fail(stage string, err error) error {
	s.err = fmt.Errorf("%s at step %d: %w", stage, s.steps, err)
	s.log.Error("wave step failed", zap.Uint64("step", s.steps), zap.String("stage", stage), zap.Error(err))
	return s.err
}

// ActiveBuffer returns the buffer holding the most recently completed write.
// Consumers may read it for one frame; it becomes a write target two steps
// later.
func (s *Simulation) ActiveBuffer() BufferHandle { return s.buffers[s.sched.Active()] }

// Slots returns the physical indices currently holding the target, previous
// and current roles.
func (s *Simulation) Slots() (target, previous, current int) {
	return s.sched.Slot(RoleTarget), s.sched.Slot(RolePrevious), s.sched.Slot(RoleCurrent)
}

// Buffer returns the handle at physical index i.
func (s *Simulation) Buffer(i int) BufferHandle { return s.buffers[i] }

// Read copies the active buffer into dst, which must hold Grid().Floats()
// values.
func (s *Simulation) Read(dst []float32) error {
	if s.closed {
		return ErrSimulationClosed
	}
	return s.dev.Read(s.ActiveBuffer(), dst)
}

// WaveFactor returns the integrator coefficient in use.
func (s *Simulation) WaveFactor() float32 { return s.params.WaveFactor }

// Grid returns the simulated grid shape.
func (s *Simulation) Grid() Grid { return s.grid }

// Params returns the resolved kernel constants.
func (s *Simulation) Params() Params { return s.params }

// Steps returns the number of completed steps.
func (s *Simulation) Steps() uint64 { return s.steps }

// Err returns the error that poisoned the session, if any.
func (s *Simulation) Err() error { return s.err }

// Close releases the buffer set. The device itself is left open.
func (s *Simulation) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.release()
	return nil
}

func (s *Simulation) release() {
	for i, h := range s.buffers {
		if h != 0 {
			s.dev.Release(h)
			s.buffers[i] = 0
		}
	}
}
