package wave

import (
	"fmt"
	"strings"
)

// MaxStableWaveFactor is the leapfrog stability limit of the 5-point
// Laplacian in two dimensions.
const MaxStableWaveFactor = 0.5

// EdgePolicy selects how the integrator treats boundary samples.
type EdgePolicy int32

const (
	// EdgeClamp integrates boundary samples with neighbour indices clamped
	// into the grid, which reflects waves off the edges.
	EdgeClamp EdgePolicy = iota
	// EdgeFixed holds boundary samples at their current height.
	EdgeFixed
)

func (p EdgePolicy) String() string {
	switch p {
	case EdgeClamp:
		return "clamp"
	case EdgeFixed:
		return "fixed"
	}
	return fmt.Sprintf("EdgePolicy(%d)", int32(p))
}

// ParseEdgePolicy maps a flag value to an EdgePolicy.
func ParseEdgePolicy(s string) (EdgePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "clamp", "reflect", "":
		return EdgeClamp, nil
	case "fixed", "dirichlet":
		return EdgeFixed, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEdgePolicy, s)
}

// ComputeWaveFactor derives the integrator coefficient from a propagation
// speed, a fixed timestep and the grid spacing along X.
func ComputeWaveFactor(speed, dt, dx float32) float32 {
	return speed * speed * dt * dt / dx
}

// Params holds the per-grid constants every kernel dispatch receives.
type Params struct {
	WaveFactor float32
	Damping    float32
	Edge       EdgePolicy

	PointsX, PointsY int
	// DX and DY are the sample spacing used by the normal estimator.
	DX, DY float32

	// GroupSize is the edge length of one square work-group; GroupsX and
	// GroupsY are the dispatch counts covering the grid.
	GroupSize        int
	GroupsX, GroupsY int
}

func (p Params) validate() error {
	if !(p.WaveFactor > 0) || p.WaveFactor > MaxStableWaveFactor {
		return fmt.Errorf("%w: %g not in (0, %g]", ErrInvalidWaveFactor, p.WaveFactor, MaxStableWaveFactor)
	}
	if !(p.Damping > 0) || p.Damping > 1 {
		return fmt.Errorf("%w: got %g", ErrInvalidDamping, p.Damping)
	}
	if p.Edge != EdgeClamp && p.Edge != EdgeFixed {
		return fmt.Errorf("%w: %d", ErrUnknownEdgePolicy, p.Edge)
	}
	return nil
}
