package wave

import "fmt"

// NumBuffers is the size of the rotating buffer set.
const NumBuffers = 3

// Role is the logical part a physical buffer plays during one step. The
// values double as binding slots relative to the target index.
type Role int

const (
	RoleTarget   Role = 0
	RolePrevious Role = 1
	RoleCurrent  Role = 2
)

func (r Role) String() string {
	switch r {
	case RoleTarget:
		return "target"
	case RolePrevious:
		return "previous"
	case RoleCurrent:
		return "current"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// Scheduler tracks which of the three buffers is written next. The buffer
// written one step ago is current and the one written two steps ago is
// previous, so each advance turns target into current, current into previous
// and previous into the next target without copying.
type Scheduler struct {
	target int
}

// Target returns the physical index the next step writes.
func (s *Scheduler) Target() int { return s.target }

// Slot returns the physical index holding role r.
func (s *Scheduler) Slot(r Role) int { return (s.target + int(r)) % NumBuffers }

// Active returns the physical index of the most recently completed write.
func (s *Scheduler) Active() int { return s.Slot(RoleCurrent) }

// Advance rotates the roles. Call it exactly once per completed step.
func (s *Scheduler) Advance() { s.target = (s.target + 1) % NumBuffers }
