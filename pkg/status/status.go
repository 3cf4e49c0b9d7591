package status

import (
	"sync/atomic"
	"time"
)

const (
	// CheckingText is shown until the health check settles.
	CheckingText = "checking..."
	// ConnectedPrefix precedes the backend message on success.
	ConnectedPrefix = "Connected: "
	// UnavailableText is shown for every failed health check.
	UnavailableText = "Backend not available"
)

// State is the outcome of the health check as seen by the page.
type State string

const (
	StateChecking    State = "checking"
	StateConnected   State = "connected"
	StateUnavailable State = "unavailable"
)

// Snapshot is an immutable view of the status cell.
type Snapshot struct {
	State     State
	Message   string
	CheckedAt time.Time
}

// Text returns the user-visible status string.
func (s Snapshot) Text() string {
	switch s.State {
	case StateConnected:
		return ConnectedPrefix + s.Message
	case StateUnavailable:
		return UnavailableText
	default:
		return CheckingText
	}
}

// Settled reports whether the health check has completed.
func (s Snapshot) Settled() bool {
	return s.State != StateChecking
}

// Cell holds the backend status. It starts in the checking state and
// accepts exactly one transition; later writes are ignored.
type Cell struct {
	current atomic.Pointer[Snapshot]
	initial *Snapshot
	now     func() time.Time
}

// NewCell returns a cell in the checking state.
func NewCell() *Cell {
	return newCellWithClock(time.Now)
}

func newCellWithClock(now func() time.Time) *Cell {
	initial := &Snapshot{State: StateChecking}
	cell := &Cell{initial: initial, now: now}
	cell.current.Store(initial)
	return cell
}

// Load returns the current snapshot.
func (c *Cell) Load() Snapshot {
	return *c.current.Load()
}

// Text returns the current user-visible status string.
func (c *Cell) Text() string {
	return c.Load().Text()
}

// Connect records a successful health check. It returns false if the cell
// was already settled.
func (c *Cell) Connect(message string) bool {
	return c.settle(&Snapshot{State: StateConnected, Message: message, CheckedAt: c.now()})
}

// Fail records a failed health check. It returns false if the cell was
// already settled.
func (c *Cell) Fail() bool {
	return c.settle(&Snapshot{State: StateUnavailable, CheckedAt: c.now()})
}

func (c *Cell) settle(next *Snapshot) bool {
	return c.current.CompareAndSwap(c.initial, next)
}
