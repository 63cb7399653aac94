// Package loop drives game sessions from wall-clock time.
package loop

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomz197/barco/internal/game"
)

// ErrNotStarted is returned by Tick before the first Start.
var ErrNotStarted = errors.New("driver not started")

// SessionFactory creates a fresh session for a new game.
type SessionFactory func() (*game.Session, error)

// Driver converts frame timestamps into session updates. It owns the
// current session and replaces it wholesale on restart.
type Driver struct {
	newSession SessionFactory
	session    *game.Session
	last       time.Time
	maxDelta   time.Duration
}

// NewDriver creates a driver. Deltas larger than maxDelta are clamped;
// zero disables clamping.
func NewDriver(factory SessionFactory, maxDelta time.Duration) *Driver {
	return &Driver{
		newSession: factory,
		maxDelta:   maxDelta,
	}
}

// Start begins the first game with now as the time baseline.
func (d *Driver) Start(now time.Time) error {
	return d.Restart(now)
}

// Restart discards the current session, creates a new one and resets the
// time baseline to now.
func (d *Driver) Restart(now time.Time) error {
	s, err := d.newSession()
	if err != nil {
		return fmt.Errorf("new session: %w", err)
	}
	d.session = s
	d.last = now
	return nil
}

// Tick updates the session with the time elapsed since the previous tick.
// Once the session is over the clock keeps moving but nothing is updated.
func (d *Driver) Tick(now time.Time) error {
	if d.session == nil {
		return ErrNotStarted
	}

	delta := now.Sub(d.last)
	d.last = now

	if d.session.State() != game.Active {
		return nil
	}
	if d.maxDelta > 0 && delta > d.maxDelta {
		delta = d.maxDelta
	}
	return d.session.Update(delta.Seconds())
}

// Snapshot returns the render state of the current session. ok is false
// before Start.
func (d *Driver) Snapshot() (snap game.Snapshot, ok bool) {
	if d.session == nil {
		return game.Snapshot{}, false
	}
	return d.session.Snapshot(), true
}

// Session returns the current session, or nil before Start.
func (d *Driver) Session() *game.Session {
	return d.session
}
