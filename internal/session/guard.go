// Package session holds the bookkeeping shared by the interactive study
// sessions: at most one model call in flight, and results applied only if
// nothing has superseded them since the call began.
package session

import (
	"errors"
	"sync"
)

// ErrBusy is returned by Begin while another call is in flight.
var ErrBusy = errors.New("a request is already in progress")

// Ticket identifies one in-flight call.
type Ticket struct {
	epoch uint64
}

// Guard tracks the in-flight call of a single session.
// The zero value is ready to use.
type Guard struct {
	mu       sync.Mutex
	epoch    uint64
	inFlight bool
}

// Begin claims the session for a new call.
func (g *Guard) Begin() (Ticket, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.inFlight {
		return Ticket{}, ErrBusy
	}
	g.epoch++
	g.inFlight = true
	return Ticket{epoch: g.epoch}, nil
}

// Finish releases the call and reports whether its result is still current.
// A stale ticket leaves any newer call untouched, and a ticket is current
// for one Finish only.
func (g *Guard) Finish(t Ticket) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.inFlight || t.epoch == 0 || t.epoch != g.epoch {
		return false
	}
	g.inFlight = false
	return true
}

// Invalidate makes every outstanding ticket stale and frees the session.
func (g *Guard) Invalidate() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.epoch++
	g.inFlight = false
}

// Busy reports whether a call is in flight.
func (g *Guard) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inFlight
}
