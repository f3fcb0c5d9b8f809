package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_OneCallInFlight(t *testing.T) {
	var g Guard

	ticket, err := g.Begin()
	require.NoError(t, err)
	assert.True(t, g.Busy())

	_, err = g.Begin()
	assert.ErrorIs(t, err, ErrBusy)

	assert.True(t, g.Finish(ticket))
	assert.False(t, g.Busy())

	_, err = g.Begin()
	assert.NoError(t, err)
}

func TestGuard_InvalidateMakesTicketStale(t *testing.T) {
	var g Guard

	stale, err := g.Begin()
	require.NoError(t, err)

	g.Invalidate()
	assert.False(t, g.Busy())

	current, err := g.Begin()
	require.NoError(t, err)

	assert.False(t, g.Finish(stale), "stale result must be dropped")
	assert.True(t, g.Busy(), "stale finish must not release the newer call")
	assert.True(t, g.Finish(current))
}

func TestGuard_ZeroTicketIsNeverCurrent(t *testing.T) {
	var g Guard
	assert.False(t, g.Finish(Ticket{}))
}

func TestGuard_FinishTwice(t *testing.T) {
	var g Guard
	ticket, err := g.Begin()
	require.NoError(t, err)

	assert.True(t, g.Finish(ticket))
	assert.False(t, g.Finish(ticket), "a result is applied at most once")
	assert.False(t, g.Busy())

	next, err := g.Begin()
	require.NoError(t, err)
	assert.False(t, g.Finish(ticket), "an old ticket never finishes a newer call")
	assert.True(t, g.Busy())
	assert.True(t, g.Finish(next))
}
