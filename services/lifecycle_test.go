package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/restopos/ticket-engine/models"
)

func TestNextStatusChain(t *testing.T) {
	next, ok := NextStatus(models.StatusPending)
	assert.True(t, ok)
	assert.Equal(t, models.StatusPreparing, next)

	next, ok = NextStatus(models.StatusPreparing)
	assert.True(t, ok)
	assert.Equal(t, models.StatusReady, next)

	next, ok = NextStatus(models.StatusReady)
	assert.True(t, ok)
	assert.Equal(t, models.StatusServed, next)

	_, ok = NextStatus(models.StatusServed)
	assert.False(t, ok)

	_, ok = NextStatus(models.StatusCancelled)
	assert.False(t, ok)
}

func TestCheckTransitionTable(t *testing.T) {
	statuses := []models.OrderStatus{
		models.StatusPending,
		models.StatusPreparing,
		models.StatusReady,
		models.StatusServed,
		models.StatusCancelled,
	}

	legal := map[models.OrderStatus]models.OrderStatus{
		models.StatusPending:   models.StatusPreparing,
		models.StatusPreparing: models.StatusReady,
		models.StatusReady:     models.StatusServed,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			err := CheckTransition(from, to, false)
			if legal[from] == to && to != "" {
				assert.NoError(t, err, "%s -> %s should be legal", from, to)
			} else if to == models.StatusCancelled && !IsTerminalStatus(from) {
				assert.NoError(t, err, "%s -> cancelled should be legal", from)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s should be rejected", from, to)
			}
		}
	}
}

func TestCheckTransitionNoSkipping(t *testing.T) {
	assert.ErrorIs(t, CheckTransition(models.StatusPending, models.StatusServed, false), ErrInvalidTransition)
	assert.ErrorIs(t, CheckTransition(models.StatusPending, models.StatusReady, false), ErrInvalidTransition)
	assert.ErrorIs(t, CheckTransition(models.StatusPreparing, models.StatusServed, false), ErrInvalidTransition)
}

func TestCheckTransitionNoRepeats(t *testing.T) {
	for _, s := range []models.OrderStatus{models.StatusPending, models.StatusPreparing, models.StatusReady, models.StatusServed} {
		assert.ErrorIs(t, CheckTransition(s, s, false), ErrInvalidTransition)
	}
}

func TestCheckTransitionCancelRules(t *testing.T) {
	// Cancellable while unpaid and non-terminal
	assert.NoError(t, CheckTransition(models.StatusPending, models.StatusCancelled, false))
	assert.NoError(t, CheckTransition(models.StatusPreparing, models.StatusCancelled, false))
	assert.NoError(t, CheckTransition(models.StatusReady, models.StatusCancelled, false))

	// A paid order can never be cancelled
	assert.ErrorIs(t, CheckTransition(models.StatusPending, models.StatusCancelled, true), ErrInvalidTransition)
	assert.ErrorIs(t, CheckTransition(models.StatusReady, models.StatusCancelled, true), ErrInvalidTransition)

	// Terminal statuses stay terminal
	assert.ErrorIs(t, CheckTransition(models.StatusServed, models.StatusCancelled, false), ErrInvalidTransition)
	assert.ErrorIs(t, CheckTransition(models.StatusCancelled, models.StatusCancelled, false), ErrInvalidTransition)
}

func TestCheckTransitionNoBackwardSteps(t *testing.T) {
	assert.ErrorIs(t, CheckTransition(models.StatusReady, models.StatusPreparing, false), ErrInvalidTransition)
	assert.ErrorIs(t, CheckTransition(models.StatusServed, models.StatusReady, false), ErrInvalidTransition)
	assert.ErrorIs(t, CheckTransition(models.StatusPreparing, models.StatusPending, false), ErrInvalidTransition)
}
