package services

import "github.com/restopos/ticket-engine/models"

// The kitchen trajectory is strictly linear: pending -> preparing ->
// ready -> served. Cancellation is allowed from any non-terminal status
// as long as the order has not been paid. Everything else is rejected.
var nextInTrajectory = map[models.OrderStatus]models.OrderStatus{
	models.StatusPending:   models.StatusPreparing,
	models.StatusPreparing: models.StatusReady,
	models.StatusReady:     models.StatusServed,
}

// NextStatus returns the next legal kitchen status for current.
// The second result is false when current is terminal.
func NextStatus(current models.OrderStatus) (models.OrderStatus, bool) {
	next, ok := nextInTrajectory[current]
	return next, ok
}

// IsTerminalStatus reports whether no further kitchen transition exists.
func IsTerminalStatus(s models.OrderStatus) bool {
	return s == models.StatusServed || s == models.StatusCancelled
}

// CheckTransition is the single authority for the transition table.
// It returns nil when moving from -> to is legal given the order's
// payment state, ErrInvalidTransition otherwise. Skipping a step or
// repeating the current status is rejected, never silently accepted.
func CheckTransition(from, to models.OrderStatus, paid bool) error {
	if to == models.StatusCancelled {
		if IsTerminalStatus(from) || paid {
			return ErrInvalidTransition
		}
		return nil
	}
	next, ok := nextInTrajectory[from]
	if !ok || next != to {
		return ErrInvalidTransition
	}
	return nil
}
