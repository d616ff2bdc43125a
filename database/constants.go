package database

import "time"

// Signal lifecycle statuses. A signal moves PENDING -> EXECUTED exactly
// once, as a side effect of opening a trade from it. There is no reverse
// transition.
const (
	SignalStatusPending  = "PENDING"
	SignalStatusExecuted = "EXECUTED"
)

// Trade directions, always stored uppercase
const (
	DirectionLong  = "LONG"
	DirectionShort = "SHORT"
)

// Trade lifecycle statuses
const (
	TradeStatusOpen   = "OPEN"
	TradeStatusClosed = "CLOSED"
)

// Exit reasons recorded when a trade is closed
const (
	ExitReasonManual   = "MANUAL"
	ExitReasonTP       = "TP"
	ExitReasonSL       = "SL"
	ExitReasonTimeExit = "TIME_EXIT"
)

// SignalValidity is the soft expiry window stamped on every inserted
// signal (valid_until = generated_at + SignalValidity). Downstream
// consumers may honor it; this service only records it.
const SignalValidity = 1 * time.Hour

// DefaultRecentWindowDays is the trailing window for recent-signal
// lookups when the caller does not specify one (drift/PSI analytics).
const DefaultRecentWindowDays = 30

// ValidExitReason reports whether reason is one of the accepted exit
// reason codes.
func ValidExitReason(reason string) bool {
	switch reason {
	case ExitReasonManual, ExitReasonTP, ExitReasonSL, ExitReasonTimeExit:
		return true
	}
	return false
}

// ValidDirection reports whether direction is a recognized trade
// direction. Expects the uppercase form.
func ValidDirection(direction string) bool {
	return direction == DirectionLong || direction == DirectionShort
}
