package models

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// validTransitions is the booking lifecycle state machine. Pending bookings
// can be confirmed or cancelled, confirmed bookings can only be cancelled,
// cancelled is terminal.
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
	StatusCancelled: {},
}

// IsValid returns true if the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

// CanTransitionTo returns true if moving from this status to target is allowed.
// A self-transition is not a transition and is rejected.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// CanDelete returns true if a booking in this status may be hard-deleted.
// Confirmed bookings must be cancelled first.
func (s BookingStatus) CanDelete() bool {
	return s == StatusPending || s == StatusCancelled
}

// Blocks returns true if a booking in this status occupies its time slot
// for conflict purposes.
func (s BookingStatus) Blocks() bool {
	return s == StatusPending || s == StatusConfirmed
}
