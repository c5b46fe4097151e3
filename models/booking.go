package models

// BookingRequest carries the caller's booking input.
type BookingRequest struct {
	StudentID string `json:"student_id" binding:"required"`
	MentorID  string `json:"mentor_id" binding:"required"`
	Date      string `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime string `json:"start_time" binding:"required"` // HH:MM
	Duration  int    `json:"duration"`                      // minutes
	Amount    int64  `json:"amount" binding:"gte=0"`
}

// BookingState tracks a single booking attempt.
type BookingState string

const (
	StateValidating           BookingState = "validating"
	StateCheckingEligibility  BookingState = "checkingEligibility"
	StateCheckingAvailability BookingState = "checkingAvailability"
	StatePersisting           BookingState = "persisting"
	StateCommitted            BookingState = "committed"
	StateRolledBack           BookingState = "rolledBack"
)

// Terminal reports whether no further transition can follow s.
func (s BookingState) Terminal() bool {
	return s == StateCommitted || s == StateRolledBack
}

// BookingResult is returned once both ledger rows are committed.
type BookingResult struct {
	Appointment Appointment  `json:"appointment"`
	Payment     Payment      `json:"payment"`
	State       BookingState `json:"state"`
}
