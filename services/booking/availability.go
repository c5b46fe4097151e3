package booking

import (
	"context"
	"fmt"

	"mentorly/database/repository"
	"mentorly/models"
)

// IsAvailable reports whether window on date is free for mentorID. tx must be
// the transaction that will also write the appointment, otherwise the answer
// can be stale by the time it is acted on.
func IsAvailable(ctx context.Context, tx repository.LedgerTx, mentorID, date string, window models.Interval) (bool, error) {
	busy, err := tx.FindOverlapping(ctx, mentorID, date, window)
	if err != nil {
		return false, fmt.Errorf("availability check for mentor %s on %s: %w", mentorID, date, err)
	}
	return !busy, nil
}
