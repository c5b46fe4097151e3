package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mentorly/database/repository"
	"mentorly/models"
)

var _ BookingService = (*DefaultBookingService)(nil)

// BookAppointment validates req, checks the mentor's calendar and writes the
// appointment with its payment in one ledger transaction. Every failure is a
// *BookingError; nothing is retried.
func (s *DefaultBookingService) BookAppointment(ctx context.Context, req models.BookingRequest) (_ *models.BookingResult, err error) {
	log := s.logger().With(
		zap.String("student_id", req.StudentID),
		zap.String("mentor_id", req.MentorID),
		zap.String("date", req.Date),
		zap.String("start_time", req.StartTime),
		zap.Int("duration", req.Duration),
	)
	state := models.StateValidating
	log.Debug("booking state", zap.String("state", string(state)))
	advance := func(next models.BookingState) {
		log.Debug("booking state", zap.String("from", string(state)), zap.String("to", string(next)))
		state = next
	}
	defer func() {
		if err != nil {
			advance(models.StateRolledBack)
			log.Info("booking rejected", zap.String("kind", string(KindOf(err))), zap.Error(err))
		}
	}()

	// Step 1: the requested window must be well formed.
	if req.Duration <= 0 {
		return nil, invalidWindow("duration must be a positive number of minutes, got %d", req.Duration)
	}
	if req.Amount < 0 {
		return nil, invalidWindow("amount must not be negative, got %d", req.Amount)
	}
	date, perr := models.ParseDate(req.Date)
	if perr != nil {
		return nil, invalidWindow("%v", perr)
	}
	start, perr := models.ParseClock(req.StartTime)
	if perr != nil {
		return nil, invalidWindow("%v", perr)
	}

	// Steps 2-3: both participants must exist.
	student, lerr := s.Directory.GetStudent(ctx, req.StudentID)
	if lerr != nil {
		return nil, lookupFailure("student", req.StudentID, lerr)
	}
	mentor, lerr := s.Directory.GetMentor(ctx, req.MentorID)
	if lerr != nil {
		return nil, lookupFailure("mentor", req.MentorID, lerr)
	}

	// Step 4: eligibility.
	advance(models.StateCheckingEligibility)
	if cerr := CheckEligibility(mentor, student); cerr != nil {
		return nil, cerr
	}
	if mentor.Premium {
		log.Info("booking premium mentor")
	}

	// Step 5: the slot may end at midnight but not run past it.
	// Compare against the minutes left so start+duration cannot overflow.
	if req.Duration > models.MinutesPerDay-start {
		return nil, invalidWindow("slot starting %s for %d minutes runs past midnight", req.StartTime, req.Duration)
	}
	end := start + req.Duration
	window := models.Interval{Start: start, End: end}

	// Step 6: lock the mentor's day and re-check availability inside the transaction.
	advance(models.StateCheckingAvailability)
	release, aerr := s.locker().Acquire(ctx, LockKey(mentor.ID, date))
	if aerr != nil {
		return nil, storageFailure("could not lock mentor calendar", aerr)
	}
	defer release()

	now := s.now()
	appt := models.Appointment{
		ID:          s.newID(),
		MentorID:    mentor.ID,
		StudentID:   student.ID,
		Date:        date,
		StartTime:   models.FormatClock(window.Start),
		EndTime:     models.FormatClock(window.End),
		StartMinute: window.Start,
		EndMinute:   window.End,
		Duration:    req.Duration,
		CreatedAt:   now,
	}
	payment := models.Payment{
		ID:        s.newID(),
		StudentID: student.ID,
		MentorID:  mentor.ID,
		Duration:  req.Duration,
		Amount:    req.Amount,
		CreatedAt: now,
	}

	txErr := s.Ledger.WithinMentorDay(ctx, mentor.ID, date, func(tx repository.LedgerTx) error {
		free, ferr := IsAvailable(ctx, tx, mentor.ID, date, window)
		if ferr != nil {
			return storageFailure("could not read mentor calendar", ferr)
		}
		if !free {
			return &BookingError{
				Kind:    KindSlotUnavailable,
				Message: fmt.Sprintf("mentor %s already has an appointment overlapping %s on %s", mentor.ID, window.Label(), date),
			}
		}

		// Step 7: both rows or neither.
		if state != models.StatePersisting {
			advance(models.StatePersisting)
		}
		if _, _, ierr := repository.InsertAppointmentAndPayment(ctx, tx, &appt, &payment); ierr != nil {
			return storageFailure("could not record booking", ierr)
		}
		return nil
	})
	if txErr != nil {
		var be *BookingError
		if errors.As(txErr, &be) {
			return nil, be
		}
		return nil, storageFailure("booking transaction failed", txErr)
	}
	advance(models.StateCommitted)
	log.Info("appointment booked", zap.String("appointment_id", appt.ID), zap.String("payment_id", payment.ID))

	if s.Notifier != nil {
		if nerr := s.Notifier.MentorBooked(ctx, appt); nerr != nil {
			log.Warn("availability notification failed", zap.Error(nerr))
		}
	}

	return &models.BookingResult{Appointment: appt, Payment: payment, State: state}, nil
}

func lookupFailure(entity, id string, err error) *BookingError {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return notFound(entity, id, err)
	case errors.Is(err, repository.ErrDataIntegrity):
		return dataIntegrity(fmt.Sprintf("stored %s %s is corrupt", entity, id), err)
	default:
		return storageFailure(fmt.Sprintf("could not load %s %s", entity, id), err)
	}
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

var fallbackLocker = NewLocalLocker()

func (s *DefaultBookingService) locker() Locker {
	if s.Locker == nil {
		return fallbackLocker
	}
	return s.Locker
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *DefaultBookingService) newID() string {
	if s.NewID == nil {
		return uuid.NewString()
	}
	return s.NewID()
}
