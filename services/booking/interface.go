package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mentorly/database/repository"
	"mentorly/models"
)

// BookingService books one mentor/student slot together with its payment.
type BookingService interface {
	BookAppointment(ctx context.Context, req models.BookingRequest) (*models.BookingResult, error)
}

// DefaultBookingService implements BookingService on top of the directory
// and ledger stores.
type DefaultBookingService struct {
	Directory repository.DirectoryRepository
	Ledger    repository.LedgerRepository
	Locker    Locker
	Notifier  AvailabilityNotifier
	Logger    *zap.Logger

	// Now and NewID are replaced in tests.
	Now   func() time.Time
	NewID func() string
}

// NewBookingService wires a service with the in-process locker and a logging
// notifier unless others are supplied later.
func NewBookingService(dir repository.DirectoryRepository, ledger repository.LedgerRepository, logger *zap.Logger) *DefaultBookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultBookingService{
		Directory: dir,
		Ledger:    ledger,
		Locker:    NewLocalLocker(),
		Notifier:  LogNotifier{Logger: logger},
		Logger:    logger,
		Now:       time.Now,
		NewID:     uuid.NewString,
	}
}
