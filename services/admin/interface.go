package admin

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mentorly/database/repository"
	"mentorly/models"
)

// ErrInvalidInput marks registration data that cannot be stored.
var ErrInvalidInput = errors.New("invalid input")

// AdminService manages the directory and the raw ledger rows.
type AdminService interface {
	RegisterMentor(ctx context.Context, in models.MentorInput) (*models.Mentor, error)
	RegisterStudent(ctx context.Context, in models.StudentInput) (*models.Student, error)
	ListMentors(ctx context.Context) ([]models.Mentor, error)
	ListStudents(ctx context.Context) ([]models.Student, error)
	DeleteMentor(ctx context.Context, id string) error
	DeleteStudent(ctx context.Context, id string) error
	DeleteAllMentors(ctx context.Context) (int64, error)
	DeleteAllStudents(ctx context.Context) (int64, error)

	ListAppointments(ctx context.Context) ([]models.Appointment, error)
	ListPayments(ctx context.Context) ([]models.Payment, error)
	DeleteAppointment(ctx context.Context, id string) error
	DeleteAllAppointments(ctx context.Context) (int64, error)
	DeleteAllPayments(ctx context.Context) (int64, error)

	Seed(ctx context.Context, seed SeedFile) (*SeedReport, error)
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Directory repository.DirectoryRepository
	Ledger    repository.LedgerRepository
	Logger    *zap.Logger
	Now       func() time.Time
	NewID     func() string
}

func NewAdminService(dir repository.DirectoryRepository, ledger repository.LedgerRepository, logger *zap.Logger) *DefaultAdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultAdminService{
		Directory: dir,
		Ledger:    ledger,
		Logger:    logger,
		Now:       time.Now,
		NewID:     uuid.NewString,
	}
}

var _ AdminService = (*DefaultAdminService)(nil)
