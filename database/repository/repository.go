package repository

import (
	"context"
	"errors"
	"fmt"

	"mentorly/models"
)

var (
	// ErrNotFound is returned when a keyed lookup finds nothing.
	ErrNotFound = errors.New("record not found")
	// ErrReferenced is returned when a delete would orphan ledger rows.
	ErrReferenced = errors.New("record is still referenced")
	// ErrDataIntegrity is returned when stored data cannot be decoded.
	ErrDataIntegrity = errors.New("stored data failed integrity checks")
)

// DirectoryRepository is the mentor/student registry.
type DirectoryRepository interface {
	GetMentor(ctx context.Context, id string) (*models.Mentor, error)
	GetStudent(ctx context.Context, id string) (*models.Student, error)
	CreateMentor(ctx context.Context, mentor *models.Mentor) error
	CreateStudent(ctx context.Context, student *models.Student) error
	ListMentors(ctx context.Context) ([]models.Mentor, error)
	ListStudents(ctx context.Context) ([]models.Student, error)
	// DeleteMentor and DeleteStudent fail with ErrReferenced while ledger rows point at the record.
	DeleteMentor(ctx context.Context, id string) error
	DeleteStudent(ctx context.Context, id string) error
	DeleteAllMentors(ctx context.Context) (int64, error)
	DeleteAllStudents(ctx context.Context) (int64, error)
}

// LedgerTx is the view of the ledger inside one booking transaction.
type LedgerTx interface {
	// FindOverlapping reports whether any appointment of mentorID on date overlaps window.
	FindOverlapping(ctx context.Context, mentorID, date string, window models.Interval) (bool, error)
	InsertAppointment(ctx context.Context, appt *models.Appointment) error
	InsertPayment(ctx context.Context, payment *models.Payment) error
}

// LedgerRepository owns appointments and payments.
type LedgerRepository interface {
	// WithinMentorDay runs fn in a single serializable transaction scoped to
	// mentorID and date. The transaction commits only if fn returns nil;
	// otherwise every write made through the LedgerTx is rolled back.
	WithinMentorDay(ctx context.Context, mentorID, date string, fn func(tx LedgerTx) error) error

	ListAppointments(ctx context.Context) ([]models.Appointment, error)
	ListPayments(ctx context.Context) ([]models.Payment, error)
	// DeleteAppointment and DeleteAllAppointments fail with ErrReferenced while payments point at the rows.
	DeleteAppointment(ctx context.Context, id string) error
	DeleteAllAppointments(ctx context.Context) (int64, error)
	DeleteAllPayments(ctx context.Context) (int64, error)
}

// InsertAppointmentAndPayment writes the appointment and then the payment that
// references it. Both writes go through tx, so they commit or roll back together.
func InsertAppointmentAndPayment(ctx context.Context, tx LedgerTx, appt *models.Appointment, payment *models.Payment) (string, string, error) {
	if err := tx.InsertAppointment(ctx, appt); err != nil {
		return "", "", fmt.Errorf("insert appointment: %w", err)
	}
	payment.AppointmentID = appt.ID
	if err := tx.InsertPayment(ctx, payment); err != nil {
		return "", "", fmt.Errorf("insert payment: %w", err)
	}
	return appt.ID, payment.ID, nil
}
