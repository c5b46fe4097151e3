package schedulerRepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mentorly/database"
	"mentorly/database/repository"
	"mentorly/models"
)

// SQLiteSchedulerRepo implements LedgerRepository with SQLite. The database is
// opened with immediate transactions on a single connection, so each
// WithinMentorDay call holds the write lock from its availability check
// through its commit.
type SQLiteSchedulerRepo struct {
	db      *sql.DB
	timeout time.Duration
}

// NewSQLiteSchedulerRepo wraps a database opened by database.OpenSQLite.
func NewSQLiteSchedulerRepo(db *sql.DB, timeout time.Duration) *SQLiteSchedulerRepo {
	return &SQLiteSchedulerRepo{db: db, timeout: timeout}
}

func (r *SQLiteSchedulerRepo) WithinMentorDay(ctx context.Context, mentorID, date string, fn func(tx repository.LedgerTx) error) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin booking transaction for mentor %s on %s: %w", mentorID, date, err)
	}
	defer tx.Rollback() // No-op if committed

	if err := fn(&sqliteLedgerTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit booking transaction: %w", err)
	}
	return nil
}

type sqliteLedgerTx struct {
	tx *sql.Tx
}

func (t *sqliteLedgerTx) FindOverlapping(ctx context.Context, mentorID, date string, window models.Interval) (bool, error) {
	if window.Empty() {
		return false, nil
	}
	var exists bool
	err := t.tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE mentor_id = ? AND date = ? AND start_minute < ? AND end_minute > ?
		)`,
		mentorID, date, window.End, window.Start,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error finding overlapping appointments: %w", err)
	}
	return exists, nil
}

func (t *sqliteLedgerTx) InsertAppointment(ctx context.Context, a *models.Appointment) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO appointments
		(id, mentor_id, student_id, date, start_time, end_time, start_minute, end_minute, duration, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.MentorID, a.StudentID, a.Date, a.StartTime, a.EndTime,
		a.StartMinute, a.EndMinute, a.Duration, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error creating appointment: %w", err)
	}
	return nil
}

func (t *sqliteLedgerTx) InsertPayment(ctx context.Context, p *models.Payment) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO payments
		(id, appointment_id, student_id, mentor_id, duration, amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.AppointmentID, p.StudentID, p.MentorID, p.Duration, p.Amount, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error creating payment: %w", err)
	}
	return nil
}

func (r *SQLiteSchedulerRepo) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, mentor_id, student_id, date, start_time, end_time, start_minute, end_minute, duration, created_at
		FROM appointments ORDER BY date, start_minute, id`)
	if err != nil {
		return nil, fmt.Errorf("error fetching appointments: %w", err)
	}
	defer rows.Close()

	appts := []models.Appointment{}
	for rows.Next() {
		var a models.Appointment
		if err := rows.Scan(&a.ID, &a.MentorID, &a.StudentID, &a.Date, &a.StartTime, &a.EndTime,
			&a.StartMinute, &a.EndMinute, &a.Duration, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("error decoding appointment: %w", err)
		}
		appts = append(appts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error fetching appointments: %w", err)
	}
	return appts, nil
}

func (r *SQLiteSchedulerRepo) ListPayments(ctx context.Context) ([]models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, appointment_id, student_id, mentor_id, duration, amount, created_at
		FROM payments ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("error fetching payments: %w", err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.AppointmentID, &p.StudentID, &p.MentorID, &p.Duration, &p.Amount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("error decoding payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error fetching payments: %w", err)
	}
	return payments, nil
}

func (r *SQLiteSchedulerRepo) DeleteAppointment(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = ?`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("appointment %s: %w", id, repository.ErrReferenced)
		}
		return fmt.Errorf("error deleting appointment %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting appointment %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("appointment %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *SQLiteSchedulerRepo) DeleteAllAppointments(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments`)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return 0, fmt.Errorf("appointments: %w", repository.ErrReferenced)
		}
		return 0, fmt.Errorf("error deleting appointments: %w", err)
	}
	return res.RowsAffected()
}

func (r *SQLiteSchedulerRepo) DeleteAllPayments(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM payments`)
	if err != nil {
		return 0, fmt.Errorf("error deleting payments: %w", err)
	}
	return res.RowsAffected()
}
