package directoryRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"mentorly/database"
	"mentorly/database/repository"
	"mentorly/models"
)

// SQLiteDirectoryRepo implements DirectoryRepository on the shared SQLite ledger database.
type SQLiteDirectoryRepo struct {
	db      *sql.DB
	timeout time.Duration
}

// NewSQLiteDirectoryRepo wraps an open database. timeout bounds every call.
func NewSQLiteDirectoryRepo(db *sql.DB, timeout time.Duration) *SQLiteDirectoryRepo {
	return &SQLiteDirectoryRepo{db: db, timeout: timeout}
}

func (r *SQLiteDirectoryRepo) GetMentor(ctx context.Context, id string) (*models.Mentor, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var m models.Mentor
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, expertise, premium, created_at FROM mentors WHERE id = ?`, id,
	).Scan(&m.ID, &m.Name, &m.Expertise, &m.Premium, &m.CreatedAt)
	if err != nil {
		return nil, mapScanError("mentor", id, err)
	}
	return &m, nil
}

func (r *SQLiteDirectoryRepo) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var s models.Student
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, area_of_interest, created_at FROM students WHERE id = ?`, id,
	).Scan(&s.ID, &s.Name, &s.AreaOfInterest, &s.CreatedAt)
	if err != nil {
		return nil, mapScanError("student", id, err)
	}
	return &s, nil
}

func (r *SQLiteDirectoryRepo) CreateMentor(ctx context.Context, mentor *models.Mentor) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := mentor.Expertise.Validate(); err != nil {
		return fmt.Errorf("failed to create mentor: %w", err)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO mentors (id, name, expertise, premium, created_at) VALUES (?, ?, ?, ?, ?)`,
		mentor.ID, mentor.Name, mentor.Expertise, mentor.Premium, mentor.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create mentor: %w", err)
	}
	return nil
}

func (r *SQLiteDirectoryRepo) CreateStudent(ctx context.Context, student *models.Student) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO students (id, name, area_of_interest, created_at) VALUES (?, ?, ?, ?)`,
		student.ID, student.Name, student.AreaOfInterest, student.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

func (r *SQLiteDirectoryRepo) ListMentors(ctx context.Context) ([]models.Mentor, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, expertise, premium, created_at FROM mentors ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve mentors: %w", err)
	}
	defer rows.Close()

	mentors := []models.Mentor{}
	for rows.Next() {
		var m models.Mentor
		if err := rows.Scan(&m.ID, &m.Name, &m.Expertise, &m.Premium, &m.CreatedAt); err != nil {
			return nil, mapScanError("mentor", "", err)
		}
		mentors = append(mentors, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to retrieve mentors: %w", err)
	}
	return mentors, nil
}

func (r *SQLiteDirectoryRepo) ListStudents(ctx context.Context) ([]models.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, area_of_interest, created_at FROM students ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve students: %w", err)
	}
	defer rows.Close()

	students := []models.Student{}
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.AreaOfInterest, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to decode student: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to retrieve students: %w", err)
	}
	return students, nil
}

func (r *SQLiteDirectoryRepo) DeleteMentor(ctx context.Context, id string) error {
	return r.deleteOne(ctx, "mentors", "mentor", id)
}

func (r *SQLiteDirectoryRepo) DeleteStudent(ctx context.Context, id string) error {
	return r.deleteOne(ctx, "students", "student", id)
}

func (r *SQLiteDirectoryRepo) DeleteAllMentors(ctx context.Context) (int64, error) {
	return r.deleteAll(ctx, "mentors")
}

func (r *SQLiteDirectoryRepo) DeleteAllStudents(ctx context.Context) (int64, error) {
	return r.deleteAll(ctx, "students")
}

// table is always one of the fixed names above, never caller input.
func (r *SQLiteDirectoryRepo) deleteOne(ctx context.Context, table, kind, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("%s %s: %w", kind, id, repository.ErrReferenced)
		}
		return fmt.Errorf("failed to delete %s with id %s: %w", kind, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete %s with id %s: %w", kind, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, repository.ErrNotFound)
	}
	return nil
}

func (r *SQLiteDirectoryRepo) deleteAll(ctx context.Context, table string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, "DELETE FROM "+table)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return 0, fmt.Errorf("%s: %w", table, repository.ErrReferenced)
		}
		return 0, fmt.Errorf("failed to delete %s: %w", table, err)
	}
	return res.RowsAffected()
}

func mapScanError(kind, id string, err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%s %s: %w", kind, id, repository.ErrNotFound)
	case errors.Is(err, models.ErrMalformedExpertise):
		return fmt.Errorf("%s %s: %w: %v", kind, id, repository.ErrDataIntegrity, err)
	default:
		return fmt.Errorf("failed to fetch %s %s: %w", kind, id, err)
	}
}
