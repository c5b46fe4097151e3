// Package memoryRepo is an in-process store implementing both the directory
// and the ledger. Booking transactions are serialised by one mutex and their
// writes are staged until the callback succeeds.
package memoryRepo

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"mentorly/database/repository"
	"mentorly/models"
)

type Store struct {
	mu           sync.Mutex
	mentors      map[string]models.Mentor
	students     map[string]models.Student
	appointments map[string]models.Appointment
	payments     map[string]models.Payment
}

func NewStore() *Store {
	return &Store{
		mentors:      make(map[string]models.Mentor),
		students:     make(map[string]models.Student),
		appointments: make(map[string]models.Appointment),
		payments:     make(map[string]models.Payment),
	}
}

var (
	_ repository.DirectoryRepository = (*Store)(nil)
	_ repository.LedgerRepository    = (*Store)(nil)
)

func (s *Store) GetMentor(ctx context.Context, id string) (*models.Mentor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.mentors[id]
	if !ok {
		return nil, fmt.Errorf("mentor %s: %w", id, repository.ErrNotFound)
	}
	if err := m.Expertise.Validate(); err != nil {
		return nil, fmt.Errorf("mentor %s: %w: %v", id, repository.ErrDataIntegrity, err)
	}
	return &m, nil
}

func (s *Store) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.students[id]
	if !ok {
		return nil, fmt.Errorf("student %s: %w", id, repository.ErrNotFound)
	}
	return &st, nil
}

func (s *Store) CreateMentor(ctx context.Context, mentor *models.Mentor) error {
	if err := mentor.Expertise.Validate(); err != nil {
		return fmt.Errorf("failed to create mentor: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.mentors[mentor.ID]; dup {
		return fmt.Errorf("failed to create mentor: duplicate id %s", mentor.ID)
	}
	s.mentors[mentor.ID] = *mentor
	return nil
}

// PutMentorUnchecked stores a mentor without validating its expertise, to
// simulate corrupt rows.
func (s *Store) PutMentorUnchecked(mentor models.Mentor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mentors[mentor.ID] = mentor
}

func (s *Store) CreateStudent(ctx context.Context, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.students[student.ID]; dup {
		return fmt.Errorf("failed to create student: duplicate id %s", student.ID)
	}
	s.students[student.ID] = *student
	return nil
}

func (s *Store) ListMentors(ctx context.Context) ([]models.Mentor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Mentor, 0, len(s.mentors))
	for _, m := range s.mentors {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ListStudents(ctx context.Context) ([]models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Student, 0, len(s.students))
	for _, st := range s.students {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) DeleteMentor(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.mentors[id]; !ok {
		return fmt.Errorf("mentor %s: %w", id, repository.ErrNotFound)
	}
	if s.referencedLocked(func(mentorID, _ string) bool { return mentorID == id }) {
		return fmt.Errorf("mentor %s: %w", id, repository.ErrReferenced)
	}
	delete(s.mentors, id)
	return nil
}

func (s *Store) DeleteStudent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.students[id]; !ok {
		return fmt.Errorf("student %s: %w", id, repository.ErrNotFound)
	}
	if s.referencedLocked(func(_, studentID string) bool { return studentID == id }) {
		return fmt.Errorf("student %s: %w", id, repository.ErrReferenced)
	}
	delete(s.students, id)
	return nil
}

func (s *Store) DeleteAllMentors(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.appointments) > 0 || len(s.payments) > 0 {
		return 0, fmt.Errorf("mentors: %w", repository.ErrReferenced)
	}
	n := int64(len(s.mentors))
	s.mentors = make(map[string]models.Mentor)
	return n, nil
}

func (s *Store) DeleteAllStudents(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.appointments) > 0 || len(s.payments) > 0 {
		return 0, fmt.Errorf("students: %w", repository.ErrReferenced)
	}
	n := int64(len(s.students))
	s.students = make(map[string]models.Student)
	return n, nil
}

func (s *Store) referencedLocked(match func(mentorID, studentID string) bool) bool {
	for _, a := range s.appointments {
		if match(a.MentorID, a.StudentID) {
			return true
		}
	}
	for _, p := range s.payments {
		if match(p.MentorID, p.StudentID) {
			return true
		}
	}
	return false
}

// WithinMentorDay holds the store mutex for the whole callback, which makes
// every booking transaction serial.
func (s *Store) WithinMentorDay(ctx context.Context, mentorID, date string, fn func(tx repository.LedgerTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{store: s}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit booking transaction: %w", err)
	}
	for _, a := range tx.appointments {
		s.appointments[a.ID] = a
	}
	for _, p := range tx.payments {
		s.payments[p.ID] = p
	}
	return nil
}

type memoryTx struct {
	store        *Store
	appointments []models.Appointment
	payments     []models.Payment
}

func (t *memoryTx) FindOverlapping(ctx context.Context, mentorID, date string, window models.Interval) (bool, error) {
	overlaps := func(a models.Appointment) bool {
		return a.MentorID == mentorID && a.Date == date && a.Window().Overlaps(window)
	}
	for _, a := range t.store.appointments {
		if overlaps(a) {
			return true, nil
		}
	}
	for _, a := range t.appointments {
		if overlaps(a) {
			return true, nil
		}
	}
	return false, nil
}

func (t *memoryTx) InsertAppointment(ctx context.Context, a *models.Appointment) error {
	if _, ok := t.store.mentors[a.MentorID]; !ok {
		return fmt.Errorf("error creating appointment: unknown mentor %s", a.MentorID)
	}
	if _, ok := t.store.students[a.StudentID]; !ok {
		return fmt.Errorf("error creating appointment: unknown student %s", a.StudentID)
	}
	t.appointments = append(t.appointments, *a)
	return nil
}

func (t *memoryTx) InsertPayment(ctx context.Context, p *models.Payment) error {
	staged := false
	for _, a := range t.appointments {
		if a.ID == p.AppointmentID {
			staged = true
			break
		}
	}
	if _, ok := t.store.appointments[p.AppointmentID]; !ok && !staged {
		return fmt.Errorf("error creating payment: unknown appointment %s", p.AppointmentID)
	}
	t.payments = append(t.payments, *p)
	return nil
}

func (s *Store) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Appointment, 0, len(s.appointments))
	for _, a := range s.appointments {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].StartMinute != out[j].StartMinute {
			return out[i].StartMinute < out[j].StartMinute
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) ListPayments(ctx context.Context) ([]models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Payment, 0, len(s.payments))
	for _, p := range s.payments {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.appointments[id]; !ok {
		return fmt.Errorf("appointment %s: %w", id, repository.ErrNotFound)
	}
	for _, p := range s.payments {
		if p.AppointmentID == id {
			return fmt.Errorf("appointment %s: %w", id, repository.ErrReferenced)
		}
	}
	delete(s.appointments, id)
	return nil
}

func (s *Store) DeleteAllAppointments(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.payments) > 0 {
		return 0, fmt.Errorf("appointments: %w", repository.ErrReferenced)
	}
	n := int64(len(s.appointments))
	s.appointments = make(map[string]models.Appointment)
	return n, nil
}

func (s *Store) DeleteAllPayments(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := int64(len(s.payments))
	s.payments = make(map[string]models.Payment)
	return n, nil
}
