package admin

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"mentorly/database/repository"
	memoryRepo "mentorly/database/repository/memory"
	"mentorly/models"
)

func createTestService(t *testing.T) (*DefaultAdminService, *memoryRepo.Store) {
	t.Helper()
	store := memoryRepo.NewStore()
	svc := NewAdminService(store, store, zaptest.NewLogger(t))
	n := 0
	svc.NewID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	svc.Now = func() time.Time { return time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC) }
	return svc, store
}

func TestRegisterMentor(t *testing.T) {
	svc, _ := createTestService(t)
	ctx := context.Background()

	m, err := svc.RegisterMentor(ctx, models.MentorInput{Name: " Emmy ", Expertise: []string{"Physics", "math", "MATH"}, Premium: true})
	require.NoError(t, err)
	assert.Equal(t, "id-1", m.ID)
	assert.Equal(t, "Emmy", m.Name)
	assert.Equal(t, models.ExpertiseSet{"math", "physics"}, m.Expertise)
	assert.True(t, m.Premium)

	_, err = svc.RegisterMentor(ctx, models.MentorInput{Name: "Nobody"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.RegisterMentor(ctx, models.MentorInput{Name: "Blank", Expertise: []string{"  "}})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.RegisterMentor(ctx, models.MentorInput{Expertise: []string{"math"}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	list, err := svc.ListMentors(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRegisterStudent(t *testing.T) {
	svc, _ := createTestService(t)
	ctx := context.Background()

	s, err := svc.RegisterStudent(ctx, models.StudentInput{Name: "Sam", AreaOfInterest: " Biology"})
	require.NoError(t, err)
	assert.Equal(t, "biology", s.AreaOfInterest)

	_, err = svc.RegisterStudent(ctx, models.StudentInput{Name: "Sam"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteReferenced(t *testing.T) {
	svc, store := createTestService(t)
	ctx := context.Background()

	m, err := svc.RegisterMentor(ctx, models.MentorInput{Name: "Rosalind", Expertise: []string{"biology"}})
	require.NoError(t, err)
	s, err := svc.RegisterStudent(ctx, models.StudentInput{Name: "Sam", AreaOfInterest: "biology"})
	require.NoError(t, err)

	err = store.WithinMentorDay(ctx, m.ID, "2024-05-01", func(tx repository.LedgerTx) error {
		appt := &models.Appointment{ID: "a1", MentorID: m.ID, StudentID: s.ID, Date: "2024-05-01", StartMinute: 600, EndMinute: 630, Duration: 30}
		_, _, err := repository.InsertAppointmentAndPayment(ctx, tx, appt, &models.Payment{ID: "p1", MentorID: m.ID, StudentID: s.ID})
		return err
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteMentor(ctx, m.ID), repository.ErrReferenced)
	assert.ErrorIs(t, svc.DeleteStudent(ctx, s.ID), repository.ErrReferenced)
	assert.ErrorIs(t, svc.DeleteAppointment(ctx, "a1"), repository.ErrReferenced)

	n, err := svc.DeleteAllPayments(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.NoError(t, svc.DeleteAppointment(ctx, "a1"))
	require.NoError(t, svc.DeleteMentor(ctx, m.ID))

	n, err = svc.DeleteAllStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.ErrorIs(t, svc.DeleteStudent(ctx, s.ID), repository.ErrNotFound)
}

func TestDecodeSeed(t *testing.T) {
	seed, err := DecodeSeed(strings.NewReader(`
mentors:
  - name: Rosalind
    expertise: [biology, chemistry]
  - name: Emmy
    expertise: [math]
    premium: true
students:
  - name: Sam
    area_of_interest: biology
`))
	require.NoError(t, err)
	require.Len(t, seed.Mentors, 2)
	assert.True(t, seed.Mentors[1].Premium)
	assert.Equal(t, "biology", seed.Students[0].AreaOfInterest)

	_, err = DecodeSeed(strings.NewReader("mentors:\n  - name: X\n    skills: [a]\n"))
	assert.Error(t, err)

	empty, err := DecodeSeed(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty.Mentors)
}

func TestSeed(t *testing.T) {
	svc, _ := createTestService(t)
	ctx := context.Background()

	report, err := svc.Seed(ctx, SeedFile{
		Mentors:  []models.MentorInput{{Name: "Rosalind", Expertise: []string{"biology"}}},
		Students: []models.StudentInput{{Name: "Sam", AreaOfInterest: "biology"}, {Name: "Bad"}},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Len(t, report.Mentors, 1)
	assert.Len(t, report.Students, 1)
}
