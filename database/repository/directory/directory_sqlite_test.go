package directoryRepo

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorly/database"
	"mentorly/database/repository"
	"mentorly/models"
)

func createTestRepo(t *testing.T) (*SQLiteDirectoryRepo, *sql.DB) {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "directory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLiteDirectoryRepo(db, 5*time.Second), db
}

func TestMentorRoundTrip(t *testing.T) {
	repo, _ := createTestRepo(t)
	ctx := context.Background()

	set, err := models.NewExpertiseSet("physics", "math")
	require.NoError(t, err)
	m := &models.Mentor{ID: "m1", Name: "Ada", Expertise: set, Premium: true, CreatedAt: time.Now()}
	require.NoError(t, repo.CreateMentor(ctx, m))

	got, err := repo.GetMentor(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, models.ExpertiseSet{"math", "physics"}, got.Expertise)
	assert.True(t, got.Premium)

	mentors, err := repo.ListMentors(ctx)
	require.NoError(t, err)
	assert.Len(t, mentors, 1)
}

func TestGetMissing(t *testing.T) {
	repo, _ := createTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetMentor(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.GetStudent(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetMentor_MalformedExpertise(t *testing.T) {
	repo, db := createTestRepo(t)
	_, err := db.Exec(`INSERT INTO mentors (id, name, expertise, premium, created_at) VALUES ('m1', 'Ada', '{not json', 0, ?)`, time.Now())
	require.NoError(t, err)

	_, err = repo.GetMentor(context.Background(), "m1")
	assert.ErrorIs(t, err, repository.ErrDataIntegrity)
	assert.NotErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.ListMentors(context.Background())
	assert.ErrorIs(t, err, repository.ErrDataIntegrity)
}

func TestGetMentor_NullExpertise(t *testing.T) {
	repo, db := createTestRepo(t)
	_, err := db.Exec(`INSERT INTO mentors (id, name, expertise, premium, created_at) VALUES ('m1', 'Ada', 'null', 0, ?)`, time.Now())
	require.NoError(t, err)

	_, err = repo.GetMentor(context.Background(), "m1")
	assert.ErrorIs(t, err, repository.ErrDataIntegrity)
}

func TestDelete_RejectsReferencedRecords(t *testing.T) {
	repo, db := createTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateMentor(ctx, &models.Mentor{ID: "m1", Name: "Ada", Expertise: models.ExpertiseSet{"biology"}, CreatedAt: time.Now()}))
	require.NoError(t, repo.CreateStudent(ctx, &models.Student{ID: "s1", Name: "Sam", AreaOfInterest: "biology", CreatedAt: time.Now()}))
	_, err := db.Exec(`INSERT INTO appointments
		(id, mentor_id, student_id, date, start_time, end_time, start_minute, end_minute, duration, created_at)
		VALUES ('a1', 'm1', 's1', '2024-05-01', '10:00', '10:30', 600, 630, 30, ?)`, time.Now())
	require.NoError(t, err)

	assert.ErrorIs(t, repo.DeleteMentor(ctx, "m1"), repository.ErrReferenced)
	assert.ErrorIs(t, repo.DeleteStudent(ctx, "s1"), repository.ErrReferenced)
	_, err = repo.DeleteAllMentors(ctx)
	assert.ErrorIs(t, err, repository.ErrReferenced)

	_, err = db.Exec(`DELETE FROM appointments`)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteMentor(ctx, "m1"))
	assert.ErrorIs(t, repo.DeleteMentor(ctx, "m1"), repository.ErrNotFound)

	n, err := repo.DeleteAllStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
