package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"mentorly/models"
	"mentorly/services/tasks"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "t1", Queue: "default"}, nil
}

func TestQueueNotifier(t *testing.T) {
	q := &fakeEnqueuer{}
	n := QueueNotifier{Queue: q, Logger: zaptest.NewLogger(t)}
	appt := models.Appointment{ID: "a1", MentorID: "m1", Date: "2024-05-01", StartTime: "10:00", EndTime: "10:30"}

	require.NoError(t, n.MentorBooked(context.Background(), appt))
	require.Len(t, q.tasks, 1)
	assert.Equal(t, tasks.TypeAvailabilityBooked, q.tasks[0].Type())

	p, err := tasks.ParseAvailabilityPayload(q.tasks[0])
	require.NoError(t, err)
	assert.Equal(t, "a1", p.AppointmentID)
	assert.Equal(t, "10:30", p.EndTime)

	q.err = errors.New("redis: connection refused")
	assert.Error(t, n.MentorBooked(context.Background(), appt))
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, LogNotifier{Logger: zaptest.NewLogger(t)}.MentorBooked(context.Background(), models.Appointment{}))
	assert.NoError(t, LogNotifier{}.MentorBooked(context.Background(), models.Appointment{}))
}
