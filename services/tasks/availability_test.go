package tasks

import (
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityTask(t *testing.T) {
	task, opts, err := NewAvailabilityTask(AvailabilityPayload{MentorID: "m1", Date: "2024-05-01", StartTime: "10:00", EndTime: "10:30"})
	require.NoError(t, err)
	assert.Equal(t, TypeAvailabilityBooked, task.Type())
	assert.NotEmpty(t, opts)

	p, err := ParseAvailabilityPayload(task)
	require.NoError(t, err)
	assert.Equal(t, "m1", p.MentorID)

	_, err = ParseAvailabilityPayload(asynq.NewTask(TypeAvailabilityBooked, []byte(`{"date":"2024-05-01"}`)))
	assert.Error(t, err)
}
