package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const TypeAvailabilityBooked = "availability:booked"

// AvailabilityPayload tells downstream consumers that a mentor's day lost a slot.
type AvailabilityPayload struct {
	MentorID      string `json:"mentor_id"`
	Date          string `json:"date"`
	AppointmentID string `json:"appointment_id"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
}

func NewAvailabilityTask(payload AvailabilityPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeAvailabilityBooked, b)
	opts := []asynq.Option{asynq.MaxRetry(3), asynq.Queue("default")}

	return task, opts, nil
}

func ParseAvailabilityPayload(task *asynq.Task) (AvailabilityPayload, error) {
	var p AvailabilityPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("decode %s payload: %w", task.Type(), err)
	}
	if p.MentorID == "" || p.Date == "" {
		return p, fmt.Errorf("%s payload missing mentor or date", task.Type())
	}
	return p, nil
}
