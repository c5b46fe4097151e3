package booking

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"mentorly/models"
	"mentorly/services/tasks"
)

// AvailabilityNotifier is told about every committed appointment.
// Failures are reported but never undo the booking.
type AvailabilityNotifier interface {
	MentorBooked(ctx context.Context, appt models.Appointment) error
}

// LogNotifier only records the change.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) MentorBooked(_ context.Context, appt models.Appointment) error {
	if n.Logger == nil {
		return nil
	}
	n.Logger.Info("mentor availability updated",
		zap.String("mentor_id", appt.MentorID),
		zap.String("date", appt.Date),
		zap.String("booked", appt.StartTime+"-"+appt.EndTime),
	)
	return nil
}

// Enqueuer is the part of *asynq.Client the queue notifier needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueNotifier hands the change to the asynq worker.
type QueueNotifier struct {
	Queue  Enqueuer
	Logger *zap.Logger
}

func (n QueueNotifier) MentorBooked(ctx context.Context, appt models.Appointment) error {
	task, opts, err := tasks.NewAvailabilityTask(tasks.AvailabilityPayload{
		MentorID:      appt.MentorID,
		Date:          appt.Date,
		AppointmentID: appt.ID,
		StartTime:     appt.StartTime,
		EndTime:       appt.EndTime,
	})
	if err != nil {
		return fmt.Errorf("build availability task: %w", err)
	}
	info, err := n.Queue.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("enqueue availability task: %w", err)
	}
	if n.Logger != nil {
		n.Logger.Debug("availability task enqueued", zap.String("task_id", info.ID), zap.String("queue", info.Queue))
	}
	return nil
}
