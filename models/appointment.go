package models

import "time"

// Appointment is a committed mentor/student slot on one calendar date.
type Appointment struct {
	ID          string    `bson:"id" json:"id"`
	MentorID    string    `bson:"mentor_id" json:"mentor_id"`
	StudentID   string    `bson:"student_id" json:"student_id"`
	Date        string    `bson:"date" json:"date"`             // YYYY-MM-DD
	StartTime   string    `bson:"start_time" json:"start_time"` // HH:MM
	EndTime     string    `bson:"end_time" json:"end_time"`     // HH:MM
	StartMinute int       `bson:"start_minute" json:"start_minute"`
	EndMinute   int       `bson:"end_minute" json:"end_minute"`
	Duration    int       `bson:"duration" json:"duration"` // minutes
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// Window returns the appointment's [start, end) interval.
func (a Appointment) Window() Interval {
	return Interval{Start: a.StartMinute, End: a.EndMinute}
}

// Payment records what a student owes for one appointment. It is written in
// the same transaction as the appointment it references.
type Payment struct {
	ID            string    `bson:"id" json:"id"`
	AppointmentID string    `bson:"appointment_id" json:"appointment_id"`
	StudentID     string    `bson:"student_id" json:"student_id"`
	MentorID      string    `bson:"mentor_id" json:"mentor_id"`
	Duration      int       `bson:"duration" json:"duration"`
	Amount        int64     `bson:"amount" json:"amount"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}
