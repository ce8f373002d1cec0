package domain

import (
	"errors"
	"time"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrLogNotFound         = errors.New("log not found")
	ErrNotOwner            = errors.New("record belongs to another user")
	ErrMissingField        = errors.New("missing required field")
)

// Appointment is a calendar entry owned by a single user. There is no
// conflict detection and no recurrence beyond the reminder flag.
type Appointment struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Reminder    bool      `json:"reminder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Log is a free-text care note, optionally attached to an appointment.
type Log struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	AppointmentID *string   `json:"appointmentId,omitempty"`
	Text          string    `json:"text"`
	Date          time.Time `json:"date"`
	CreatedAt     time.Time `json:"createdAt"`
}
