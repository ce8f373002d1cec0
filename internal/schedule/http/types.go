package http

import (
	"context"
	"time"

	"github.com/carelink-app/carelink-backend/internal/schedule/domain"
)

// Schedule is the service surface the handlers call. *service.ScheduleService
// satisfies it; tests substitute a fake.
type Schedule interface {
	CreateAppointment(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	ListAppointments(ctx context.Context, userID string) ([]domain.Appointment, error)
	UpdateAppointment(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	DeleteAppointment(ctx context.Context, userID, id string) error

	CreateLog(ctx context.Context, l *domain.Log) (*domain.Log, error)
	ListLogs(ctx context.Context, userID string) ([]domain.Log, error)
	UpdateLog(ctx context.Context, l *domain.Log) (*domain.Log, error)
	DeleteLog(ctx context.Context, userID, id string) error
}

type Handler struct {
	schedule Schedule
}

func New(schedule Schedule) *Handler {
	return &Handler{schedule: schedule}
}

type appointmentBody struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Reminder    bool      `json:"reminder"`
}

type logBody struct {
	AppointmentID *string   `json:"appointmentId,omitempty"`
	Text          string    `json:"text"`
	Date          time.Time `json:"date"`
}
