package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/carelink-app/carelink-backend/internal/logging"
	"github.com/carelink-app/carelink-backend/internal/schedule/domain"
)

// AppointmentStore is the persistence surface for appointments.
type AppointmentStore interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Appointment, error)
	Update(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	DeleteCascade(ctx context.Context, userID, id string) error
}

// LogStore is the persistence surface for care logs.
type LogStore interface {
	Create(ctx context.Context, l *domain.Log) (*domain.Log, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Log, error)
	OwnerOf(ctx context.Context, id string) (string, error)
	Update(ctx context.Context, l *domain.Log) (*domain.Log, error)
	Delete(ctx context.Context, userID, id string) error
}

type ScheduleService struct {
	appointments AppointmentStore
	logs         LogStore
}

func NewScheduleService(appointments AppointmentStore, logs LogStore) *ScheduleService {
	return &ScheduleService{appointments: appointments, logs: logs}
}

func validateAppointment(a *domain.Appointment) error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("%w: title", domain.ErrMissingField)
	}
	if a.Date.IsZero() {
		return fmt.Errorf("%w: date", domain.ErrMissingField)
	}
	return nil
}

func (s *ScheduleService) CreateAppointment(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if err := validateAppointment(a); err != nil {
		return nil, err
	}
	created, err := s.appointments.Create(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	logging.NewLogger(ctx).LogInfo("appointment_create", "appointment created", logging.Fields{
		"appointment_id": created.ID,
		"user_id":        created.UserID,
	})
	return created, nil
}

func (s *ScheduleService) ListAppointments(ctx context.Context, userID string) ([]domain.Appointment, error) {
	return s.appointments.ListByUser(ctx, userID)
}

func (s *ScheduleService) UpdateAppointment(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if err := validateAppointment(a); err != nil {
		return nil, err
	}
	return s.appointments.Update(ctx, a)
}

// DeleteAppointment removes the appointment and every log attached to it.
func (s *ScheduleService) DeleteAppointment(ctx context.Context, userID, id string) error {
	if err := s.appointments.DeleteCascade(ctx, userID, id); err != nil {
		return err
	}
	logging.NewLogger(ctx).LogInfo("appointment_delete", "appointment and attached logs removed", logging.Fields{
		"appointment_id": id,
		"user_id":        userID,
	})
	return nil
}

func (s *ScheduleService) CreateLog(ctx context.Context, l *domain.Log) (*domain.Log, error) {
	if strings.TrimSpace(l.Text) == "" {
		return nil, fmt.Errorf("%w: text", domain.ErrMissingField)
	}
	if l.Date.IsZero() {
		return nil, fmt.Errorf("%w: date", domain.ErrMissingField)
	}
	return s.logs.Create(ctx, l)
}

func (s *ScheduleService) ListLogs(ctx context.Context, userID string) ([]domain.Log, error) {
	return s.logs.ListByUser(ctx, userID)
}

// UpdateLog rejects writes against someone else's log with ErrNotOwner,
// keeping "exists but not yours" distinct from "does not exist".
func (s *ScheduleService) UpdateLog(ctx context.Context, l *domain.Log) (*domain.Log, error) {
	if strings.TrimSpace(l.Text) == "" {
		return nil, fmt.Errorf("%w: text", domain.ErrMissingField)
	}
	owner, err := s.logs.OwnerOf(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	if owner != l.UserID {
		return nil, domain.ErrNotOwner
	}
	return s.logs.Update(ctx, l)
}

func (s *ScheduleService) DeleteLog(ctx context.Context, userID, id string) error {
	owner, err := s.logs.OwnerOf(ctx, id)
	if err != nil {
		return err
	}
	if owner != userID {
		return domain.ErrNotOwner
	}
	return s.logs.Delete(ctx, userID, id)
}
