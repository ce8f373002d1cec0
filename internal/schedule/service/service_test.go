package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelink-app/carelink-backend/internal/schedule/domain"
)

type fakeAppointments struct {
	byID    map[string]*domain.Appointment
	deleted []string
}

func newFakeAppointments() *fakeAppointments {
	return &fakeAppointments{byID: map[string]*domain.Appointment{}}
}

func (f *fakeAppointments) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	stored := *a
	stored.ID = "appt-1"
	f.byID[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeAppointments) ListByUser(_ context.Context, userID string) ([]domain.Appointment, error) {
	var out []domain.Appointment
	for _, a := range f.byID {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointments) Update(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	existing, ok := f.byID[a.ID]
	if !ok || existing.UserID != a.UserID {
		return nil, domain.ErrAppointmentNotFound
	}
	f.byID[a.ID] = a
	return a, nil
}

func (f *fakeAppointments) DeleteCascade(_ context.Context, userID, id string) error {
	existing, ok := f.byID[id]
	if !ok || existing.UserID != userID {
		return domain.ErrAppointmentNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeLogs struct {
	byID    map[string]*domain.Log
	updates int
	deletes int
}

func newFakeLogs() *fakeLogs {
	return &fakeLogs{byID: map[string]*domain.Log{}}
}

func (f *fakeLogs) Create(_ context.Context, l *domain.Log) (*domain.Log, error) {
	stored := *l
	stored.ID = "log-1"
	f.byID[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeLogs) ListByUser(_ context.Context, userID string) ([]domain.Log, error) {
	var out []domain.Log
	for _, l := range f.byID {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeLogs) OwnerOf(_ context.Context, id string) (string, error) {
	l, ok := f.byID[id]
	if !ok {
		return "", domain.ErrLogNotFound
	}
	return l.UserID, nil
}

func (f *fakeLogs) Update(_ context.Context, l *domain.Log) (*domain.Log, error) {
	existing, ok := f.byID[l.ID]
	if !ok || existing.UserID != l.UserID {
		return nil, domain.ErrLogNotFound
	}
	f.byID[l.ID] = l
	f.updates++
	return l, nil
}

func (f *fakeLogs) Delete(_ context.Context, userID, id string) error {
	existing, ok := f.byID[id]
	if !ok || existing.UserID != userID {
		return domain.ErrLogNotFound
	}
	delete(f.byID, id)
	f.deletes++
	return nil
}

func newService() (*ScheduleService, *fakeAppointments, *fakeLogs) {
	appts := newFakeAppointments()
	logs := newFakeLogs()
	return NewScheduleService(appts, logs), appts, logs
}

func TestCreateAppointmentRequiresTitleAndDate(t *testing.T) {
	svc, appts, _ := newService()

	_, err := svc.CreateAppointment(context.Background(), &domain.Appointment{
		UserID: "u1",
		Date:   time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrMissingField)

	_, err = svc.CreateAppointment(context.Background(), &domain.Appointment{
		UserID: "u1",
		Title:  "Memory clinic",
	})
	assert.ErrorIs(t, err, domain.ErrMissingField)
	assert.Empty(t, appts.byID)
}

func TestCreateAndListAppointments(t *testing.T) {
	svc, _, _ := newService()

	created, err := svc.CreateAppointment(context.Background(), &domain.Appointment{
		UserID:    "u1",
		Title:     "Memory clinic",
		Date:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		EndTime:   "10:00",
		Reminder:  true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	listed, err := svc.ListAppointments(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Memory clinic", listed[0].Title)

	other, err := svc.ListAppointments(context.Background(), "u2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestDeleteAppointmentScopedToOwner(t *testing.T) {
	svc, appts, _ := newService()
	appts.byID["appt-1"] = &domain.Appointment{ID: "appt-1", UserID: "u1"}

	err := svc.DeleteAppointment(context.Background(), "u2", "appt-1")
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)

	err = svc.DeleteAppointment(context.Background(), "u1", "appt-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"appt-1"}, appts.deleted)
}

func TestUpdateLogOwnership(t *testing.T) {
	svc, _, logs := newService()
	logs.byID["log-1"] = &domain.Log{ID: "log-1", UserID: "u1", Text: "slept well"}

	_, err := svc.UpdateLog(context.Background(), &domain.Log{
		ID: "log-1", UserID: "u2", Text: "tampered", Date: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrNotOwner)
	assert.Equal(t, "slept well", logs.byID["log-1"].Text)

	_, err = svc.UpdateLog(context.Background(), &domain.Log{
		ID: "log-1", UserID: "u1", Text: "restless night", Date: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.updates)
	assert.Equal(t, "restless night", logs.byID["log-1"].Text)
}

func TestUpdateLogMissingReturnsNotFound(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.UpdateLog(context.Background(), &domain.Log{
		ID: "nope", UserID: "u1", Text: "x", Date: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrLogNotFound)
}

func TestDeleteLogOwnership(t *testing.T) {
	svc, _, logs := newService()
	logs.byID["log-1"] = &domain.Log{ID: "log-1", UserID: "u1"}

	err := svc.DeleteLog(context.Background(), "u2", "log-1")
	assert.ErrorIs(t, err, domain.ErrNotOwner)
	assert.Equal(t, 0, logs.deletes)

	err = svc.DeleteLog(context.Background(), "u1", "log-1")
	require.NoError(t, err)
	assert.Equal(t, 1, logs.deletes)
}

func TestCreateLogRequiresText(t *testing.T) {
	svc, _, logs := newService()

	_, err := svc.CreateLog(context.Background(), &domain.Log{
		UserID: "u1", Date: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrMissingField)
	assert.Empty(t, logs.byID)
}
