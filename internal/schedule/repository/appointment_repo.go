package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carelink-app/carelink-backend/internal/schedule/domain"
)

type AppointmentRepository struct {
	db *pgxpool.Pool
}

func NewAppointmentRepository(db *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

const apptColumns = `id, user_id, title, coalesce(description, ''), date, start_time, end_time, reminder, created_at, updated_at`

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var a domain.Appointment
	err := row.Scan(&a.ID, &a.UserID, &a.Title, &a.Description, &a.Date,
		&a.StartTime, &a.EndTime, &a.Reminder, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	const q = `
INSERT INTO appointments (id, user_id, title, description, date, start_time, end_time, reminder)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + apptColumns + `;`
	return scanAppointment(r.db.QueryRow(ctx, q,
		uuid.New().String(), a.UserID, a.Title, a.Description, a.Date, a.StartTime, a.EndTime, a.Reminder))
}

// ListByUser returns the user's appointments, soonest first.
func (r *AppointmentRepository) ListByUser(ctx context.Context, userID string) ([]domain.Appointment, error) {
	const q = `
SELECT ` + apptColumns + `
FROM appointments
WHERE user_id = $1
ORDER BY date ASC, start_time ASC;`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Appointment, 0, 16)
	for rows.Next() {
		var a domain.Appointment
		if err := rows.Scan(&a.ID, &a.UserID, &a.Title, &a.Description, &a.Date,
			&a.StartTime, &a.EndTime, &a.Reminder, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Update rewrites the row, scoped by owner.
func (r *AppointmentRepository) Update(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	const q = `
UPDATE appointments
SET title = $3, description = $4, date = $5, start_time = $6, end_time = $7, reminder = $8, updated_at = now()
WHERE id = $1 AND user_id = $2
RETURNING ` + apptColumns + `;`
	return scanAppointment(r.db.QueryRow(ctx, q,
		a.ID, a.UserID, a.Title, a.Description, a.Date, a.StartTime, a.EndTime, a.Reminder))
}

// DeleteCascade removes the appointment's logs and then the appointment in
// one transaction, so a failure between the two cannot orphan rows.
// Returns ErrAppointmentNotFound when no row matched the user.
func (r *AppointmentRepository) DeleteCascade(ctx context.Context, userID, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin appointment delete: %w", err)
	}
	defer tx.Rollback(ctx)

	const deleteLogs = `DELETE FROM logs WHERE appointment_id = $1 AND user_id = $2;`
	if _, err := tx.Exec(ctx, deleteLogs, id, userID); err != nil {
		return fmt.Errorf("delete appointment logs: %w", err)
	}

	const deleteAppt = `DELETE FROM appointments WHERE id = $1 AND user_id = $2;`
	tag, err := tx.Exec(ctx, deleteAppt, id, userID)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAppointmentNotFound
	}

	return tx.Commit(ctx)
}
