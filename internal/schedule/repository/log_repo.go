package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carelink-app/carelink-backend/internal/schedule/domain"
)

type LogRepository struct {
	db *pgxpool.Pool
}

func NewLogRepository(db *pgxpool.Pool) *LogRepository {
	return &LogRepository{db: db}
}

const logColumns = `id, user_id, appointment_id, text, date, created_at`

func scanLog(row pgx.Row) (*domain.Log, error) {
	var l domain.Log
	err := row.Scan(&l.ID, &l.UserID, &l.AppointmentID, &l.Text, &l.Date, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrLogNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LogRepository) Create(ctx context.Context, l *domain.Log) (*domain.Log, error) {
	const q = `
INSERT INTO logs (id, user_id, appointment_id, text, date)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + logColumns + `;`
	return scanLog(r.db.QueryRow(ctx, q,
		uuid.New().String(), l.UserID, l.AppointmentID, l.Text, l.Date))
}

// ListByUser returns the user's logs, newest first.
func (r *LogRepository) ListByUser(ctx context.Context, userID string) ([]domain.Log, error) {
	const q = `
SELECT ` + logColumns + `
FROM logs
WHERE user_id = $1
ORDER BY date DESC, created_at DESC;`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Log, 0, 16)
	for rows.Next() {
		var l domain.Log
		if err := rows.Scan(&l.ID, &l.UserID, &l.AppointmentID, &l.Text, &l.Date, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// OwnerOf reports who a log belongs to, for ownership checks before writes.
func (r *LogRepository) OwnerOf(ctx context.Context, id string) (string, error) {
	const q = `SELECT user_id FROM logs WHERE id = $1;`
	var owner string
	err := r.db.QueryRow(ctx, q, id).Scan(&owner)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrLogNotFound
	}
	if err != nil {
		return "", err
	}
	return owner, nil
}

func (r *LogRepository) Update(ctx context.Context, l *domain.Log) (*domain.Log, error) {
	const q = `
UPDATE logs
SET text = $3, date = $4
WHERE id = $1 AND user_id = $2
RETURNING ` + logColumns + `;`
	return scanLog(r.db.QueryRow(ctx, q, l.ID, l.UserID, l.Text, l.Date))
}

func (r *LogRepository) Delete(ctx context.Context, userID, id string) error {
	const q = `DELETE FROM logs WHERE id = $1 AND user_id = $2;`
	tag, err := r.db.Exec(ctx, q, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLogNotFound
	}
	return nil
}
