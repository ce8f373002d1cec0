package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carelink-app/carelink-backend/internal/emailchange/domain"
)

type RequestRepository struct {
	db *pgxpool.Pool
}

func NewRequestRepository(db *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{db: db}
}

// CreateIfCooldownPassed inserts a new pending request unless one newer than
// the cooldown window already exists. Stale unverified rows are purged in
// the same transaction, and the partial unique index on (user_id) WHERE
// verified_at IS NULL turns a concurrent duplicate into a suppressed insert
// instead of a second pending row.
func (r *RequestRepository) CreateIfCooldownPassed(ctx context.Context, userID, newEmail, codeHash string) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin email change insert: %w", err)
	}
	defer tx.Rollback(ctx)

	const purge = `
DELETE FROM email_change_requests
WHERE user_id = $1
  AND verified_at IS NULL
  AND sent_at <= now() - interval '60 seconds';`
	if _, err := tx.Exec(ctx, purge, userID); err != nil {
		return false, fmt.Errorf("purge stale requests: %w", err)
	}

	const insert = `
INSERT INTO email_change_requests (id, user_id, new_email, code_hash, sent_at)
SELECT $1, $2, $3, $4, now()
WHERE NOT EXISTS (
	SELECT 1 FROM email_change_requests
	WHERE user_id = $2
	  AND verified_at IS NULL
	  AND sent_at > now() - interval '60 seconds'
)
ON CONFLICT (user_id) WHERE verified_at IS NULL DO NOTHING;`
	tag, err := tx.Exec(ctx, insert, uuid.New().String(), userID, newEmail, codeHash)
	if err != nil {
		return false, fmt.Errorf("insert email change request: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit email change insert: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// NewestUnverified returns the most recent pending request for the user.
func (r *RequestRepository) NewestUnverified(ctx context.Context, userID string) (*domain.Request, error) {
	const q = `
SELECT id, user_id, new_email, code_hash, sent_at, verified_at
FROM email_change_requests
WHERE user_id = $1 AND verified_at IS NULL
ORDER BY sent_at DESC
LIMIT 1;`
	var req domain.Request
	err := r.db.QueryRow(ctx, q, userID).Scan(
		&req.ID, &req.UserID, &req.NewEmail, &req.CodeHash, &req.SentAt, &req.VerifiedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNoPendingRequest
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// MarkVerifiedAndPurge marks exactly one request verified and removes every
// other unverified request for the user, atomically.
func (r *RequestRepository) MarkVerifiedAndPurge(ctx context.Context, userID, requestID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin verify: %w", err)
	}
	defer tx.Rollback(ctx)

	const verify = `
UPDATE email_change_requests
SET verified_at = now()
WHERE id = $1 AND user_id = $2 AND verified_at IS NULL;`
	tag, err := tx.Exec(ctx, verify, requestID, userID)
	if err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoPendingRequest
	}

	const purge = `
DELETE FROM email_change_requests
WHERE user_id = $1 AND verified_at IS NULL AND id <> $2;`
	if _, err := tx.Exec(ctx, purge, userID, requestID); err != nil {
		return fmt.Errorf("purge unverified: %w", err)
	}

	return tx.Commit(ctx)
}
