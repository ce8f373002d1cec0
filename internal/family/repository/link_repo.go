package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carelink-app/carelink-backend/internal/family"
	"github.com/carelink-app/carelink-backend/internal/family/domain"
)

type LinkRepository struct {
	db *pgxpool.Pool
}

func NewLinkRepository(db *pgxpool.Pool) *LinkRepository {
	return &LinkRepository{db: db}
}

const linkColumns = `id, family_id, creator_id, unique_code, status, member_count, created_at, updated_at`

func scanLink(row pgx.Row) (*domain.FamilyLink, error) {
	var l domain.FamilyLink
	err := row.Scan(&l.ID, &l.FamilyID, &l.CreatorID, &l.UniqueCode, &l.Status,
		&l.MemberCount, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrLinkNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create mints a link with a fresh invite code, retrying on the rare code
// collision.
func (r *LinkRepository) Create(ctx context.Context, creatorID, familyID string) (*domain.FamilyLink, error) {
	for i := 0; i < 5; i++ {
		code, err := family.NewInviteCode()
		if err != nil {
			return nil, err
		}

		const q = `
INSERT INTO family_links (id, family_id, creator_id, unique_code, status, member_count)
VALUES ($1, $2, $3, $4, 'active', 1)
RETURNING ` + linkColumns + `;`
		link, err := scanLink(r.db.QueryRow(ctx, q, uuid.New().String(), familyID, creatorID, code))
		if err == nil {
			return link, nil
		}

		// unique violation on unique_code → retry with a new code
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("failed to generate unique invite code")
}

// GetByCreator returns the creator's active link, if any.
func (r *LinkRepository) GetByCreator(ctx context.Context, creatorID string) (*domain.FamilyLink, error) {
	const q = `
SELECT ` + linkColumns + `
FROM family_links
WHERE creator_id = $1 AND status = 'active'
ORDER BY created_at DESC
LIMIT 1;`
	return scanLink(r.db.QueryRow(ctx, q, creatorID))
}

// ConsumeCode resolves an active invite code to its family and bumps the
// member count in the same statement.
func (r *LinkRepository) ConsumeCode(ctx context.Context, code string) (*domain.FamilyLink, error) {
	const q = `
UPDATE family_links
SET member_count = member_count + 1, updated_at = now()
WHERE unique_code = $1 AND status = 'active'
RETURNING ` + linkColumns + `;`
	link, err := scanLink(r.db.QueryRow(ctx, q, code))
	if errors.Is(err, domain.ErrLinkNotFound) {
		return nil, domain.ErrCodeInvalid
	}
	return link, err
}

func (r *LinkRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.FamilyLink, error) {
	const q = `
UPDATE family_links
SET status = $2, updated_at = now()
WHERE id = $1
RETURNING ` + linkColumns + `;`
	return scanLink(r.db.QueryRow(ctx, q, id, status))
}
