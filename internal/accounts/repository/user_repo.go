package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carelink-app/carelink-backend/internal/accounts/domain"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, relation_to_person, family_id,
       coalesce(avatar_path, ''), coalesce(avatar_url, ''),
       main_challenges, help_needs, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Relation,
		&u.FamilyID,
		&u.AvatarPath,
		&u.AvatarURL,
		&u.MainChallenges,
		&u.HelpNeeds,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts the profile row minted at registration.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	const q = `
INSERT INTO users (id, name, email, relation_to_person, family_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at, updated_at;
`
	err := r.db.QueryRow(ctx, q, u.ID, u.Name, u.Email, u.Relation, u.FamilyID).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1;`
	return scanUser(r.db.QueryRow(ctx, q, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	return scanUser(r.db.QueryRow(ctx, q, email))
}

// UpdateProfile applies the editable fields and returns the fresh row.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, req *domain.UpdateProfileRequest) (*domain.User, error) {
	const q = `
UPDATE users
SET name = coalesce($2, name),
    relation_to_person = coalesce($3, relation_to_person),
    main_challenges = coalesce($4, main_challenges),
    help_needs = coalesce($5, help_needs),
    updated_at = now()
WHERE id = $1
RETURNING ` + userColumns + `;`
	return scanUser(r.db.QueryRow(ctx, q, id, req.Name, req.Relation, req.MainChallenges, req.HelpNeeds))
}

func (r *UserRepository) UpdateEmail(ctx context.Context, id, email string) error {
	const q = `UPDATE users SET email = $2, updated_at = now() WHERE id = $1;`
	tag, err := r.db.Exec(ctx, q, id, email)
	if err != nil {
		return fmt.Errorf("update email: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, id, path, signedURL string) error {
	const q = `UPDATE users SET avatar_path = $2, avatar_url = $3, updated_at = now() WHERE id = $1;`
	tag, err := r.db.Exec(ctx, q, id, path, signedURL)
	if err != nil {
		return fmt.Errorf("update avatar: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// TouchUpdated bumps updated_at, used after credential rotations that change
// nothing else on the row.
func (r *UserRepository) TouchUpdated(ctx context.Context, id string) error {
	const q = `UPDATE users SET updated_at = now() WHERE id = $1;`
	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// DeleteCascade removes every relational row tied to the user in one
// transaction: logs first (they reference appointments), then appointments,
// family links, feedback, pending email changes and finally the user row.
func (r *UserRepository) DeleteCascade(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete cascade: %w", err)
	}
	defer tx.Rollback(ctx)

	statements := []string{
		`DELETE FROM logs WHERE user_id = $1;`,
		`DELETE FROM appointments WHERE user_id = $1;`,
		`DELETE FROM family_links WHERE creator_id = $1;`,
		`DELETE FROM feedback WHERE user_id = $1;`,
		`DELETE FROM email_change_requests WHERE user_id = $1;`,
	}
	for _, q := range statements {
		if _, err := tx.Exec(ctx, q, id); err != nil {
			return fmt.Errorf("delete cascade: %w", err)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete user row: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return tx.Commit(ctx)
}
