package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carelink-app/carelink-backend/internal/feedback/domain"
)

type FeedbackRepository struct {
	db *pgxpool.Pool
}

func NewFeedbackRepository(db *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error) {
	const q = `
INSERT INTO feedback (id, user_id, rating, comment)
VALUES ($1, $2, $3, $4)
RETURNING id, user_id, rating, coalesce(comment, ''), created_at;`
	var out domain.Feedback
	err := r.db.QueryRow(ctx, q, uuid.New().String(), f.UserID, f.Rating, f.Comment).
		Scan(&out.ID, &out.UserID, &out.Rating, &out.Comment, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
