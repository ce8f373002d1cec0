package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/carelink-app/carelink-backend/internal/family/domain"
)

// LinkRepo is the persistence surface the service needs.
type LinkRepo interface {
	Create(ctx context.Context, creatorID, familyID string) (*domain.FamilyLink, error)
	GetByCreator(ctx context.Context, creatorID string) (*domain.FamilyLink, error)
	ConsumeCode(ctx context.Context, code string) (*domain.FamilyLink, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.FamilyLink, error)
}

type FamilyService struct {
	links LinkRepo
}

func NewFamilyService(links LinkRepo) *FamilyService {
	return &FamilyService{links: links}
}

// JoinByCode attaches a registrant to the family behind an invite code.
// The member count is bumped atomically with the lookup.
func (s *FamilyService) JoinByCode(ctx context.Context, code string) (*domain.FamilyLink, error) {
	return s.links.ConsumeCode(ctx, code)
}

// CreateForNewUser mints a fresh family grouping plus its invite link for a
// registrant who supplied no code.
func (s *FamilyService) CreateForNewUser(ctx context.Context, creatorID string) (*domain.FamilyLink, error) {
	return s.links.Create(ctx, creatorID, uuid.New().String())
}

// EnsureForUser returns the user's active link, minting one lazily inside
// their existing family when none exists yet.
func (s *FamilyService) EnsureForUser(ctx context.Context, creatorID, familyID string) (*domain.FamilyLink, error) {
	link, err := s.links.GetByCreator(ctx, creatorID)
	if err == nil {
		return link, nil
	}
	if !errors.Is(err, domain.ErrLinkNotFound) {
		return nil, err
	}
	return s.links.Create(ctx, creatorID, familyID)
}

func (s *FamilyService) GetForUser(ctx context.Context, creatorID string) (*domain.FamilyLink, error) {
	return s.links.GetByCreator(ctx, creatorID)
}

func (s *FamilyService) SetStatus(ctx context.Context, id, status string) (*domain.FamilyLink, error) {
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	return s.links.UpdateStatus(ctx, id, status)
}
