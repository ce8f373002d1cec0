package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	accountsdomain "github.com/carelink-app/carelink-backend/internal/accounts/domain"
	"github.com/carelink-app/carelink-backend/internal/guides/cache"
	"github.com/carelink-app/carelink-backend/internal/guides/domain"
	"github.com/carelink-app/carelink-backend/internal/logging"
)

// ContentSource fetches the relation-scoped guide set from the CMS.
type ContentSource interface {
	FetchByRelation(ctx context.Context, relation string) ([]domain.Guide, error)
}

// RelationCache is the read-through cache in front of the CMS.
type RelationCache interface {
	Get(ctx context.Context, relation string) ([]domain.Guide, error)
	Put(ctx context.Context, relation string, guides []domain.Guide) error
}

// UserStore loads the personalization answers matching runs on.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*accountsdomain.User, error)
}

type GuideService struct {
	users  UserStore
	source ContentSource
	cache  RelationCache
}

func NewGuideService(users UserStore, source ContentSource, rc RelationCache) *GuideService {
	return &GuideService{users: users, source: source, cache: rc}
}

// MatchForUser returns the guides for the user's relation, filtered by their
// challenge/help-need answers. The CMS result set is cached per relation; a
// cache failure falls through to the CMS rather than failing the request.
func (s *GuideService) MatchForUser(ctx context.Context, userID string) ([]domain.Guide, error) {
	logger := logging.NewLogger(ctx)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	relation := strings.TrimSpace(user.Relation)
	if relation == "" {
		return nil, domain.ErrRelationUnknown
	}

	guides, err := s.cache.Get(ctx, relation)
	switch {
	case err == nil:
	case errors.Is(err, cache.ErrMiss):
		guides, err = s.source.FetchByRelation(ctx, relation)
		if err != nil {
			return nil, fmt.Errorf("fetch guides: %w", err)
		}
		if putErr := s.cache.Put(ctx, relation, guides); putErr != nil {
			logger.LogWarnf("match_guides", "cache write failed: %v", putErr)
		}
	default:
		logger.LogWarnf("match_guides", "cache read failed: %v", err)
		guides, err = s.source.FetchByRelation(ctx, relation)
		if err != nil {
			return nil, fmt.Errorf("fetch guides: %w", err)
		}
	}

	terms := activeTerms(user.MainChallenges, user.HelpNeeds)
	matched := matchGuides(guides, terms)

	logger.LogInfof("match_guides", "user_id=%s relation=%s fetched=%d matched=%d",
		userID, relation, len(guides), len(matched))
	return matched, nil
}
