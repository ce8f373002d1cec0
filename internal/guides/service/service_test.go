package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountsdomain "github.com/carelink-app/carelink-backend/internal/accounts/domain"
	"github.com/carelink-app/carelink-backend/internal/guides/cache"
	"github.com/carelink-app/carelink-backend/internal/guides/domain"
)

func TestActiveTermsPrecedence(t *testing.T) {
	assert.Equal(t, []string{"memory"}, activeTerms([]string{"memory"}, []string{"respite"}))
	assert.Equal(t, []string{"respite"}, activeTerms(nil, []string{"respite"}))
	assert.Empty(t, activeTerms(nil, nil))
}

func TestMatchGuidesCaseInsensitiveContains(t *testing.T) {
	guides := []domain.Guide{
		{ID: 1, Tags: []string{"Communication"}},
		{ID: 2, HelpTags: []string{"Daily Routines"}},
		{ID: 3, Tags: []string{"Legal planning"}},
	}

	matched := matchGuides(guides, []string{"COMMUNICATION"})
	require.Len(t, matched, 1)
	assert.Equal(t, 1, matched[0].ID)

	// Substring match, not equality.
	matched = matchGuides(guides, []string{"routine"})
	require.Len(t, matched, 1)
	assert.Equal(t, 2, matched[0].ID)

	matched = matchGuides(guides, []string{"nothing"})
	assert.Empty(t, matched)
}

func TestMatchGuidesEmptyTermsKeepsAll(t *testing.T) {
	guides := []domain.Guide{{ID: 1}, {ID: 2}}
	assert.Equal(t, guides, matchGuides(guides, nil))
}

type fakeUsers struct {
	user *accountsdomain.User
	err  error
}

func (f *fakeUsers) GetByID(_ context.Context, _ string) (*accountsdomain.User, error) {
	return f.user, f.err
}

type fakeSource struct {
	guides []domain.Guide
	calls  int
}

func (f *fakeSource) FetchByRelation(_ context.Context, _ string) ([]domain.Guide, error) {
	f.calls++
	return f.guides, nil
}

type fakeCache struct {
	entries map[string][]domain.Guide
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]domain.Guide{}}
}

func (f *fakeCache) Get(_ context.Context, relation string) ([]domain.Guide, error) {
	if g, ok := f.entries[relation]; ok {
		return g, nil
	}
	return nil, cache.ErrMiss
}

func (f *fakeCache) Put(_ context.Context, relation string, guides []domain.Guide) error {
	f.entries[relation] = guides
	return nil
}

func TestMatchForUserFiltersByChallenges(t *testing.T) {
	users := &fakeUsers{user: &accountsdomain.User{
		ID:             "u1",
		Relation:       "child",
		MainChallenges: []string{"communication"},
		HelpNeeds:      []string{"respite"},
	}}
	source := &fakeSource{guides: []domain.Guide{
		{ID: 1, Tags: []string{"Communication"}},
		{ID: 2, Tags: []string{"Respite care"}},
	}}
	svc := NewGuideService(users, source, newFakeCache())

	matched, err := svc.MatchForUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, 1, matched[0].ID)
}

func TestMatchForUserSecondCallServedFromCache(t *testing.T) {
	users := &fakeUsers{user: &accountsdomain.User{ID: "u1", Relation: "child"}}
	source := &fakeSource{guides: []domain.Guide{{ID: 1}}}
	svc := NewGuideService(users, source, newFakeCache())

	_, err := svc.MatchForUser(context.Background(), "u1")
	require.NoError(t, err)
	_, err = svc.MatchForUser(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 1, source.calls)
}

func TestMatchForUserNoRelation(t *testing.T) {
	users := &fakeUsers{user: &accountsdomain.User{ID: "u1"}}
	svc := NewGuideService(users, &fakeSource{}, newFakeCache())

	_, err := svc.MatchForUser(context.Background(), "u1")
	assert.ErrorIs(t, err, domain.ErrRelationUnknown)
}

func TestMatchForUserUserNotFound(t *testing.T) {
	users := &fakeUsers{err: accountsdomain.ErrUserNotFound}
	svc := NewGuideService(users, &fakeSource{}, newFakeCache())

	_, err := svc.MatchForUser(context.Background(), "missing")
	assert.ErrorIs(t, err, accountsdomain.ErrUserNotFound)
}
