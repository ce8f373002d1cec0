package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelink-app/carelink-backend/internal/family/domain"
)

type fakeLinks struct {
	byCreator map[string]*domain.FamilyLink
	byCode    map[string]*domain.FamilyLink
	created   []string
}

func newFakeLinks() *fakeLinks {
	return &fakeLinks{
		byCreator: map[string]*domain.FamilyLink{},
		byCode:    map[string]*domain.FamilyLink{},
	}
}

func (f *fakeLinks) Create(_ context.Context, creatorID, familyID string) (*domain.FamilyLink, error) {
	link := &domain.FamilyLink{
		ID:          "link-" + creatorID,
		FamilyID:    familyID,
		CreatorID:   creatorID,
		UniqueCode:  "CODE" + creatorID,
		Status:      domain.StatusActive,
		MemberCount: 1,
	}
	f.byCreator[creatorID] = link
	f.byCode[link.UniqueCode] = link
	f.created = append(f.created, creatorID)
	return link, nil
}

func (f *fakeLinks) GetByCreator(_ context.Context, creatorID string) (*domain.FamilyLink, error) {
	link, ok := f.byCreator[creatorID]
	if !ok {
		return nil, domain.ErrLinkNotFound
	}
	return link, nil
}

func (f *fakeLinks) ConsumeCode(_ context.Context, code string) (*domain.FamilyLink, error) {
	link, ok := f.byCode[code]
	if !ok {
		return nil, domain.ErrCodeInvalid
	}
	link.MemberCount++
	return link, nil
}

func (f *fakeLinks) UpdateStatus(_ context.Context, id, status string) (*domain.FamilyLink, error) {
	for _, link := range f.byCreator {
		if link.ID == id {
			link.Status = status
			return link, nil
		}
	}
	return nil, domain.ErrLinkNotFound
}

func TestEnsureForUserLazilyCreates(t *testing.T) {
	links := newFakeLinks()
	svc := NewFamilyService(links)

	link, err := svc.EnsureForUser(context.Background(), "u1", "fam-1")
	require.NoError(t, err)
	assert.Equal(t, "fam-1", link.FamilyID)
	assert.Equal(t, []string{"u1"}, links.created)

	// Second call returns the same link without creating another.
	again, err := svc.EnsureForUser(context.Background(), "u1", "fam-1")
	require.NoError(t, err)
	assert.Equal(t, link.ID, again.ID)
	assert.Len(t, links.created, 1)
}

func TestJoinByCodeBumpsMemberCount(t *testing.T) {
	links := newFakeLinks()
	svc := NewFamilyService(links)

	created, err := svc.CreateForNewUser(context.Background(), "u1")
	require.NoError(t, err)

	joined, err := svc.JoinByCode(context.Background(), created.UniqueCode)
	require.NoError(t, err)
	assert.Equal(t, created.FamilyID, joined.FamilyID)
	assert.Equal(t, 2, joined.MemberCount)

	_, err = svc.JoinByCode(context.Background(), "WRONG")
	assert.ErrorIs(t, err, domain.ErrCodeInvalid)
}

func TestSetStatusValidation(t *testing.T) {
	links := newFakeLinks()
	svc := NewFamilyService(links)

	link, err := svc.CreateForNewUser(context.Background(), "u1")
	require.NoError(t, err)

	_, err = svc.SetStatus(context.Background(), link.ID, "archived")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	updated, err := svc.SetStatus(context.Background(), link.ID, domain.StatusInactive)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInactive, updated.Status)
}
