package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelink-app/carelink-backend/internal/guides/domain"
)

func setupCache(t *testing.T) (*RelationCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRelationCache(client), mr
}

func TestCacheRoundTrip(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "child")
	assert.ErrorIs(t, err, ErrMiss)

	guides := []domain.Guide{
		{ID: 1, Title: "Handling repeated questions", Relation: "child", Tags: []string{"Communication"}},
	}
	require.NoError(t, c.Put(ctx, "child", guides))

	got, err := c.Get(ctx, "child")
	require.NoError(t, err)
	assert.Equal(t, guides, got)

	// A different relation is a separate entry.
	_, err = c.Get(ctx, "spouse")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestCacheExpiry(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "child", []domain.Guide{{ID: 1}}))

	mr.FastForward(6 * time.Minute)

	_, err := c.Get(ctx, "child")
	assert.ErrorIs(t, err, ErrMiss)
}
