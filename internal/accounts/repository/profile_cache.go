package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/carelink-app/carelink-backend/internal/accounts/domain"
)

const (
	usersCollection         = "users"
	pushTokensCollection    = "push_tokens"
	notificationsCollection = "notifications"
)

// ProfileCache mirrors the authoritative Postgres profile into Firestore so
// the mobile client's document listeners keep working. Writes here follow a
// successful Postgres write; reads never come back through it for decisions.
type ProfileCache struct {
	fs *firestore.Client
}

func NewProfileCache(fs *firestore.Client) *ProfileCache {
	return &ProfileCache{fs: fs}
}

func (c *ProfileCache) Put(ctx context.Context, u *domain.User) error {
	doc := map[string]interface{}{
		"name":                     u.Name,
		"email":                    u.Email,
		"relationToDementiaPerson": u.Relation,
		"familyId":                 u.FamilyID,
		"avatarPath":               u.AvatarPath,
		"avatarUrl":                u.AvatarURL,
		"mainChallenges":           u.MainChallenges,
		"helpNeeds":                u.HelpNeeds,
		"updatedAt":                firestore.ServerTimestamp,
	}
	if _, err := c.fs.Collection(usersCollection).Doc(u.ID).Set(ctx, doc, firestore.MergeAll); err != nil {
		return fmt.Errorf("profile cache put: %w", err)
	}
	return nil
}

// SetFields patches individual cached fields, e.g. the email after a
// confirmed change or the avatar URL after an upload.
func (c *ProfileCache) SetFields(ctx context.Context, uid string, fields map[string]interface{}) error {
	fields["updatedAt"] = firestore.ServerTimestamp
	if _, err := c.fs.Collection(usersCollection).Doc(uid).Set(ctx, fields, firestore.MergeAll); err != nil {
		return fmt.Errorf("profile cache patch: %w", err)
	}
	return nil
}

// DeleteUserDocs removes the profile doc plus every push token and
// notification doc owned by the user in a single batched commit.
func (c *ProfileCache) DeleteUserDocs(ctx context.Context, uid string) error {
	batch := c.fs.Batch()
	batch.Delete(c.fs.Collection(usersCollection).Doc(uid))

	for _, coll := range []string{pushTokensCollection, notificationsCollection} {
		iter := c.fs.Collection(coll).Where("userId", "==", uid).Documents(ctx)
		for {
			snap, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return fmt.Errorf("list %s for delete: %w", coll, err)
			}
			batch.Delete(snap.Ref)
		}
	}

	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("batched delete: %w", err)
	}
	return nil
}
