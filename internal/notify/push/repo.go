package push

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

const (
	pushTokensCollection    = "push_tokens"
	notificationsCollection = "notifications"
)

// Token is a device registration for push delivery. Delivery itself happens
// outside this service; we only keep the registry current.
type Token struct {
	UserID    string    `json:"userId" firestore:"userId"`
	Token     string    `json:"token" firestore:"token"`
	Platform  string    `json:"platform,omitempty" firestore:"platform,omitempty"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// Notification is a read-only feed item written by external processes.
type Notification struct {
	ID        string    `json:"id" firestore:"-"`
	UserID    string    `json:"userId" firestore:"userId"`
	Title     string    `json:"title" firestore:"title"`
	Body      string    `json:"body" firestore:"body"`
	Read      bool      `json:"read" firestore:"read"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

// Repository stores push tokens and reads the notification feed in Firestore.
type Repository struct {
	fs *firestore.Client
}

func NewRepository(fs *firestore.Client) *Repository {
	return &Repository{fs: fs}
}

// UpsertToken keys the doc by token value so re-registering a device moves it
// between users instead of duplicating it.
func (r *Repository) UpsertToken(ctx context.Context, t *Token) error {
	t.UpdatedAt = time.Now()
	_, err := r.fs.Collection(pushTokensCollection).Doc(t.Token).Set(ctx, t)
	if err != nil {
		return fmt.Errorf("upsert push token: %w", err)
	}
	return nil
}

// ListNotifications returns the user's feed, newest first.
func (r *Repository) ListNotifications(ctx context.Context, userID string) ([]Notification, error) {
	iter := r.fs.Collection(notificationsCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	out := make([]Notification, 0, 16)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list notifications: %w", err)
		}
		var n Notification
		if err := snap.DataTo(&n); err != nil {
			return nil, fmt.Errorf("decode notification: %w", err)
		}
		n.ID = snap.Ref.ID
		out = append(out, n)
	}
	return out, nil
}
