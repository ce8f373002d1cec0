package auth

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/carelink-app/carelink-backend/config"
)

// Clients bundles the Firebase-backed service handles the facade talks to:
// the identity service, the profile document store and the avatar bucket.
type Clients struct {
	Auth      *auth.Client
	Firestore *firestore.Client
	Bucket    *storage.BucketHandle
}

// InitializeFirebase initializes the Firebase Admin SDK and returns the
// Auth, Firestore and Storage clients off the same app handle.
func InitializeFirebase(ctx context.Context, cfg *config.FirebaseConfig) (*Clients, error) {
	if cfg.CredentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
	}

	opt := option.WithCredentialsFile(cfg.CredentialsPath)
	app, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: cfg.StorageBucket}, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firestore client: %w", err)
	}

	clients := &Clients{Auth: authClient, Firestore: fsClient}

	if cfg.StorageBucket != "" {
		storageClient, err := app.Storage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get Storage client: %w", err)
		}
		bucket, err := storageClient.DefaultBucket()
		if err != nil {
			return nil, fmt.Errorf("failed to get default bucket: %w", err)
		}
		clients.Bucket = bucket
	}

	return clients, nil
}

// Close releases the Firestore client. Auth and Storage handles do not hold
// connections of their own.
func (c *Clients) Close() {
	if c != nil && c.Firestore != nil {
		_ = c.Firestore.Close()
	}
}
