package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	gcs "cloud.google.com/go/storage"
)

// FirebaseBucket adapts the Firebase default bucket to the avatar store
// surface.
type FirebaseBucket struct {
	bucket *gcs.BucketHandle
}

func NewFirebaseBucket(bucket *gcs.BucketHandle) *FirebaseBucket {
	return &FirebaseBucket{bucket: bucket}
}

func (b *FirebaseBucket) Write(ctx context.Context, key, contentType string, r io.Reader) error {
	w := b.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize object %s: %w", key, err)
	}
	return nil
}

func (b *FirebaseBucket) SignedURL(key string, expires time.Time) (string, error) {
	url, err := b.bucket.SignedURL(key, &gcs.SignedURLOptions{
		Method:  "GET",
		Expires: expires,
		Scheme:  gcs.SigningSchemeV4,
	})
	if err != nil {
		return "", fmt.Errorf("sign url for %s: %w", key, err)
	}
	return url, nil
}
