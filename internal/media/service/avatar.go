package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/carelink-app/carelink-backend/internal/logging"
	"github.com/carelink-app/carelink-backend/internal/media/domain"
)

const signedURLTTL = time.Hour

// AvatarStore writes avatar objects and mints signed URLs for them.
// internal/media/storage.FirebaseBucket is the production implementation.
type AvatarStore interface {
	Write(ctx context.Context, key, contentType string, r io.Reader) error
	SignedURL(key string, expires time.Time) (string, error)
}

// ProfileWriter records the new avatar location on the profile.
type ProfileWriter interface {
	UpdateAvatar(ctx context.Context, id, path, signedURL string) error
}

// ProfileCache patches the cached profile doc.
type ProfileCache interface {
	SetFields(ctx context.Context, uid string, fields map[string]interface{}) error
}

type AvatarService struct {
	store AvatarStore
	users ProfileWriter
	cache ProfileCache
	now   func() time.Time
}

func NewAvatarService(store AvatarStore, users ProfileWriter, cache ProfileCache) *AvatarService {
	return &AvatarService{store: store, users: users, cache: cache, now: time.Now}
}

// Upload stores the image under a per-user timestamped key and records the
// storage path plus a one-hour signed URL on the profile. Earlier avatar
// objects are left in place.
func (s *AvatarService) Upload(ctx context.Context, userID string, file *multipart.FileHeader) (*domain.Object, error) {
	if file == nil {
		return nil, domain.ErrMissingFile
	}
	if file.Size > domain.MaxAvatarBytes {
		return nil, domain.ErrFileTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	contentType, reader, err := sniffImage(src)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("avatars/%s/%d_%s", userID, s.now().Unix(), sanitizeName(file.Filename))
	if err := s.store.Write(ctx, key, contentType, reader); err != nil {
		return nil, fmt.Errorf("store avatar: %w", err)
	}

	signedURL, err := s.store.SignedURL(key, s.now().Add(signedURLTTL))
	if err != nil {
		return nil, fmt.Errorf("sign avatar url: %w", err)
	}

	if err := s.users.UpdateAvatar(ctx, userID, key, signedURL); err != nil {
		return nil, err
	}
	if err := s.cache.SetFields(ctx, userID, map[string]interface{}{
		"avatarPath": key,
		"avatarUrl":  signedURL,
	}); err != nil {
		return nil, err
	}

	logging.NewLogger(ctx).LogInfo("upload_avatar", "avatar stored", logging.Fields{
		"user_id": userID,
		"key":     key,
		"size":    file.Size,
	})
	return &domain.Object{Key: key, SignedURL: signedURL, Size: file.Size}, nil
}

// sniffImage checks the magic bytes rather than trusting the client's
// declared content type.
func sniffImage(src io.Reader) (string, io.Reader, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	if !strings.HasPrefix(contentType, "image/") {
		return "", nil, domain.ErrNotAnImage
	}
	return contentType, io.MultiReader(strings.NewReader(string(head)), src), nil
}

// sanitizeName keeps object keys flat and predictable.
func sanitizeName(name string) string {
	base := filepath.Base(name)
	if base == "." || base == "/" || base == "" {
		return "upload"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
}
