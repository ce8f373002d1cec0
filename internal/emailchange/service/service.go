package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/carelink-app/carelink-backend/internal/emailchange/domain"
	"github.com/carelink-app/carelink-backend/internal/identity"
	"github.com/carelink-app/carelink-backend/internal/logging"
)

// Identity is the identity-service slice the workflow needs.
type Identity interface {
	UIDByEmail(ctx context.Context, email string) (string, error)
	UpdateEmail(ctx context.Context, uid, email string) error
}

// UserStore updates the authoritative email column.
type UserStore interface {
	UpdateEmail(ctx context.Context, id, email string) error
}

// ProfileCache patches the cached profile doc.
type ProfileCache interface {
	SetFields(ctx context.Context, uid string, fields map[string]interface{}) error
}

// Mailer delivers the plaintext code. Exactly one send per successful
// request call.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// RequestRepo is the pending-request store.
type RequestRepo interface {
	CreateIfCooldownPassed(ctx context.Context, userID, newEmail, codeHash string) (bool, error)
	NewestUnverified(ctx context.Context, userID string) (*domain.Request, error)
	MarkVerifiedAndPurge(ctx context.Context, userID, requestID string) error
}

type EmailChangeService struct {
	identity Identity
	users    UserStore
	cache    ProfileCache
	mailer   Mailer
	requests RequestRepo
	now      func() time.Time
}

func NewEmailChangeService(id Identity, users UserStore, cache ProfileCache, mailer Mailer, requests RequestRepo) *EmailChangeService {
	return &EmailChangeService{
		identity: id,
		users:    users,
		cache:    cache,
		mailer:   mailer,
		requests: requests,
		now:      time.Now,
	}
}

// Request starts an email change: rejects addresses owned by another
// account, enforces the resend cooldown at the data layer, stores a hashed
// 6-digit code and mails the plaintext once.
func (s *EmailChangeService) Request(ctx context.Context, userID, newEmail string) error {
	if owner, err := s.identity.UIDByEmail(ctx, newEmail); err == nil {
		if owner != userID {
			return domain.ErrEmailTaken
		}
		// changing to an address the user already owns is a no-op request;
		// let it proceed so a half-finished earlier change can be redone
	} else if !errors.Is(err, identity.ErrNotFound) {
		return fmt.Errorf("email ownership lookup: %w", err)
	}

	code, err := newConfirmationCode()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash confirmation code: %w", err)
	}

	created, err := s.requests.CreateIfCooldownPassed(ctx, userID, newEmail, string(hash))
	if err != nil {
		return err
	}
	if !created {
		return domain.ErrCooldown
	}

	subject := "Confirm your new email address"
	html := fmt.Sprintf(
		"<p>Your confirmation code is <strong>%s</strong>.</p><p>It expires in 10 minutes.</p>", code)
	if err := s.mailer.Send(ctx, newEmail, subject, html); err != nil {
		return fmt.Errorf("send confirmation code: %w", err)
	}

	logging.NewLogger(ctx).LogInfo("email_change_request", "code sent",
		logging.Fields{"userId": userID, "newEmail": newEmail})
	return nil
}

// Confirm finishes the change. Expiry is evaluated here, lazily; nothing
// cleans up expired rows in the background. On a code mismatch no record is
// mutated.
func (s *EmailChangeService) Confirm(ctx context.Context, userID, code string) (string, error) {
	req, err := s.requests.NewestUnverified(ctx, userID)
	if err != nil {
		return "", err
	}

	if req.Expired(s.now()) {
		return "", domain.ErrCodeExpired
	}

	if bcrypt.CompareHashAndPassword([]byte(req.CodeHash), []byte(code)) != nil {
		return "", domain.ErrCodeMismatch
	}

	if err := s.identity.UpdateEmail(ctx, userID, req.NewEmail); err != nil {
		return "", err
	}
	if err := s.users.UpdateEmail(ctx, userID, req.NewEmail); err != nil {
		return "", err
	}
	if err := s.cache.SetFields(ctx, userID, map[string]interface{}{"email": req.NewEmail}); err != nil {
		return "", err
	}
	if err := s.requests.MarkVerifiedAndPurge(ctx, userID, req.ID); err != nil {
		return "", err
	}

	return req.NewEmail, nil
}

func newConfirmationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
