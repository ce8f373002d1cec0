package identity

import (
	"context"
	"errors"
	"fmt"

	fbauth "firebase.google.com/go/v4/auth"
)

// ErrNotFound is returned when no account exists for the given email or UID.
var ErrNotFound = errors.New("identity: account not found")

// Admin wraps the Firebase Auth admin client behind the handful of calls the
// facade needs. Consumers declare their own narrow interfaces over it.
type Admin struct {
	client *fbauth.Client
}

func NewAdmin(client *fbauth.Client) *Admin {
	return &Admin{client: client}
}

// UIDByEmail resolves the UID owning an email address.
// Returns ErrNotFound when the address is unclaimed.
func (a *Admin) UIDByEmail(ctx context.Context, email string) (string, error) {
	rec, err := a.client.GetUserByEmail(ctx, email)
	if err != nil {
		if fbauth.IsUserNotFound(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("identity lookup: %w", err)
	}
	return rec.UID, nil
}

// CreateUser registers a new credential with the identity service and
// returns the issued UID.
func (a *Admin) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&fbauth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	rec, err := a.client.CreateUser(ctx, params)
	if err != nil {
		return "", fmt.Errorf("identity create: %w", err)
	}
	return rec.UID, nil
}

// UpdateEmail changes the address the credential is keyed by.
func (a *Admin) UpdateEmail(ctx context.Context, uid, email string) error {
	params := (&fbauth.UserToUpdate{}).Email(email)
	if _, err := a.client.UpdateUser(ctx, uid, params); err != nil {
		if fbauth.IsUserNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("identity update email: %w", err)
	}
	return nil
}

// UpdatePassword rotates the credential's password.
func (a *Admin) UpdatePassword(ctx context.Context, uid, password string) error {
	params := (&fbauth.UserToUpdate{}).Password(password)
	if _, err := a.client.UpdateUser(ctx, uid, params); err != nil {
		if fbauth.IsUserNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("identity update password: %w", err)
	}
	return nil
}

// DeleteUser removes the credential. Account deletion calls this last so a
// failure here cannot strand a user with data but no login.
func (a *Admin) DeleteUser(ctx context.Context, uid string) error {
	if err := a.client.DeleteUser(ctx, uid); err != nil {
		if fbauth.IsUserNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("identity delete: %w", err)
	}
	return nil
}
