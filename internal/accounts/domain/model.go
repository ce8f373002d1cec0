package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrMissingField = errors.New("missing required field")
)

// User is the authoritative profile row kept in Postgres. The Firestore doc
// holding the same fields is a read-through cache for the mobile client's
// realtime listeners, never a second source of truth.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Relation       string    `json:"relationToDementiaPerson"`
	FamilyID       string    `json:"familyId"`
	AvatarPath     string    `json:"avatarPath,omitempty"`
	AvatarURL      string    `json:"avatarUrl,omitempty"`
	MainChallenges []string  `json:"mainChallenges,omitempty"`
	HelpNeeds      []string  `json:"helpNeeds,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// RegisterRequest carries the registration form.
type RegisterRequest struct {
	Name          string
	Email         string
	Password      string
	Relation      string
	TermsAccepted bool
	FamilyCode    string
}

func (r *RegisterRequest) Validate() error {
	if r.Name == "" || r.Email == "" || r.Password == "" || r.Relation == "" || !r.TermsAccepted {
		return ErrMissingField
	}
	return nil
}

// UpdateProfileRequest carries the editable profile fields. Nil means
// "leave unchanged".
type UpdateProfileRequest struct {
	Name           *string
	Relation       *string
	MainChallenges []string
	HelpNeeds      []string
}

// LoginResult is the user summary plus the identity service tokens the
// client keeps for subsequent bearer-authenticated calls.
type LoginResult struct {
	User         *User  `json:"user"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
}
