package http

import (
	"context"

	"github.com/carelink-app/carelink-backend/internal/accounts/domain"
)

// Accounts is the service surface the handlers call. *service.AccountService
// satisfies it; tests substitute a fake.
type Accounts interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.LoginResult, error)
	ChangePassword(ctx context.Context, userID, current, next string) error
	DeleteAccount(ctx context.Context, userID string) error
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, req *domain.UpdateProfileRequest) (*domain.User, error)
}

type Handler struct {
	accounts Accounts
}

func New(accounts Accounts) *Handler {
	return &Handler{accounts: accounts}
}

type registerRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Relation      string `json:"relationToDementiaPerson"`
	TermsAccepted bool   `json:"termsAccepted"`
	FamilyCode    string `json:"familyCode,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	UserID          string `json:"userId"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type updateProfileRequest struct {
	Name           *string  `json:"name,omitempty"`
	Relation       *string  `json:"relationToDementiaPerson,omitempty"`
	MainChallenges []string `json:"mainChallenges,omitempty"`
	HelpNeeds      []string `json:"helpNeeds,omitempty"`
}
