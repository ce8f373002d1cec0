package http

import (
	"context"

	"github.com/carelink-app/carelink-backend/internal/family/service"
)

// UserFamilyLookup resolves the family a user already belongs to, so a
// lazily generated link lands in the right grouping.
type UserFamilyLookup interface {
	FamilyIDForUser(ctx context.Context, userID string) (string, error)
}

type Handler struct {
	familyService *service.FamilyService
	users         UserFamilyLookup
}

func New(familyService *service.FamilyService, users UserFamilyLookup) *Handler {
	return &Handler{
		familyService: familyService,
		users:         users,
	}
}

type generateRequest struct {
	UserID string `json:"userId"`
}

type statusRequest struct {
	Status string `json:"status"`
}
