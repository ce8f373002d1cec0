package http

import (
	"context"

	"github.com/gin-gonic/gin"
)

// Workflow is the email-change service surface the handlers call.
type Workflow interface {
	Request(ctx context.Context, userID, newEmail string) error
	Confirm(ctx context.Context, userID, code string) (string, error)
}

type Handler struct {
	service Workflow
}

func New(service Workflow) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Routes(rg gin.IRouter) {
	rg.POST("/request-email-change", h.RequestChange)
	rg.POST("/confirm-email-change", h.ConfirmChange)
}
