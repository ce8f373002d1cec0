package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	accountsdomain "github.com/carelink-app/carelink-backend/internal/accounts/domain"
	"github.com/carelink-app/carelink-backend/internal/guides/domain"
	"github.com/carelink-app/carelink-backend/internal/logging"
)

// Matcher is the guide-matching surface the handler calls.
type Matcher interface {
	MatchForUser(ctx context.Context, userID string) ([]domain.Guide, error)
}

type Handler struct {
	matcher Matcher
}

func New(matcher Matcher) *Handler {
	return &Handler{matcher: matcher}
}

type matchRequest struct {
	UserID string `json:"userId"`
}

// MatchGuides returns the guides matching the user's personalization answers.
func (h *Handler) MatchGuides(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	guides, err := h.matcher.MatchForUser(c.Request.Context(), req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, accountsdomain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, domain.ErrRelationUnknown):
			c.JSON(http.StatusBadRequest, gin.H{"error": "complete personalization before matching guides"})
		default:
			logging.NewLogger(c.Request.Context()).LogError("match_guides", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to match guides", "message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"guides": guides})
}

func (h *Handler) Routes(rg gin.IRouter) {
	rg.POST("/match-guides", h.MatchGuides)
}
