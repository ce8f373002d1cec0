package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carelink-app/carelink-backend/internal/feedback/domain"
	"github.com/carelink-app/carelink-backend/internal/logging"
)

// Store is the persistence surface the handler writes through.
type Store interface {
	Create(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error)
}

type Handler struct {
	store Store
}

func New(store Store) *Handler {
	return &Handler{store: store}
}

type submitRequest struct {
	UserID  string `json:"userId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Submit records one rating with an optional comment.
func (h *Handler) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and rating are required"})
		return
	}

	f := &domain.Feedback{UserID: req.UserID, Rating: req.Rating, Comment: req.Comment}
	if err := f.Validate(); err != nil {
		if errors.Is(err, domain.ErrInvalidRating) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.store.Create(c.Request.Context(), f); err != nil {
		logging.NewLogger(c.Request.Context()).LogError("submit_feedback", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit feedback", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) Routes(rg gin.IRouter) {
	rg.POST("/submit-feedback", h.Submit)
}
