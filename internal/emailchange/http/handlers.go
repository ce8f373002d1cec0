package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carelink-app/carelink-backend/internal/emailchange/domain"
	"github.com/carelink-app/carelink-backend/internal/logging"
)

type requestBody struct {
	UserID   string `json:"userId"`
	NewEmail string `json:"newEmail"`
}

type confirmBody struct {
	UserID string `json:"userId"`
	Code   string `json:"code"`
}

// RequestChange starts the email change workflow.
func (h *Handler) RequestChange(c *gin.Context) {
	var req requestBody
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.NewEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and newEmail are required"})
		return
	}

	if err := h.service.Request(c.Request.Context(), req.UserID, req.NewEmail); err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already in use"})
		case errors.Is(err, domain.ErrCooldown):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "please wait before requesting another code"})
		default:
			logging.NewLogger(c.Request.Context()).LogError("request_email_change", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start email change", "message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ConfirmChange finishes the workflow with the mailed code.
func (h *Handler) ConfirmChange(c *gin.Context) {
	var req confirmBody
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and code are required"})
		return
	}

	email, err := h.service.Confirm(c.Request.Context(), req.UserID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoPendingRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": "no pending email change request"})
		case errors.Is(err, domain.ErrCodeExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "confirmation code expired, request a new one"})
		case errors.Is(err, domain.ErrCodeMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid confirmation code"})
		default:
			logging.NewLogger(c.Request.Context()).LogError("confirm_email_change", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to confirm email change", "message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "email": email})
}
