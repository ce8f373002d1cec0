package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carelink-app/carelink-backend/internal/auth"
	"github.com/carelink-app/carelink-backend/internal/logging"
	"github.com/carelink-app/carelink-backend/internal/notify/push"
)

// Registry is the push-token and notification-feed surface.
type Registry interface {
	UpsertToken(ctx context.Context, t *push.Token) error
	ListNotifications(ctx context.Context, userID string) ([]push.Notification, error)
}

type Handler struct {
	registry Registry
}

func New(registry Registry) *Handler {
	return &Handler{registry: registry}
}

type pushTokenRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

// RegisterToken upserts the caller's device token.
func (h *Handler) RegisterToken(c *gin.Context) {
	uid := auth.UserID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req pushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	err := h.registry.UpsertToken(c.Request.Context(), &push.Token{
		UserID:   uid,
		Token:    req.Token,
		Platform: req.Platform,
	})
	if err != nil {
		logging.NewLogger(c.Request.Context()).LogError("register_push_token", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register push token", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListNotifications returns the caller's feed. The path parameter must match
// the token subject.
func (h *Handler) ListNotifications(c *gin.Context) {
	uid := auth.UserID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	if c.Param("userId") != uid {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot read another user's notifications"})
		return
	}

	notifications, err := h.registry.ListNotifications(c.Request.Context(), uid)
	if err != nil {
		logging.NewLogger(c.Request.Context()).LogError("list_notifications", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load notifications", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (h *Handler) Routes(rg gin.IRouter, authed gin.HandlerFunc) {
	rg.POST("/push-token", authed, h.RegisterToken)
	rg.GET("/notifications/:userId", authed, h.ListNotifications)
}
