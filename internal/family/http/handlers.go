package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carelink-app/carelink-backend/internal/family/domain"
	"github.com/carelink-app/carelink-backend/internal/logging"
)

// Generate returns the caller's invite link, minting one lazily if needed.
func (h *Handler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	familyID, err := h.users.FamilyIDForUser(c.Request.Context(), req.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	link, err := h.familyService.EnsureForUser(c.Request.Context(), req.UserID, familyID)
	if err != nil {
		logging.NewLogger(c.Request.Context()).LogError("family_link_generate", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate family link", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"link": link})
}

// GetByUser returns the owner's active link.
func (h *Handler) GetByUser(c *gin.Context) {
	uid := c.Param("uid")
	if uid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user ID is required"})
		return
	}

	link, err := h.familyService.GetForUser(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "family link not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load family link", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"link": link})
}

// SetStatus flips a link between active and inactive.
func (h *Handler) SetStatus(c *gin.Context) {
	id := c.Param("id")

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	link, err := h.familyService.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be active or inactive"})
		case errors.Is(err, domain.ErrLinkNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "family link not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update family link", "message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"link": link})
}
