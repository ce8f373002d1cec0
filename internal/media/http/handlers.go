package http

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carelink-app/carelink-backend/internal/auth"
	"github.com/carelink-app/carelink-backend/internal/logging"
	"github.com/carelink-app/carelink-backend/internal/media/domain"
)

// Avatars is the avatar upload surface.
type Avatars interface {
	Upload(ctx context.Context, userID string, file *multipart.FileHeader) (*domain.Object, error)
}

// FamilyMedia is the family-shared blob surface.
type FamilyMedia interface {
	Upload(ctx context.Context, familyID string, file *multipart.FileHeader) (*domain.Object, error)
	List(ctx context.Context, familyID string) ([]domain.Object, error)
}

// FamilyLookup resolves the caller's family for authorization on
// family-media routes.
type FamilyLookup interface {
	FamilyIDForUser(ctx context.Context, userID string) (string, error)
}

type Handler struct {
	avatars  Avatars
	family   FamilyMedia
	families FamilyLookup
}

func New(avatars Avatars, family FamilyMedia, families FamilyLookup) *Handler {
	return &Handler{avatars: avatars, family: family, families: families}
}

// UploadAvatar accepts a multipart image and stores it as the caller's
// profile picture.
func (h *Handler) UploadAvatar(c *gin.Context) {
	uid := auth.UserID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	obj, err := h.avatars.Upload(c.Request.Context(), uid, file)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFileTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image exceeds the 5MB limit"})
		case errors.Is(err, domain.ErrNotAnImage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is not an image"})
		default:
			logging.NewLogger(c.Request.Context()).LogError("upload_avatar", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload avatar", "message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatarPath": obj.Key, "avatarUrl": obj.SignedURL})
}

// UploadFamilyMedia stores one blob in the caller's family space.
func (h *Handler) UploadFamilyMedia(c *gin.Context) {
	familyID, ok := h.callerFamily(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	obj, err := h.family.Upload(c.Request.Context(), familyID, file)
	if err != nil {
		if errors.Is(err, domain.ErrFileTooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds the 25MB limit"})
			return
		}
		logging.NewLogger(c.Request.Context()).LogError("family_media_upload", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload file", "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"object": obj})
}

// ListFamilyMedia lists the family's blobs with presigned URLs. The caller
// must belong to the family in the path.
func (h *Handler) ListFamilyMedia(c *gin.Context) {
	familyID, ok := h.callerFamily(c)
	if !ok {
		return
	}
	if c.Param("familyId") != familyID {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot access another family's media"})
		return
	}

	objects, err := h.family.List(c.Request.Context(), familyID)
	if err != nil {
		logging.NewLogger(c.Request.Context()).LogError("family_media_list", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list media", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"objects": objects})
}

func (h *Handler) callerFamily(c *gin.Context) (string, bool) {
	uid := auth.UserID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return "", false
	}
	familyID, err := h.families.FamilyIDForUser(c.Request.Context(), uid)
	if err != nil || familyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no family recorded for user"})
		return "", false
	}
	return familyID, true
}

func (h *Handler) Routes(rg gin.IRouter, authed gin.HandlerFunc) {
	rg.POST("/upload-avatar", authed, h.UploadAvatar)
	rg.POST("/family-media", authed, h.UploadFamilyMedia)
	rg.GET("/family-media/:familyId", authed, h.ListFamilyMedia)
}
