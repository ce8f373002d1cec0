package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carelink-app/carelink-backend/internal/accounts/domain"
	"github.com/carelink-app/carelink-backend/internal/auth"
	familydomain "github.com/carelink-app/carelink-backend/internal/family/domain"
	"github.com/carelink-app/carelink-backend/internal/logging"
)

// Register creates the account and its family attachment.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), &domain.RegisterRequest{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		Relation:      req.Relation,
		TermsAccepted: req.TermsAccepted,
		FamilyCode:    req.FamilyCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingField):
			c.JSON(http.StatusBadRequest, gin.H{"error": "name, email, password, relation and accepted terms are required"})
		case errors.Is(err, familydomain.ErrCodeInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "family code not recognized"})
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "an account with this email already exists"})
		default:
			logging.NewLogger(c.Request.Context()).LogError("register", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed", "message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":                       user.ID,
		"name":                     user.Name,
		"email":                    user.Email,
		"relationToDementiaPerson": user.Relation,
		"familyId":                 user.FamilyID,
	})
}

// Login authenticates and returns the user summary plus identity tokens.
// Unknown email and wrong password share one response body.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	res, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		logging.NewLogger(c.Request.Context()).LogError("login", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}

// ChangePassword rotates the credential after re-verifying the current one.
func (h *Handler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.CurrentPassword == "" || req.NewPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId, currentPassword and newPassword are required"})
		return
	}

	err := h.accounts.ChangePassword(c.Request.Context(), req.UserID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, auth.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "current password is incorrect"})
		default:
			logging.NewLogger(c.Request.Context()).LogError("change_password", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to change password", "message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteAccount performs the full fan-out delete. The bearer token's subject
// must match the path parameter: this is an authorization check on top of
// authentication.
func (h *Handler) DeleteAccount(c *gin.Context) {
	callerUID := auth.UserID(c)
	if callerUID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	targetID := c.Param("id")
	if targetID != callerUID {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot delete another user's account"})
		return
	}

	if err := h.accounts.DeleteAccount(c.Request.Context(), targetID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		logging.NewLogger(c.Request.Context()).LogError("delete_account", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete account", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetProfile returns the caller's profile row.
func (h *Handler) GetProfile(c *gin.Context) {
	uid := auth.UserID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	user, err := h.accounts.GetProfile(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile edits the caller's profile, including the personalization
// answers guide matching reads.
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid := auth.UserID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.accounts.UpdateProfile(c.Request.Context(), uid, &domain.UpdateProfileRequest{
		Name:           req.Name,
		Relation:       req.Relation,
		MainChallenges: req.MainChallenges,
		HelpNeeds:      req.HelpNeeds,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
