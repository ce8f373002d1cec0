package http

import "github.com/gin-gonic/gin"

// Routes wires the account endpoints. limited guards the credential
// endpoints with the per-IP rate limiter; authed verifies bearer tokens.
func (h *Handler) Routes(rg gin.IRouter, limited, authed gin.HandlerFunc) {
	rg.POST("/register", limited, h.Register)
	rg.POST("/login", limited, h.Login)
	rg.POST("/change-password", h.ChangePassword)
	rg.DELETE("/user/:id/delete-account", authed, h.DeleteAccount)
	rg.GET("/profile", authed, h.GetProfile)
	rg.PUT("/profile", authed, h.UpdateProfile)
}
