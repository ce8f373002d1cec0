package http

import "github.com/gin-gonic/gin"

func (h *Handler) Routes(rg gin.IRouter) {
	rg.POST("/family-link/generate", h.Generate)
	rg.GET("/family-link/:uid", h.GetByUser)
	rg.PUT("/family-link/:id/status", h.SetStatus)
}
