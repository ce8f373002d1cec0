package http

import "github.com/gin-gonic/gin"

// Routes mounts the appointment and log endpoints behind the bearer check.
func (h *Handler) Routes(rg gin.IRouter, authed gin.HandlerFunc) {
	rg.GET("/appointments/:userId", authed, h.ListAppointments)
	rg.POST("/appointments", authed, h.CreateAppointment)
	rg.PUT("/appointments/:id", authed, h.UpdateAppointment)
	rg.DELETE("/appointments/:id", authed, h.DeleteAppointment)

	rg.GET("/logs/:userId", authed, h.ListLogs)
	rg.POST("/logs", authed, h.CreateLog)
	rg.PUT("/logs/:id", authed, h.UpdateLog)
	rg.DELETE("/logs/:id", authed, h.DeleteLog)
}
