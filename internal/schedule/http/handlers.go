package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carelink-app/carelink-backend/internal/auth"
	"github.com/carelink-app/carelink-backend/internal/logging"
	"github.com/carelink-app/carelink-backend/internal/schedule/domain"
)

// caller returns the authenticated subject, writing a 401 when absent.
func caller(c *gin.Context) (string, bool) {
	uid := auth.UserID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return "", false
	}
	return uid, true
}

// ListAppointments returns the caller's appointments. The path parameter must
// match the token subject.
func (h *Handler) ListAppointments(c *gin.Context) {
	uid, ok := caller(c)
	if !ok {
		return
	}
	if c.Param("userId") != uid {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot read another user's appointments"})
		return
	}

	appointments, err := h.schedule.ListAppointments(c.Request.Context(), uid)
	if err != nil {
		logging.NewLogger(c.Request.Context()).LogError("list_appointments", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load appointments", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	uid, ok := caller(c)
	if !ok {
		return
	}

	var req appointmentBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.schedule.CreateAppointment(c.Request.Context(), &domain.Appointment{
		UserID:      uid,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Reminder:    req.Reminder,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMissingField) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title and date are required"})
			return
		}
		logging.NewLogger(c.Request.Context()).LogError("create_appointment", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create appointment", "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"appointment": created})
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	uid, ok := caller(c)
	if !ok {
		return
	}

	var req appointmentBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.schedule.UpdateAppointment(c.Request.Context(), &domain.Appointment{
		ID:          c.Param("id"),
		UserID:      uid,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Reminder:    req.Reminder,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingField):
			c.JSON(http.StatusBadRequest, gin.H{"error": "title and date are required"})
		case errors.Is(err, domain.ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		default:
			logging.NewLogger(c.Request.Context()).LogError("update_appointment", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update appointment", "message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": updated})
}

// DeleteAppointment also removes logs attached to the appointment.
func (h *Handler) DeleteAppointment(c *gin.Context) {
	uid, ok := caller(c)
	if !ok {
		return
	}

	if err := h.schedule.DeleteAppointment(c.Request.Context(), uid, c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrAppointmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
			return
		}
		logging.NewLogger(c.Request.Context()).LogError("delete_appointment", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete appointment", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) ListLogs(c *gin.Context) {
	uid, ok := caller(c)
	if !ok {
		return
	}
	if c.Param("userId") != uid {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot read another user's logs"})
		return
	}

	logs, err := h.schedule.ListLogs(c.Request.Context(), uid)
	if err != nil {
		logging.NewLogger(c.Request.Context()).LogError("list_logs", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load logs", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

func (h *Handler) CreateLog(c *gin.Context) {
	uid, ok := caller(c)
	if !ok {
		return
	}

	var req logBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.schedule.CreateLog(c.Request.Context(), &domain.Log{
		UserID:        uid,
		AppointmentID: req.AppointmentID,
		Text:          req.Text,
		Date:          req.Date,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMissingField) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "text and date are required"})
			return
		}
		logging.NewLogger(c.Request.Context()).LogError("create_log", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create log", "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"log": created})
}

func (h *Handler) UpdateLog(c *gin.Context) {
	uid, ok := caller(c)
	if !ok {
		return
	}

	var req logBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.schedule.UpdateLog(c.Request.Context(), &domain.Log{
		ID:     c.Param("id"),
		UserID: uid,
		Text:   req.Text,
		Date:   req.Date,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingField):
			c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		case errors.Is(err, domain.ErrLogNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "log not found"})
		case errors.Is(err, domain.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "cannot edit another user's log"})
		default:
			logging.NewLogger(c.Request.Context()).LogError("update_log", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update log", "message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"log": updated})
}

func (h *Handler) DeleteLog(c *gin.Context) {
	uid, ok := caller(c)
	if !ok {
		return
	}

	if err := h.schedule.DeleteLog(c.Request.Context(), uid, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, domain.ErrLogNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "log not found"})
		case errors.Is(err, domain.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "cannot delete another user's log"})
		default:
			logging.NewLogger(c.Request.Context()).LogError("delete_log", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete log", "message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
