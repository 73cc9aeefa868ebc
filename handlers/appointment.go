package handlers

import (
	"net/http"

	appointmentRepo "pawcare/database/repository/appointment"
	"pawcare/middleware"
	"pawcare/services/booking"
	"pawcare/utils"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler exposes the owner's view of confirmed appointments.
type AppointmentHandler struct {
	Service booking.BookingSessionService
	Repo    appointmentRepo.AppointmentRepository
}

func NewAppointmentHandler(svc booking.BookingSessionService, repo appointmentRepo.AppointmentRepository) *AppointmentHandler {
	return &AppointmentHandler{Service: svc, Repo: repo}
}

// ListMine returns the authenticated owner's appointments, upcoming first.
func (h *AppointmentHandler) ListMine(c *gin.Context) {
	appts, err := h.Repo.ListByOwner(middleware.SubjectID(c))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list appointments", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// Cancel cancels a confirmed appointment and frees its slot.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	appt, err := h.Service.CancelAppointment(c.Param("id"), middleware.SubjectID(c))
	if err != nil {
		if status, ok := sessionErrorStatus(err); ok {
			utils.JSONError(c, status, "failed to cancel appointment", err.Error())
			return
		}
		utils.JSONError(c, http.StatusNotFound, "failed to cancel appointment", err.Error())
		return
	}
	c.JSON(http.StatusOK, appt)
}

// Reschedule moves a confirmed appointment to a new date and slot.
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	var input struct {
		Date string `json:"date" binding:"required"`
		Slot string `json:"slot" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, err := h.Service.RescheduleAppointment(c.Param("id"), middleware.SubjectID(c), input.Date, input.Slot)
	if err != nil {
		if status, ok := sessionErrorStatus(err); ok {
			utils.JSONError(c, status, "failed to reschedule appointment", err.Error())
			return
		}
		utils.JSONError(c, http.StatusNotFound, "failed to reschedule appointment", err.Error())
		return
	}
	c.JSON(http.StatusOK, appt)
}
