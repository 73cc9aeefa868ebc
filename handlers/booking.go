package handlers

import (
	"errors"
	"net/http"

	"pawcare/middleware"
	"pawcare/models"
	"pawcare/services/booking"
	"pawcare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking session flow.
type BookingHandler struct {
	Service booking.BookingSessionService
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.BookingSessionService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// sessionErrorStatus maps typed session errors onto HTTP statuses.
func sessionErrorStatus(err error) (int, bool) {
	var se *booking.SessionError
	if !errors.As(err, &se) {
		return 0, false
	}
	switch se.Code {
	case booking.CodeSessionNotFound:
		return http.StatusNotFound, true
	case booking.CodeInvalidState:
		return http.StatusConflict, true
	case booking.CodeSlotConflict:
		return http.StatusConflict, true
	case booking.CodeDayNotSelectable, booking.CodeSlotUnavailable:
		return http.StatusUnprocessableEntity, true
	case booking.CodeReservationData:
		return http.StatusServiceUnavailable, true
	}
	return http.StatusInternalServerError, true
}

func (h *BookingHandler) respondError(c *gin.Context, err error, fallback string) {
	if status, ok := sessionErrorStatus(err); ok {
		utils.JSONError(c, status, fallback, err.Error())
		return
	}
	h.Logger.Error(fallback, zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, fallback, err.Error())
}

// StartSession opens a new booking session for the authenticated owner.
func (h *BookingHandler) StartSession(c *gin.Context) {
	var input models.BookingRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := h.Service.StartSession(middleware.SubjectID(c), input)
	if err != nil {
		h.respondError(c, err, "failed to start booking session")
		return
	}
	c.JSON(http.StatusOK, models.BookingResponse{
		SessionID: session.SessionID,
		State:     session.State,
	})
}

// SelectDate picks a calendar day and returns its bookable slots.
func (h *BookingHandler) SelectDate(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, slots, err := h.Service.SelectDate(sessionID, middleware.SubjectID(c), input.Date)
	if err != nil {
		h.respondError(c, err, "failed to select date")
		return
	}
	c.JSON(http.StatusOK, models.BookingResponse{
		SessionID:    session.SessionID,
		State:        session.State,
		SelectedDate: session.SelectedDate,
		Slots:        slots,
	})
}

// SelectSlot picks a time within the selected day.
func (h *BookingHandler) SelectSlot(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input struct {
		Slot string `json:"slot" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := h.Service.SelectSlot(sessionID, middleware.SubjectID(c), input.Slot)
	if err != nil {
		h.respondError(c, err, "failed to select slot")
		return
	}
	c.JSON(http.StatusOK, models.BookingResponse{
		SessionID:    session.SessionID,
		State:        session.State,
		SelectedDate: session.SelectedDate,
		SelectedSlot: session.SelectedSlot,
	})
}

// Confirm finalizes the booking.
func (h *BookingHandler) Confirm(c *gin.Context) {
	var input struct {
		SessionID string `json:"sessionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, err := h.Service.Confirm(input.SessionID, middleware.SubjectID(c))
	if err != nil {
		h.respondError(c, err, "booking confirmation failed")
		return
	}
	c.JSON(http.StatusOK, models.BookingResponse{
		State:       models.SessionStateConfirmed,
		Appointment: appt,
	})
}

// CancelSession abandons the flow without touching reserved data.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if err := h.Service.CancelSession(sessionID, middleware.SubjectID(c)); err != nil {
		h.respondError(c, err, "failed to cancel booking session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
