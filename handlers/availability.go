package handlers

import (
	"net/http"
	"strconv"
	"time"

	"pawcare/services/booking"
	"pawcare/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler exposes the read-only calendar views.
type AvailabilityHandler struct {
	Service booking.BookingSessionService
}

func NewAvailabilityHandler(svc booking.BookingSessionService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// MonthView returns the 7-wide day-cell grid for one professional-month.
// Optional ?selected=YYYY-MM-DD folds in the fresher per-day reservations
// for that date.
func (h *AvailabilityHandler) MonthView(c *gin.Context) {
	professionalID := c.Param("id")

	now := time.Now().UTC()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid year", err.Error())
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		utils.JSONError(c, http.StatusBadRequest, "invalid month", "month must be 1-12")
		return
	}

	cells, err := h.Service.MonthView(professionalID, year, month, c.Query("selected"))
	if err != nil {
		if status, ok := sessionErrorStatus(err); ok {
			utils.JSONError(c, status, "failed to build calendar", err.Error())
			return
		}
		utils.JSONError(c, http.StatusNotFound, "failed to build calendar", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"professionalId": professionalID,
		"year":           year,
		"month":          month,
		"days":           cells,
	})
}

// DaySlots returns the bookable "HH:MM" slots for one date.
func (h *AvailabilityHandler) DaySlots(c *gin.Context) {
	professionalID := c.Param("id")
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date query parameter is required")
		return
	}

	slots, err := h.Service.DaySlots(professionalID, date)
	if err != nil {
		if status, ok := sessionErrorStatus(err); ok {
			utils.JSONError(c, status, "failed to compute availability", err.Error())
			return
		}
		utils.JSONError(c, http.StatusNotFound, "failed to compute availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"professionalId": professionalID,
		"date":           date,
		"slots":          slots,
	})
}
