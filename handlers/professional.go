package handlers

import (
	"net/http"

	blackoutRepo "pawcare/database/repository/blackout"
	professionalRepo "pawcare/database/repository/professional"
	"pawcare/models"
	"pawcare/services/availability"
	"pawcare/utils"

	"github.com/gin-gonic/gin"
)

// ProfessionalHandler exposes profile reads and schedule management.
type ProfessionalHandler struct {
	Repo      professionalRepo.ProfessionalRepository
	Blackouts blackoutRepo.BlackoutRepository
}

func NewProfessionalHandler(repo professionalRepo.ProfessionalRepository, blackouts blackoutRepo.BlackoutRepository) *ProfessionalHandler {
	return &ProfessionalHandler{Repo: repo, Blackouts: blackouts}
}

// GetProfessional returns the profile, including opening hours and the
// consultation duration the calendar computes with.
func (h *ProfessionalHandler) GetProfessional(c *gin.Context) {
	prof, err := h.Repo.GetByID(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "professional not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, prof)
}

// RegisterProfessional creates a vet or trainer profile.
func (h *ProfessionalHandler) RegisterProfessional(c *gin.Context) {
	var prof models.Professional
	if err := c.ShouldBindJSON(&prof); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if prof.Kind != models.KindVet && prof.Kind != models.KindTrainer {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "kind must be \"vet\" or \"trainer\"")
		return
	}
	if prof.Details.OpeningHours != nil {
		if err := availability.ValidateOpeningHours(prof.Details.OpeningHours); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid opening hours", err.Error())
			return
		}
	}
	if prof.Details.ConsultationDuration <= 0 {
		prof.Details.ConsultationDuration = models.DefaultDuration(prof.Kind)
	}

	if err := h.Repo.Create(&prof); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to register professional", err.Error())
		return
	}
	c.JSON(http.StatusCreated, prof)
}

// UpdateOpeningHours replaces the weekly schedule.
func (h *ProfessionalHandler) UpdateOpeningHours(c *gin.Context) {
	id := c.Param("id")
	var input struct {
		OpeningHours         models.OpeningHours `json:"openingHours" binding:"required"`
		ConsultationDuration int                 `json:"consultationDuration" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if input.ConsultationDuration <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "consultationDuration must be a positive number of minutes")
		return
	}
	if err := availability.ValidateOpeningHours(input.OpeningHours); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid opening hours", err.Error())
		return
	}

	if err := h.Repo.UpdateOpeningHours(id, input.OpeningHours, input.ConsultationDuration); err != nil {
		utils.JSONError(c, http.StatusNotFound, "failed to update opening hours", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// AddBlackout blocks a whole day regardless of slot math.
func (h *ProfessionalHandler) AddBlackout(c *gin.Context) {
	id := c.Param("id")
	var input struct {
		Date   string `json:"date" binding:"required"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if _, err := availability.ParseDateKey(input.Date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date must be YYYY-MM-DD")
		return
	}

	period := &models.BlackoutPeriod{ProfessionalID: id, Date: input.Date, Reason: input.Reason}
	if err := h.Blackouts.Add(period); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to add blackout", err.Error())
		return
	}
	c.JSON(http.StatusOK, period)
}

// RemoveBlackout reopens a previously blocked day.
func (h *ProfessionalHandler) RemoveBlackout(c *gin.Context) {
	if err := h.Blackouts.Remove(c.Param("id"), c.Param("date")); err != nil {
		utils.JSONError(c, http.StatusNotFound, "failed to remove blackout", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}
