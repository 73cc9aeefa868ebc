package routes

import (
	"net/http"
	"time"

	"pawcare/handlers"
	"pawcare/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterProfessionalRoutes registers profile and calendar endpoints. Reads
// are public so pet owners can browse availability before signing in; schedule
// management requires authentication.
func RegisterProfessionalRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/professionals")
	{
		api.GET("/:id", hb.Professional.GetProfessional)
		api.GET("/:id/calendar", hb.Availability.MonthView)
		api.GET("/:id/slots", hb.Availability.DaySlots)

		protected := api.Group("")
		protected.Use(middleware.BearerAuthMiddleware())
		protected.POST("", hb.Professional.RegisterProfessional)
		protected.PUT("/:id/opening-hours", hb.Professional.UpdateOpeningHours)
		protected.POST("/:id/blackouts", hb.Professional.AddBlackout)
		protected.DELETE("/:id/blackouts/:date", hb.Professional.RemoveBlackout)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking session flow.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.Use(middleware.BearerAuthMiddleware())
		bookingGroup.POST("/session", hb.Booking.StartSession)
		bookingGroup.PUT("/session/:sessionID/date", hb.Booking.SelectDate)
		bookingGroup.PUT("/session/:sessionID/slot", hb.Booking.SelectSlot)
		bookingGroup.POST("/confirm", hb.Booking.Confirm)
		bookingGroup.DELETE("/session/:sessionID", hb.Booking.CancelSession)
	}
}

// RegisterAppointmentRoutes registers the owner's appointment management.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.BearerAuthMiddleware())
		api.GET("", hb.Appointment.ListMine)
		api.PUT("/:id", hb.Appointment.Reschedule)
		api.DELETE("/:id", hb.Appointment.Cancel)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm PawCare"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterProfessionalRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterHealthRoute(r)
}
