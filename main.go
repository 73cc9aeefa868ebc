// File: pawcare/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pawcare/config"
	"pawcare/cron"
	"pawcare/database"
	appointmentRepoPkg "pawcare/database/repository/appointment"
	blackoutRepoPkg "pawcare/database/repository/blackout"
	professionalRepoPkg "pawcare/database/repository/professional"
	"pawcare/handlers"
	"pawcare/middleware"
	"pawcare/routes"
	"pawcare/services/booking"
	"pawcare/services/notification"
	"pawcare/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitSessionCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	profRepo := professionalRepoPkg.NewMongoProfessionalRepo()
	apptRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	blackoutRepo := blackoutRepoPkg.NewMongoBlackoutRepo()
	if err := apptRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure appointment indexes: %v", err)
	}

	// services.
	notificationService := &notification.FCMNotificationService{
		Client: utils.FCMClient,
	}

	reminderScheduler := cron.NewReminderScheduler()
	defer reminderScheduler.Close()
	cron.InitReminderWorker(notificationService)

	reservationCache := &booking.ReservationCache{
		Client: utils.GetCacheClient(),
		Repo:   apptRepo,
		TTL:    5 * time.Minute,
	}

	bookingService := &booking.DefaultBookingSessionService{
		ProfessionalRepo: profRepo,
		AppointmentRepo:  apptRepo,
		BlackoutRepo:     blackoutRepo,
		SessionCache:     utils.GetSessionCacheClient(),
		Reservations:     reservationCache,
		Notification:     notificationService,
		Reminders:        reminderScheduler,
		SessionTTL:       time.Duration(config.AppConfig.BookingSessionTTLMinutes) * time.Minute,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Professional: handlers.NewProfessionalHandler(profRepo, blackoutRepo),
		Availability: handlers.NewAvailabilityHandler(bookingService),
		Booking:      handlers.NewBookingHandler(bookingService, logger),
		Appointment:  handlers.NewAppointmentHandler(bookingService, apptRepo),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
