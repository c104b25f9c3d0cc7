package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Williamhssilva/agendapro/internal/audit"
	"github.com/Williamhssilva/agendapro/internal/cache"
	"github.com/Williamhssilva/agendapro/internal/config"
	"github.com/Williamhssilva/agendapro/internal/handlers"
	infraRepo "github.com/Williamhssilva/agendapro/internal/infra/repository"
	"github.com/Williamhssilva/agendapro/internal/middleware"
	ucBooking "github.com/Williamhssilva/agendapro/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingRepository(db)

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}
	slotsCache := cache.NewSlotsCache(rdb, 10*time.Minute, log)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// USE CASES — BOOKING
	// ======================================================
	availabilityUC := ucBooking.NewGetAvailability(bookingRepo, slotsCache, log)

	createUC := ucBooking.NewCreate(bookingRepo, slotsCache, auditDispatcher, log)
	rescheduleUC := ucBooking.NewReschedule(bookingRepo, slotsCache, auditDispatcher, log)
	setStatusUC := ucBooking.NewSetStatus(bookingRepo, slotsCache, auditDispatcher, log)

	listByDateUC := ucBooking.NewListByDate(bookingRepo)
	listByMonthUC := ucBooking.NewListByMonth(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	establishmentHandler := handlers.NewEstablishmentHandler(db)

	professionalHandler := handlers.NewProfessionalHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)

	bookingHandler := handlers.NewBookingHandler(
		db,
		createUC,
		rescheduleUC,
		setStatusUC,
		listByDateUC,
		listByMonthUC,
		availabilityUC,
		log,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, availabilityUC, createUC, log)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/professionals", publicHandler.ListProfessionals)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/establishment", establishmentHandler.GetMeEstablishment)
			secured.PATCH("/me/establishment", establishmentHandler.UpdateMeEstablishment)

			secured.GET("/me/professionals", professionalHandler.List)
			secured.POST("/me/professionals", professionalHandler.Create)
			secured.PATCH("/me/professionals/:id", professionalHandler.Update)
			secured.GET("/me/professionals/:id/weekly-hours", professionalHandler.GetWeeklyHours)
			secured.PUT("/me/professionals/:id/weekly-hours", professionalHandler.UpdateWeeklyHours)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/clients", clientHandler.List)

			secured.GET("/me/availability", bookingHandler.Availability)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", bookingHandler.Create)
			secured.GET("/me/appointments", bookingHandler.ListByDate)
			secured.GET("/me/appointments/month", bookingHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/reschedule", bookingHandler.Reschedule)
			secured.PATCH("/me/appointments/:id/status", bookingHandler.UpdateStatus)
			secured.PATCH("/me/appointments/:id/confirm", bookingHandler.Confirm)
			secured.PATCH("/me/appointments/:id/complete", bookingHandler.Complete)
			secured.PATCH("/me/appointments/:id/cancel", bookingHandler.Cancel)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
