package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/glowbook/artist-scheduler/internal/audit"
	"github.com/glowbook/artist-scheduler/internal/cache"
	"github.com/glowbook/artist-scheduler/internal/config"
	"github.com/glowbook/artist-scheduler/internal/handlers"
	infraRepo "github.com/glowbook/artist-scheduler/internal/infra/repository"
	"github.com/glowbook/artist-scheduler/internal/media"
	"github.com/glowbook/artist-scheduler/internal/middleware"
	ucBooking "github.com/glowbook/artist-scheduler/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	var availabilityCache ucBooking.AvailabilityCache
	if redisClient != nil {
		availabilityCache = cache.NewAvailability(redisClient)
	}

	uploader := media.NewUploader(cfg)

	// ======================================================
	// USE CASES
	// ======================================================
	availabilityUC := ucBooking.NewGetAvailability(
		appointmentRepo,
		availabilityCache,
		cfg.SlotGranularityMin,
	)

	createBookingUC := ucBooking.NewCreateBooking(
		appointmentRepo,
		auditDispatcher,
		availabilityCache,
	)

	cancelOwnUC := ucBooking.NewCancelOwnBooking(
		appointmentRepo,
		auditDispatcher,
		availabilityCache,
	)

	changeStatusUC := ucBooking.NewChangeStatus(
		appointmentRepo,
		auditDispatcher,
		availabilityCache,
	)

	listByDateUC := ucBooking.NewListAppointmentsByDate(appointmentRepo)
	listByMonthUC := ucBooking.NewListAppointmentsByMonth(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	serviceHandler := handlers.NewServiceHandler(db, uploader)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, availabilityUC)

	bookingHandler := handlers.NewBookingHandler(
		db,
		createBookingUC,
		cancelOwnUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		auditDispatcher,
		changeStatusUC,
		listByDateUC,
		listByMonthUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/artists", publicHandler.ListArtists)
		api.GET("/artists/:id/services", publicHandler.ListServices)
		api.GET("/artists/:id/availability", publicHandler.Availability)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)

			// ------------------------------
			// BOOKINGS (client)
			// ------------------------------
			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/me/bookings", bookingHandler.ListMine)
			secured.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)

			// ------------------------------
			// ARTIST CALENDAR
			// ------------------------------
			artist := secured.Group("/me")
			artist.Use(middleware.ArtistOnly())
			{
				artist.GET("/services", serviceHandler.List)
				artist.POST("/services", serviceHandler.Create)
				artist.PATCH("/services/:id", serviceHandler.Update)
				artist.DELETE("/services/:id", serviceHandler.Deactivate)
				artist.POST("/services/:id/image", serviceHandler.UploadImage)

				artist.GET("/working-hours", workingHoursHandler.Get)
				artist.PUT("/working-hours", workingHoursHandler.Update)

				artist.GET("/appointments", appointmentHandler.ListByDate)
				artist.GET("/appointments/month", appointmentHandler.ListByMonth)
				artist.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
				artist.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
				artist.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
				artist.PATCH("/appointments/:id/payment", appointmentHandler.UpdatePayment)

				artist.GET("/clients", clientHandler.List)
				artist.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
