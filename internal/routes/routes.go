package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MaryEddythe/Lustrea/internal/audit"
	"github.com/MaryEddythe/Lustrea/internal/auth"
	"github.com/MaryEddythe/Lustrea/internal/config"
	"github.com/MaryEddythe/Lustrea/internal/handlers"
	infraRepo "github.com/MaryEddythe/Lustrea/internal/infra/repository"
	"github.com/MaryEddythe/Lustrea/internal/infra/storage"
	"github.com/MaryEddythe/Lustrea/internal/middleware"
	ucAppointment "github.com/MaryEddythe/Lustrea/internal/usecase/appointment"
	ucMessage "github.com/MaryEddythe/Lustrea/internal/usecase/message"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	tokens *auth.TokenStore,
	uploader storage.Uploader,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	messageRepo := infraRepo.NewMessageGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)
	createBookingUC := ucAppointment.NewCreateBooking(appointmentRepo, auditDispatcher)
	updateBookingUC := ucAppointment.NewUpdateBooking(appointmentRepo, auditDispatcher)

	threadUC := ucMessage.NewThread(messageRepo)
	inboxUC := ucMessage.NewInbox(messageRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, tokens, auditDispatcher)
	publicHandler := handlers.NewPublicHandler(db, uploader, availabilityUC, createBookingUC)
	appointmentHandler := handlers.NewAppointmentHandler(db, updateBookingUC, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)
	galleryHandler := handlers.NewGalleryHandler(db, uploader, cfg.UploadBaseURL)
	messageHandler := handlers.NewMessageHandler(threadUC, inboxUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api/v1")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/services", publicHandler.ListServices)
		api.GET("/services/categories", publicHandler.ServiceCategories)
		api.GET("/services/:id", publicHandler.GetService)

		api.GET("/gallery", galleryHandler.List)
		api.GET("/gallery/categories", galleryHandler.Categories)
		api.GET("/gallery/featured", galleryHandler.Featured)
		api.GET("/gallery/:id", galleryHandler.Get)

		api.GET("/appointments/available-slots", publicHandler.AvailableSlots)
		api.POST("/appointments", publicHandler.CreateAppointment)

		api.GET("/appointments/:appointmentId/messages", messageHandler.List)
		api.POST("/appointments/:appointmentId/messages", messageHandler.Post)
		api.PUT("/messages/:id/read", messageHandler.MarkRead)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/admin/login", authHandler.Login)

		// ------------------------------
		// ADMIN (SECURED)
		// ------------------------------
		secured := api.Group("/admin")
		secured.Use(middleware.AuthMiddleware(tokens))
		{
			secured.GET("/me", authHandler.Me)
			secured.PUT("/profile", authHandler.UpdateProfile)
			secured.POST("/logout", authHandler.Logout)
			secured.POST("/refresh-token", authHandler.RefreshToken)

			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/statistics", appointmentHandler.Statistics)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.PUT("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			secured.POST("/gallery", galleryHandler.Create)
			secured.POST("/gallery/upload", galleryHandler.Upload)
			secured.PUT("/gallery/sort-order", galleryHandler.UpdateSortOrder)
			secured.PUT("/gallery/:id", galleryHandler.Update)
			secured.DELETE("/gallery/:id", galleryHandler.Delete)

			secured.GET("/messages/conversations", messageHandler.Conversations)
			secured.GET("/messages/unread-count", messageHandler.UnreadCount)
			secured.PUT("/appointments/:id/messages/read-all", messageHandler.MarkConversationRead)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
