package routes

import (
	"time"

	"github.com/Oumer1234/service-marketplace/handlers"
	"github.com/Oumer1234/service-marketplace/middleware"
	"github.com/Oumer1234/service-marketplace/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/booking")
	{
		bookingGroup.Use(hb.Auth)
		bookingGroup.POST("", hb.CreateBookingHandler)
		bookingGroup.GET("/:id", hb.GetBookingHandler)
		bookingGroup.PUT("/:id", hb.UpdateBookingStatusHandler)
	}
}

// RegisterDashboardRoutes registers the role dashboards.
func RegisterDashboardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	dashboard := r.Group("/dashboard")
	{
		dashboard.Use(hb.Auth)
		dashboard.GET("", hb.OverviewHandler)

		provider := dashboard.Group("/provider")
		provider.Use(middleware.RequireRole(models.RoleProvider))
		provider.GET("/bookings", hb.ProviderBookingsHandler)
		provider.GET("/stats", hb.ProviderStatsHandler)

		dashboard.GET("/user/bookings", hb.UserBookingsHandler)
	}
}

// RegisterNotificationRoutes registers the notification inbox.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/notifications", hb.Auth, hb.ListNotificationsHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	if hb.UploadsDir != "" {
		uploads := r.Group("/uploads", middleware.AttachmentHeaders())
		uploads.Static("/", hb.UploadsDir)
	}

	RegisterBookingRoutes(r, hb)
	RegisterDashboardRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
