package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	supa "github.com/supabase-community/supabase-go"

	"github.com/luminance-clinic/backend-clinic/config"
	"github.com/luminance-clinic/backend-clinic/handlers"
	"github.com/luminance-clinic/backend-clinic/middleware"
	"github.com/luminance-clinic/backend-clinic/models"
	"github.com/luminance-clinic/backend-clinic/services"
)

func SetupRoutes(router *gin.Engine, supabaseClient *supa.Client, cfg *config.Config, cache *services.Cache, log *logrus.Logger) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(supabaseClient, cfg, log)
	offerHandler := handlers.NewOfferHandler(supabaseClient, cfg, log)
	appointmentHandler := handlers.NewAppointmentHandler(supabaseClient, cfg, cache, log)
	doctorHandler := handlers.NewDoctorHandler(supabaseClient, cfg, log)

	publicLimiter := middleware.NewRateLimiter(5, 10)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, models.Response{
			Success: true,
			Message: "Server is running",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public, throttled)
		auth := v1.Group("/auth")
		auth.Use(publicLimiter.Middleware())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/admin-register", authHandler.AdminRegister)
			auth.POST("/login", authHandler.Login)
		}

		// Public routes - marketing data and the booking form
		v1.GET("/catalog", func(c *gin.Context) {
			c.JSON(200, models.Response{
				Success: true,
				Data:    models.GetCatalog(),
			})
		})
		v1.GET("/offers", offerHandler.GetActiveOffers)
		v1.GET("/doctors", doctorHandler.GetDoctors)
		v1.GET("/doctors/:id", doctorHandler.GetDoctorByID)
		v1.POST("/appointments", publicLimiter.Middleware(), appointmentHandler.CreateAppointment)

		// Protected routes
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("/auth/logout", authHandler.Logout)
			protected.GET("/auth/me", authHandler.GetMe)
			protected.PUT("/auth/me", authHandler.UpdateMe)

			// Customer dashboard
			protected.GET("/appointments/my", appointmentHandler.GetMyAppointments)

			// Admin routes
			admin := protected.Group("/admin")
			admin.Use(middleware.RoleMiddleware(models.RoleAdmin))
			{
				// Appointment management
				admin.GET("/appointments", appointmentHandler.GetAllAppointments)
				admin.PATCH("/appointments/:id/status", appointmentHandler.UpdateAppointmentStatus)
				admin.DELETE("/appointments/:id", appointmentHandler.DeleteAppointment)

				// Offer management
				admin.GET("/offers", offerHandler.GetAllOffers)
				admin.POST("/offers", offerHandler.CreateOffer)
				admin.PUT("/offers/:id", offerHandler.UpdateOffer)
				admin.DELETE("/offers/:id", offerHandler.DeleteOffer)

				// Doctor management
				admin.POST("/doctors", doctorHandler.CreateDoctor)
				admin.PUT("/doctors/:id", doctorHandler.UpdateDoctor)
				admin.DELETE("/doctors/:id", doctorHandler.DeleteDoctor)
			}
		}
	}
}
