package routes

import (
	"net/http"
	"time"

	"fixitnow/handlers"
	"fixitnow/middleware"
	"fixitnow/models"
	"fixitnow/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", middleware.RequireRole(models.RoleCustomer), h.CreateBooking)
		api.GET("/:id", h.GetBooking)
		api.PUT("/:id/status", h.UpdateStatus)
		api.GET("/customer/my-bookings", h.ListMyBookings(false))
		api.GET("/provider/my-bookings", h.ListMyBookings(true))
		api.GET("/customer/upcoming", h.ListUpcoming(false))
		api.GET("/provider/upcoming", h.ListUpcoming(true))
	}
}

// RegisterChatRoutes registers the per-booking conversation endpoints.
func RegisterChatRoutes(r *gin.Engine, h *handlers.ChatHandler) {
	api := r.Group("/api/chat")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/room/:bookingId", h.CreateOrGetRoom)
		api.GET("/rooms", h.ListRooms)
		api.GET("/room/:roomId/messages", h.GetMessages)
		api.POST("/send", h.SendMessage)
		api.PUT("/room/:roomId/mark-read", h.MarkRead)
		api.GET("/room/:roomId/unread-count", h.UnreadCount)
		api.POST("/room/:roomId/typing", h.NotifyTyping)
		api.POST("/room/:roomId/join", h.NotifyJoin)
	}
}

// RegisterReviewRoutes registers review endpoints. Listing reads are public;
// mutations require an authenticated customer.
func RegisterReviewRoutes(r *gin.Engine, h *handlers.ReviewHandler) {
	api := r.Group("/api/reviews")
	{
		api.GET("/service/:id", h.ListByService)
		api.GET("/provider/:id", h.ListByProvider)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.POST("", middleware.RequireRole(models.RoleCustomer), h.CreateReview)
		protected.PUT("/:id", h.UpdateReview)
		protected.DELETE("/:id", h.DeleteReview)
		protected.GET("/customer/my-reviews", h.ListMine)
		protected.GET("/check/:serviceId", h.HasReviewed)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// CORSConfig returns the CORS policy for the API.
func CORSConfig() cors.Config {
	return cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
}
