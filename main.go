package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fixitnow/config"
	"fixitnow/cron"
	"fixitnow/database"
	bookingRepoPkg "fixitnow/database/repository/booking"
	chatRepoPkg "fixitnow/database/repository/chat"
	listingRepoPkg "fixitnow/database/repository/listing"
	providerRepoPkg "fixitnow/database/repository/provider"
	reviewRepoPkg "fixitnow/database/repository/review"
	userRepoPkg "fixitnow/database/repository/user"
	"fixitnow/handlers"
	"fixitnow/middleware"
	"fixitnow/routes"
	"fixitnow/services/booking"
	"fixitnow/services/chat"
	"fixitnow/services/review"
	"fixitnow/services/tasks"
	"fixitnow/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitChatPubSub()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.New(routes.CORSConfig()))
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	roomRepo := chatRepoPkg.NewMongoChatRoomRepo()
	messageRepo := chatRepoPkg.NewMongoChatMessageRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()
	providerRepo := providerRepoPkg.NewMongoProviderProfileRepo()
	listingRepo := listingRepoPkg.NewMongoServiceListingRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// real-time fan-out and reminder queue.
	publisher := &chat.RedisPublisher{Client: utils.GetChatPubSubClient()}
	reminderClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer reminderClient.Close()

	// services.
	bookingService := &booking.DefaultBookingService{
		Repo:        bookingRepo,
		ListingRepo: listingRepo,
		UserRepo:    userRepo,
		Reminder:    &tasks.AsynqReminderScheduler{Client: reminderClient},
	}
	chatService := &chat.DefaultChatService{
		Rooms:     roomRepo,
		Messages:  messageRepo,
		Bookings:  bookingRepo,
		Publisher: publisher,
	}
	reviewService := review.NewDefaultReviewService(reviewRepo, listingRepo, userRepo, providerRepo)

	// handlers and routes.
	routes.RegisterBookingRoutes(router, handlers.NewBookingHandler(bookingService))
	routes.RegisterChatRoutes(router, handlers.NewChatHandler(chatService))
	routes.RegisterReviewRoutes(router, handlers.NewReviewHandler(reviewService))
	routes.RegisterHealthRoute(router)

	// background reminder worker and health monitor.
	cron.InitReminderWorker(publisher)
	utils.StartHealthMonitor()

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
