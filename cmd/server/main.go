package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go-booking-engine/config"
	"go-booking-engine/internal/cache"
	"go-booking-engine/internal/database"
	"go-booking-engine/internal/handler"
	"go-booking-engine/internal/notify"
	"go-booking-engine/internal/payment"
	"go-booking-engine/internal/queue"
	"go-booking-engine/internal/refcode"
	"go-booking-engine/internal/repository"
	"go-booking-engine/internal/service"
	"go-booking-engine/internal/worker"
	"go-booking-engine/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()
	defer func() { _ = logger.L.Sync() }()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Repositories
	bookingRepo := repository.NewBookingRepository(pool)
	showtimeRepo := repository.NewShowtimeRepository(pool)
	layoutRepo := repository.NewScreenLayoutRepository(pool)
	venueRepo := repository.NewVenueRepository(pool)
	promoRepo := repository.NewPromoRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)

	// Collaborators
	inventory := cache.NewRedisSeatInventoryManager(rdb)
	refAllocator := refcode.NewAllocator(bookingRepo, cfg.Booking.RefMaxAttempts)
	provider := payment.NewHMACProvider(cfg.Payment.Secret)
	notifier := notify.NewAMQPNotifier(cfg.AMQP.URL)

	taskQueue, err := queue.NewRedisStreamTaskQueue(rdb, "", nil)
	if err != nil {
		log.Fatalf("Failed to initialize task queue: %v", err)
	}

	// Services
	bookingService := service.NewBookingService(
		pool, bookingRepo, showtimeRepo, layoutRepo, promoRepo, settingsRepo,
		inventory, refAllocator, provider, taskQueue,
		cfg.Booking, cfg.Payment.Mode,
	)
	checkInService := service.NewCheckInService(bookingRepo, showtimeRepo, venueRepo)
	showtimeService := service.NewShowtimeService(showtimeRepo, inventory)

	// Background worker
	bookingWorker := worker.NewBookingWorker(taskQueue, notifier, inventory)
	go func() {
		if err := bookingWorker.Start(ctx); err != nil {
			log.Printf("Booking worker exited: %v", err)
		}
	}()

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	handler.NewBookingHandler(bookingService).RegisterRoutes(router)
	handler.NewCheckInHandler(checkInService).RegisterRoutes(router)
	handler.NewShowtimeHandler(showtimeService).RegisterRoutes(router)

	router.Run() // listens on 0.0.0.0:8080 by default
}
