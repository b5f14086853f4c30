package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"tutormatch/internal/config"
	"tutormatch/internal/database"
	"tutormatch/internal/middleware"
	"tutormatch/internal/modules/auth"
	"tutormatch/internal/modules/booking"
	"tutormatch/internal/modules/favorite"
	"tutormatch/internal/modules/geo"
	"tutormatch/internal/modules/notification"
	"tutormatch/internal/modules/review"
	"tutormatch/internal/modules/search"
	"tutormatch/internal/modules/tutor"
	jwtsvc "tutormatch/internal/pkg/jwt"
	"tutormatch/internal/repository"
)

const notificationRetention = 90 * 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	tutorRepo := repository.NewTutorRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	geoCache := geo.NewCache(cfg.GeocodeTTL, time.Now)
	geocoder := geo.NewGeocoder(geo.NewHTTPProvider(cfg.GeocodeBaseURL, cfg.GeocodeTimeout), geoCache)

	hub := notification.NewHub()
	notificationService := notification.NewService(notificationRepo, hub)
	dispatcher := notification.NewDispatcher(notificationService, 256)
	notificationHandler := notification.NewHandler(notificationService, hub)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	tutorService := tutor.NewService(tutorRepo, geocoder)
	tutorHandler := tutor.NewHandler(tutorService)

	searchService := search.NewService(tutorRepo, geocoder, search.DefaultRankWeights())
	searchHandler := search.NewHandler(searchService)

	bookingService := booking.NewService(bookingRepo, tutorRepo, dispatcher)
	bookingHandler := booking.NewHandler(bookingService)

	favoriteService := favorite.NewService(favoriteRepo, tutorRepo)
	favoriteHandler := favorite.NewHandler(favoriteService)

	reviewService := review.NewService(reviewRepo, bookingRepo, tutorRepo, dispatcher)
	reviewHandler := review.NewHandler(reviewService)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		searchHandler.RegisterRoutes(v1)
		tutorHandler.RegisterPublicRoutes(v1)
		reviewHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			tutorHandler.RegisterRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			favoriteHandler.RegisterRoutes(protected)
			reviewHandler.RegisterRoutes(protected)
			notificationHandler.RegisterRoutes(protected)
		}
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc("0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		notificationService.CleanupOld(ctx, notificationRetention)
	}); err != nil {
		log.Fatal(err)
	}
	if _, err := scheduler.AddFunc("@hourly", func() {
		if purged := geoCache.Purge(); purged > 0 {
			log.Printf("geocode cache: purged %d expired entries", purged)
		}
	}); err != nil {
		log.Fatal(err)
	}
	scheduler.Start()

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	go func() {
		log.Printf("listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown: %v", err)
	}

	scheduler.Stop()
	dispatcher.Close()
	hub.Close()
}
