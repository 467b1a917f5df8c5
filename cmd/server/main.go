package main // Entry point package

import (
	"context" // bounds startup database work
	"log"     // Logging library
	"time"    // timeouts for seeding

	"github.com/joho/godotenv"    // loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/ration-slot-booking/internal/config"     // Internal config loader
	"github.com/iliyamo/ration-slot-booking/internal/database"   // MySQL pool and schema bootstrap
	"github.com/iliyamo/ration-slot-booking/internal/handler"    // HTTP handlers
	"github.com/iliyamo/ration-slot-booking/internal/middleware" // Redis cache and rate limiter
	"github.com/iliyamo/ration-slot-booking/internal/queue"      // booking.confirmed consumer
	"github.com/iliyamo/ration-slot-booking/internal/repository" // data access layer
	"github.com/iliyamo/ration-slot-booking/internal/router"     // route registration
)

// sampleUsers are the demo ration-card holders inserted when
// SEED_SAMPLE_DATA=true.  Card numbers double as login ids; the OTP
// for each is the last four digits of the card.
var sampleUsers = []struct {
	name, card, phone string
}{
	{"User One", "1002003001", "9100000001"},
	{"User Two", "1002003002", "9100000002"},
	{"User Three", "1002003003", "9100000003"},
	{"User Four", "1002003004", "9100000004"},
	{"User Five", "1002003005", "9100000005"},
}

func main() {
	_ = godotenv.Load() // load .env when present; real env wins

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database open failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("schema migration failed: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepo(db)
	adminRepo := repository.NewAdminRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	issueDateRepo := repository.NewIssueDateRepo(db)
	slotRepo := repository.NewSlotRepo(db)
	bookingRepo := repository.NewBookingRepo(db)

	// Seed the administrator account and, if requested, the demo holders.
	if err := adminRepo.EnsureSeed(ctx, cfg.AdminPhone, cfg.AdminPassword, cfg.BcryptCost); err != nil {
		log.Fatalf("admin seed failed: %v", err)
	}
	if cfg.SeedSampleData {
		for _, u := range sampleUsers {
			if err := userRepo.EnsureSeed(ctx, u.name, u.card, u.phone); err != nil {
				log.Fatalf("sample user seed failed: %v", err)
			}
		}
	}

	// Handlers
	authHandler := handler.NewAuthHandler(cfg, userRepo, adminRepo, tokenRepo)
	catalogHandler := handler.NewCatalogHandler(issueDateRepo, slotRepo)
	bookingHandler := handler.NewBookingHandler(userRepo, slotRepo, bookingRepo)
	adminHandler := handler.NewAdminHandler(issueDateRepo, slotRepo, bookingRepo)

	// Redis-backed middleware.  A nil client disables both transparently.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limitMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// Background consumer appending confirmations to logs/booking.log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	e := echo.New() // Create Echo instance
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, catalogHandler, limitMW, cacheMW)
	router.RegisterUser(e, bookingHandler, cfg.JWTSecret, limitMW)
	router.RegisterAdmin(e, adminHandler, cfg.JWTSecret)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
