package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads variables from a local .env file
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/kindlot/charity-auction/internal/config"     // Internal config loader
	"github.com/kindlot/charity-auction/internal/database"   // MySQL connection pool
	"github.com/kindlot/charity-auction/internal/handler"    // HTTP handlers
	"github.com/kindlot/charity-auction/internal/queue"      // RabbitMQ consumer
	"github.com/kindlot/charity-auction/internal/repository" // Data access layer
	"github.com/kindlot/charity-auction/internal/router"     // Route registration
	"github.com/kindlot/charity-auction/internal/service"    // Provisioning and event publishing
)

func main() {
	// A missing .env is fine in production where variables come from the
	// environment directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the response cache and rate limiter; a nil client turns
	// both into pass-throughs, so startup does not depend on Redis.
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	balances := repository.NewBalanceRepo(db)
	charities := repository.NewCharityRepo(db)
	notifs := repository.NewNotificationRepo(db)
	subs := repository.NewSubscriptionRepo(db)
	lots := repository.NewLotRepo(db)

	prov := service.NewProvisioner(balances, charities)

	// The consumer reconnects on its own; losing the broker only delays
	// notification delivery.
	go queue.StartNotificationConsumer(notifs)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens, prov), cfg.JWTSecret)
	router.RegisterLots(e, handler.NewLotHandler(lots), handler.NewModerationHandler(lots), cfg.JWTSecret)
	router.RegisterAccount(e,
		handler.NewBalanceHandler(balances),
		handler.NewNotificationHandler(notifs),
		handler.NewSubscriptionHandler(cfg, subs, balances),
		cfg.JWTSecret,
	)
	router.RegisterCharities(e, handler.NewCharityHandler(charities), rdb, cfg.JWTSecret)
	router.RegisterAdmin(e, handler.NewAdminHandler(cfg, users, prov), cfg.JWTSecret)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
