package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/motormate/garage-backend/internal/config"
	"github.com/motormate/garage-backend/internal/database"
	"github.com/motormate/garage-backend/internal/handler"
	"github.com/motormate/garage-backend/internal/middleware"
	"github.com/motormate/garage-backend/internal/queue"
	"github.com/motormate/garage-backend/internal/repository"
	"github.com/motormate/garage-backend/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	garages := repository.NewGarageRepo(db)
	engineers := repository.NewEngineerRepo(db)
	jobs := repository.NewJobCardRepo(db)
	parts := repository.NewPartRepo(db)
	usages := repository.NewUsageRepo(db)
	insurances := repository.NewInsuranceRepo(db)
	invoices := repository.NewInvoiceRepo(db)

	// Handlers.
	authH := handler.NewAuthHandler(cfg, users, tokens)
	adminH := handler.NewAdminHandler(garages, users)
	advisor := router.AdvisorHandlers{
		Engineers: handler.NewEngineerHandler(engineers, garages),
		JobCards:  handler.NewJobCardHandler(jobs, garages, engineers),
		Worksheet: handler.NewWorksheetHandler(jobs, parts, usages),
		Inventory: handler.NewInventoryHandler(parts, garages),
		Insurance: handler.NewInsuranceHandler(insurances, garages, jobs),
		Billing:   handler.NewBillingHandler(jobs, usages, invoices),
	}

	e := echo.New()

	// Redis-backed response cache and rate limiting.  Both fail open
	// when Redis is not configured.
	rdb := config.NewRedisClient()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)
	router.RegisterAdvisor(e, advisor, cfg.JWTSecret)

	// Background consumer writing jobcard events to logs/jobcard.log.
	go func() {
		if err := queue.StartJobCardConsumer(); err != nil {
			log.Printf("jobcard-consumer: stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
