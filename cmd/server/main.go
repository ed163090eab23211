package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/ayoubre/employee-manager/internal/config"
	"github.com/ayoubre/employee-manager/internal/database"
	"github.com/ayoubre/employee-manager/internal/handler"
	"github.com/ayoubre/employee-manager/internal/middleware"
	"github.com/ayoubre/employee-manager/internal/queue"
	"github.com/ayoubre/employee-manager/internal/repository"
	"github.com/ayoubre/employee-manager/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	employees := repository.NewEmployeeRepo(db)

	if cfg.SeedAdmin {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := database.SeedAdmin(ctx, users, cfg.BcryptCost); err != nil {
			log.Fatalf("admin seed failed: %v", err)
		}
		cancel()
	}

	// Redis is optional; a nil client turns rate limiting and caching off.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting and response cache disabled")
	}
	rlCfg := config.LoadRateLimitConfig()
	cacheCfg := config.LoadCacheConfig()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(middleware.RateLimit(rlCfg, rdb))

	authMW := middleware.Auth(cfg.JWTSecret, tokens, users)
	cacheMW := middleware.Cache(cacheCfg, rdb)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	empH := handler.NewEmployeeHandler(employees, rdb, cacheCfg)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, authMW)
	router.RegisterEmployees(e, empH, authMW, cacheMW)

	// Audit consumer runs alongside the HTTP server and reconnects on its
	// own; a broker outage never blocks request handling.
	go func() {
		if err := queue.StartEmployeeConsumer(); err != nil {
			log.Printf("employee consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
