package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"labsuite_backend/internals/configs"
	database "labsuite_backend/internals/databases"
	helper "labsuite_backend/internals/helpers"
	"labsuite_backend/internals/helpers/authz"
	middlewares "labsuite_backend/internals/middlewares"
	routes "labsuite_backend/internals/route"
	"labsuite_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	log := configs.InitLogger("labsuite-settings")
	defer func() { _ = log.Sync() }()

	// prices as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            helper.ErrorHandler(log),
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	middlewares.SetupMiddlewares(app, log)

	// DB connect + pool + migrate + warm-up
	db, err := database.ConnectDB(configs.LoadDBConfig(), log)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	database.TunePool(db, log)
	if err := database.Migrate(db, log); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	if configs.RunSeeds {
		if err := seeds.RunAllSeeds(db, log); err != nil {
			log.Fatal("seeding failed", zap.Error(err))
		}
	}
	database.WarmUpQueries(db, log)

	authorizer, err := authz.NewFromFile(configs.AuthzPolicyPath)
	if err != nil {
		log.Fatal("authz policy failed to load", zap.Error(err))
	}

	routes.SetupRoutes(app, db, log, authorizer, configs.JWTSecret)

	// Keep-Alive & server timeouts
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Info("listening", zap.String("port", configs.Port))
		if err := app.Listen("0.0.0.0:" + configs.Port); err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown + close DB pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
