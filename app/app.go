package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"raybot-trade-manager/api"
	"raybot-trade-manager/cache"
	"raybot-trade-manager/config"
	"raybot-trade-manager/database"
	"raybot-trade-manager/database/registry"
	"raybot-trade-manager/database/signals"
	"raybot-trade-manager/database/trades"
	"raybot-trade-manager/notifications"
	"raybot-trade-manager/realtime"
)

// App represents the main application
type App struct {
	config *config.Config
	db     *database.Database
	redis  *cache.RedisClient
	hub    *realtime.Hub

	signalRepo   *signals.Repository
	tradeRepo    *trades.Repository
	registryRepo *registry.Repository

	relayCancel context.CancelFunc
}

// New creates a new application instance
func New(cfg *config.Config) *App {
	return &App{config: cfg}
}

// Start wires the components and runs until SIGINT/SIGTERM. A store that
// cannot be reached does not abort startup: the repositories are built on
// a nil connection and every operation degrades to a typed failure, so the
// dashboard stays up and reports the condition instead of crashing.
func (a *App) Start() error {
	// 1. Database connection
	log.Println("🗄️  Connecting to database...")

	dbPort, err := strconv.Atoi(a.config.DatabasePort)
	if err != nil {
		return fmt.Errorf("invalid database port: %w", err)
	}

	if err := database.Preflight(database.PreflightConfig{
		Host:     a.config.DatabaseHost,
		Port:     a.config.DatabasePort,
		User:     a.config.DatabaseUser,
		Password: a.config.DatabasePassword,
		DBName:   a.config.DatabaseName,
	}); err != nil {
		log.Printf("⚠️  Database preflight failed: %v", err)
	}

	db, err := database.Connect(
		a.config.DatabaseHost,
		dbPort,
		a.config.DatabaseName,
		a.config.DatabaseUser,
		a.config.DatabasePassword,
	)
	if err != nil {
		log.Printf("⚠️  Database connection failed, running degraded: %v", err)
		db = nil
	} else {
		log.Println("✅ Database connection established")
	}
	a.db = db

	// 2. Schema initialization
	if db != nil {
		if err := database.NewRepository(db).InitSchema(); err != nil {
			return fmt.Errorf("schema initialization failed: %w", err)
		}
	}

	// 3. Domain repositories share the one long-lived connection
	a.signalRepo = signals.NewRepository(db.DB())
	a.tradeRepo = trades.NewRepository(db.DB())
	a.registryRepo = registry.NewRepository(db.DB())

	// 4. Redis connection (event fan-out only; absent Redis just disables it)
	log.Println("🧠 Connecting to Redis...")
	a.redis = cache.NewRedisClient(
		a.config.RedisHost,
		a.config.RedisPort,
		a.config.RedisPassword,
	)
	if a.redis == nil {
		log.Println("⚠️  Redis unavailable, event publishing limited to WebSocket clients")
	}

	// 5. Realtime hub for dashboard push
	a.hub = realtime.NewHub()
	go a.hub.Run()

	events := notifications.NewPublisher(a.hub, a.redis, a.config.EventChannel)

	// With Redis present, hub delivery goes through the relay so events from
	// every instance reach local dashboard clients
	if a.redis != nil {
		ctx, cancel := context.WithCancel(context.Background())
		a.relayCancel = cancel
		go notifications.NewRelay(a.redis, a.hub, a.config.EventChannel).Run(ctx)
	}

	// 6. API server
	server := api.NewServer(a.signalRepo, a.tradeRepo, a.registryRepo, events, a.hub, a.config.AdminPassword)
	go func() {
		if err := server.Start(a.config.APIPort); err != nil {
			log.Printf("⚠️  API server failed: %v", err)
		}
	}()

	// 7. Block until shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("📡 Received %v, shutting down...", sig)

	return a.Stop()
}

// Stop tears down the shared clients
func (a *App) Stop() error {
	if a.relayCancel != nil {
		a.relayCancel()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Printf("⚠️  Redis close failed: %v", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			log.Printf("⚠️  Database close failed: %v", err)
			return err
		}
	}
	log.Println("✅ Graceful shutdown completed")
	return nil
}
