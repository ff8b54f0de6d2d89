package main

import (
	"context"                                       // context package is needed for Redis operations
	"errors"                                        // Server shutdown detection
	"net/http"                                      // HTTP server
	"os"                                            // Signals
	"os/signal"                                     // Graceful shutdown
	"syscall"                                       // SIGTERM
	"time"                                          // Shutdown timeout
	"wallet_admin/internal/api"                     // Custom package for API handlers
	"wallet_admin/internal/config"                  // Custom package for configuration
	"wallet_admin/internal/db"                      // Database connection
	"wallet_admin/internal/integrations/cardissuer" // Card issuing provider
	"wallet_admin/internal/jobs"                    // Scheduled reconciliation
	"wallet_admin/internal/notify"                  // Customer emails
	"wallet_admin/internal/store"                   // Persistence

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"golang.org/x/time/rate"       // Login rate limit
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration
	log := config.SetupLogger(cfg)
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	conn, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	sqlDB, err := conn.DB()
	if err != nil {
		logrus.Fatalf("failed to get DB handle: %v", err)
	}

	// Setup Redis client; the API still works without it, uncached
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logrus.Warnf("Redis unavailable, caching disabled: %v", err)
		_ = redisClient.Close()
		redisClient = nil
	}

	st := store.New(conn)
	cards := cardissuer.NewClient(cfg, log)
	if !cards.Configured() {
		logrus.Warn("Card provider credentials missing; freeze and unfreeze will fail")
	}

	// Ledger reconciliation
	scheduler, err := jobs.Schedule(cfg.ReconcileSchedule, jobs.NewReconciler(st, log))
	if err != nil {
		logrus.Fatalf("failed to schedule reconciliation: %v", err)
	}
	scheduler.Start()

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}
	r := api.NewRouter(api.Deps{
		Store:      st,
		Redis:      redisClient,
		CacheTTL:   cfg.CacheTTL,
		JWTSecret:  cfg.JWTSecret,
		JWTTTL:     cfg.JWTTTL,
		Cards:      cards,
		Notifier:   notify.NewSender(cfg, log),
		LoginRate:  rate.Limit(cfg.LoginRate),
		LoginBurst: cfg.LoginBurst,
		Ping:       sqlDB.PingContext,
	})
	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logrus.Infof("Server running on %s", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("server shutdown: %v", err)
	}
	<-scheduler.Stop().Done() // Wait for a running reconciliation to finish
	if redisClient != nil {
		_ = redisClient.Close()
	}
	_ = sqlDB.Close()
}
