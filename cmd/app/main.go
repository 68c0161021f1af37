package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"checkout/cmd"
	httpin "checkout/internal/adapters/in/http"
	"checkout/internal/adapters/out/postgres/migrations"
	"checkout/internal/pkg/logger"
	"checkout/internal/pkg/metrics"

	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	zapLogger, err := logger.New(configs.LogLevel)
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	if err = applyMigrations(configs); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	gormDB := mustGormOpen(configs, zapLogger)
	redisClient := mustRedisClient(configs, zapLogger)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	app, err := cmd.NewCompositionRoot(configs, gormDB, redisClient, m, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to build application", zap.Error(err))
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		zapLogger.Fatal("failed to start jobs", zap.Error(err))
	}

	e := mustRouter(app, configs, m, zapLogger)
	startWebServer(e, configs.HTTPPort, zapLogger)

	jobManager.StopAll()
}

func applyMigrations(configs cmd.Config) error {
	db, err := sql.Open("postgres", configs.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	return migrations.Run(db)
}

func mustGormOpen(configs cmd.Config, zapLogger *zap.Logger) *gorm.DB {
	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	return gormDB
}

func mustRedisClient(configs cmd.Config, zapLogger *zap.Logger) *redis.Client {
	if configs.RedisAddr == "" {
		zapLogger.Warn("REDIS_ADDR not set: using in-process locks, notifications are only logged")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
		DB:       configs.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		zapLogger.Fatal("failed to connect to redis", zap.Error(err))
	}
	return client
}

func mustRouter(app *cmd.CompositionRoot, configs cmd.Config, m *metrics.Metrics, zapLogger *zap.Logger) http.Handler {
	authenticator, err := httpin.NewAuthenticator(configs.JWTSecret)
	if err != nil {
		zapLogger.Fatal("failed to build authenticator", zap.Error(err))
	}

	e, err := httpin.NewRouter(app.CreateHTTPServer(), httpin.RouterConfig{
		Authenticator: authenticator,
		Metrics:       m,
		Gatherer:      prometheus.DefaultGatherer,
		Logger:        zapLogger,
	})
	if err != nil {
		zapLogger.Fatal("failed to build router", zap.Error(err))
	}
	return e
}

// startWebServer blocks until SIGINT or SIGTERM, then drains in-flight
// requests.
func startWebServer(handler http.Handler, port string, zapLogger *zap.Logger) {
	srv := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%s", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("http server shutdown", zap.Error(err))
	}
	zapLogger.Info("http server stopped")
}
