package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	_ "github.com/lib/pq"

	"github.com/caterstack/portioning/internal/portioning/application"
	"github.com/caterstack/portioning/internal/portioning/infrastructure/messaging"
	"github.com/caterstack/portioning/internal/portioning/infrastructure/repository"
	transporthttp "github.com/caterstack/portioning/internal/portioning/transport/http"
	"github.com/caterstack/portioning/pkg/config"
	"github.com/caterstack/portioning/pkg/logger"
)

const serviceName = "portioning-service"

func main() {
	loader := config.NewLoader()
	cfg, err := loader.Load()
	if err != nil {
		logger.NewNamed(serviceName).Fatal("failed to load configuration: %v", err)
	}

	log := logger.New(&logger.Config{
		Level:      cfg.LogLevel,
		Service:    serviceName,
		JSONFormat: cfg.LogFormat == "json",
		Colorized:  cfg.LogFormat != "json",
	})
	log.Info("starting portioning service")

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.WithError(err).Fatal("failed to connect to postgres")
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	defer closeQuietly(db, log, "postgres")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	defer closeQuietly(redisClient, log, "redis")

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if _, err := redisClient.Ping(pingCtx).Result(); err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}

	postgresCatalogue := repository.NewPostgresCatalogue(db)
	catalogue := repository.NewRedisCatalogue(redisClient, postgresCatalogue, cfg.Redis.CatalogueTTL, log)
	configStore := repository.NewPostgresConfigStore(db)
	menuStore := repository.NewPostgresMenuStore(db, decimal.NewFromFloat(cfg.Pricing.DefaultRoundingStep))

	auditPublisher := messaging.NewKafkaAuditPublisher(cfg.Kafka.Brokers, log)
	defer closeQuietly(auditPublisher, log, "kafka audit publisher")

	service := application.NewService(catalogue, configStore, menuStore, auditPublisher, log)

	server := startHTTPServer(cfg, service, log)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down portioning service")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("http server shutdown error")
	}
}

func startHTTPServer(cfg *config.Config, service *application.Service, log *logger.Logger) *http.Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		transporthttp.RequestID(),
		transporthttp.Recovery(log),
		transporthttp.AccessLog(log),
		transporthttp.Metrics(),
		transporthttp.CORS(),
		transporthttp.RateLimit(50, 100),
	)

	handler := transporthttp.NewHandler(service, log)
	router.GET("/healthz", handler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	handler.RegisterRoutes(v1)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.WithField("addr", server.Addr).Info("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("http server failed")
		}
	}()

	return server
}

type closer interface {
	Close() error
}

func closeQuietly(c closer, log *logger.Logger, name string) {
	if err := c.Close(); err != nil {
		log.WithError(err).Warn("error closing %s", name)
	}
}
