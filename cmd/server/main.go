// Command server runs the CardSpace backend-for-frontend: post-auth
// navigation, onboarding status, the brand catalog, and the card wallet.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/twmb/franz-go/pkg/kgo"
	"golang.org/x/sync/errgroup"

	authsignal "cardspace/internal/auth/signal"
	cataloghandler "cardspace/internal/catalog/handler"
	catalogservice "cardspace/internal/catalog/service"
	catalogstore "cardspace/internal/catalog/store"
	brandstore "cardspace/internal/catalog/store/brand"
	categorystore "cardspace/internal/catalog/store/category"
	jwttoken "cardspace/internal/jwt_token"
	"cardspace/internal/navigation"
	navhandler "cardspace/internal/navigation/handler"
	navmetrics "cardspace/internal/navigation/metrics"
	"cardspace/internal/onboarding"
	onboardinghandler "cardspace/internal/onboarding/handler"
	onboardingmetrics "cardspace/internal/onboarding/metrics"
	onboardingservice "cardspace/internal/onboarding/service"
	onboardingstore "cardspace/internal/onboarding/store"
	"cardspace/internal/platform/config"
	"cardspace/internal/platform/httpserver"
	"cardspace/internal/platform/logger"
	"cardspace/internal/platform/metrics"
	"cardspace/internal/platform/middleware"
	"cardspace/internal/platform/postgres"
	platformredis "cardspace/internal/platform/redis"
	wallethandler "cardspace/internal/wallet/handler"
	walletservice "cardspace/internal/wallet/service"
	walletstore "cardspace/internal/wallet/store"
	audit "cardspace/pkg/platform/audit"
	"cardspace/pkg/platform/audit/publisher"
	auditkafka "cardspace/pkg/platform/audit/store/kafka"
	auditmem "cardspace/pkg/platform/audit/store/memory"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()
	log := logger.New(slog.LevelInfo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpMetrics := metrics.New(prometheus.DefaultRegisterer)

	// Onboarding flags: Redis when configured, in-process memory otherwise.
	var kv onboardingstore.KV = onboardingstore.NewMemory()
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		kv = onboardingstore.NewRedis(redisClient.Client)
		log.Info("onboarding flags on redis")
	} else {
		log.Warn("redis not configured, onboarding flags are in-process only")
	}

	// Catalog and wallet: Postgres when configured, memory otherwise.
	var (
		brands     catalogstore.BrandStore   = brandstore.NewMemoryStore()
		categories catalogstore.CategoryStore = categorystore.NewMemoryStore()
		cards      walletstore.CardStore     = walletstore.NewMemory()
	)
	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
		if err := postgres.Migrate(cfg.Postgres.DSN); err != nil {
			return err
		}
		brands = brandstore.NewPostgresStore(pool)
		categories = categorystore.NewPostgresStore(pool)
		cards = walletstore.NewPostgres(pool)
		log.Info("catalog and wallet on postgres")
	} else {
		log.Warn("postgres not configured, catalog and wallet are in-process only")
	}

	// Audit: always the in-process store, mirrored to Kafka when brokers are
	// configured.
	var auditStore audit.Store = auditmem.NewInMemoryStore()
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := kgo.NewClient(kgo.SeedBrokers(cfg.Kafka.Brokers...))
		if err != nil {
			return err
		}
		kafkaStore := auditkafka.New(kafkaClient, cfg.Kafka.AuditTopic, auditStore, log)
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := kafkaStore.Close(flushCtx); err != nil {
				log.Error("audit sink close failed", "error", err)
			}
		}()
		auditStore = kafkaStore
		log.Info("audit events mirrored to kafka", "topic", cfg.Kafka.AuditTopic)
	}
	auditor := publisher.NewPublisher(auditStore, publisher.WithAsyncBuffer(256))
	defer auditor.Close()

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "cardspace")
	validator := jwttoken.NewJWTServiceAdapter(jwtService)

	onboardingSvc := onboardingservice.New(
		kv,
		onboarding.DefaultKeys(),
		log,
		onboardingmetrics.New(prometheus.DefaultRegisterer),
		auditor,
	)

	controller := navigation.NewController(
		onboardingSvc,
		log,
		navmetrics.New(prometheus.DefaultRegisterer),
		auditor,
	)

	catalogSvc := catalogservice.New(brands, categories, log)
	walletSvc := walletservice.New(cards, log, auditor)

	router := chi.NewRouter()
	router.Use(
		middleware.Recovery(log),
		middleware.RequestID,
		middleware.Logger(log),
		middleware.Timeout(30*time.Second),
		middleware.ContentTypeJSON,
		middleware.DevicePlatform,
		middleware.Latency(httpMetrics),
	)

	navhandler.New(controller, log, validator, authsignal.NewMemoryDirectory()).Register(router)
	onboardinghandler.New(onboardingSvc, log, validator, cfg.AdminResetKeyHash).Register(router)
	cataloghandler.New(catalogSvc, log).Register(router)
	wallethandler.New(walletSvc, log, validator).Register(router)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	server := httpserver.New(cfg.Addr, router)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
