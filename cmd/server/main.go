package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"sentra/internal/applicability"
	"sentra/internal/assessment"
	"sentra/internal/assurance"
	"sentra/internal/catalog"
	"sentra/internal/evidence"
	jwttoken "sentra/internal/jwt_token"
	"sentra/internal/platform/config"
	"sentra/internal/platform/httpserver"
	"sentra/internal/platform/kafka"
	"sentra/internal/platform/logger"
	"sentra/internal/platform/metrics"
	"sentra/internal/platform/middleware"
	platformredis "sentra/internal/platform/redis"
	"sentra/internal/status"
	"sentra/internal/timeline"
	httptransport "sentra/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := metrics.New()

	// Storage. Postgres when configured, in-memory otherwise.
	var (
		db           *sql.DB
		catalogStore catalog.Store
		packStore    assurance.Store
	)
	if cfg.PostgresDSN != "" {
		var err error
		db, err = sql.Open("pgx", cfg.PostgresDSN)
		if err != nil {
			log.Error("open postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Error("ping postgres", "error", err)
			os.Exit(1)
		}
		catalogStore = catalog.NewPostgresStore(db)
		packStore = assurance.NewPostgresStore(db)
	} else {
		catalogStore = catalog.NewInMemoryStore()
		packStore = assurance.NewInMemoryStore()
	}

	// Timeline storage. Redis when configured, then postgres, then memory.
	var timelineStore timeline.Store = timeline.NewInMemoryStore()
	if db != nil {
		timelineStore = timeline.NewPostgresStore(db)
	}
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		timelineStore = timeline.NewRedisStore(redisClient.Client)
	}

	// Optional Kafka fan-out for timeline events.
	timelineOpts := []timeline.Option{
		timeline.WithLogger(log),
		timeline.WithMetrics(m),
	}
	producer, err := kafka.NewProducer(ctx, cfg.Kafka)
	if err != nil {
		log.Error("connect kafka", "error", err)
		os.Exit(1)
	}
	if producer != nil {
		defer producer.Close()
		outbox := make(chan timeline.Event, 256)
		timelineOpts = append(timelineOpts, timeline.WithOutbox(outbox))
		worker := timeline.NewWorker(producer, outbox, log)
		go func() { _ = worker.Run(ctx) }()
	}
	timelineSvc := timeline.NewService(timelineStore, timelineOpts...)

	// Seed the control library on first boot.
	existing, err := catalogStore.ListControls(ctx)
	if err != nil {
		log.Error("inspect catalog", "error", err)
		os.Exit(1)
	}
	if len(existing) == 0 {
		if err := catalog.Seed(ctx, catalogStore, time.Now()); err != nil {
			log.Error("seed catalog", "error", err)
			os.Exit(1)
		}
		log.Info("control library seeded")
	}

	catalogSvc := catalog.NewService(catalogStore,
		catalog.WithRecorder(timelineSvc),
		catalog.WithMetrics(m),
		catalog.WithLogger(log),
		catalog.WithOverlaps(catalog.DefaultOverlaps()),
	)

	answers := assessment.NewInMemorySource()
	resolver := applicability.NewDefaultResolver()
	engine := status.NewEngine(resolver)
	statusSvc := status.NewService(engine, answers, catalogSvc,
		status.WithMetrics(m),
		status.WithLogger(log),
	)

	assuranceSvc := assurance.NewService(packStore, catalogSvc, engine, answers,
		assurance.WithRecorder(timelineSvc),
		assurance.WithMetrics(m),
		assurance.WithLogger(log),
	)

	evidenceSvc := evidence.NewService(evidence.NewInMemoryStore(), catalogSvc,
		evidence.WithRecorder(timelineSvc),
		evidence.WithLogger(log),
	)

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "sentra", "sentra-api")
	auth := middleware.RequireAuth(jwttoken.NewJWTServiceAdapter(jwtService), log)
	admin := middleware.RequireAdminKey(cfg.AdminKeyHash, auth, log)

	router := httptransport.NewRouter(log, m,
		httptransport.NewCatalogHandler(catalogSvc, log, admin),
		httptransport.NewStatusHandler(statusSvc, log),
		httptransport.NewAssuranceHandler(assuranceSvc, log, auth),
		httptransport.NewTimelineHandler(timelineSvc, log),
		httptransport.NewEvidenceHandler(evidenceSvc, log, auth),
		httptransport.NewDashboardHandler(statusSvc, timelineSvc, log),
	)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting sentra", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
