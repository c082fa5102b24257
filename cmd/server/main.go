// Package main wires the credential verification service: registry, issuance,
// verification, access gate, and match filter behind the HTTP boundary.
// Business logic lives in the internal services packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	consentsvc "proofgate/internal/consent/service"
	consentstore "proofgate/internal/consent/store"
	"proofgate/internal/gate"
	"proofgate/internal/issuance"
	"proofgate/internal/match"
	"proofgate/internal/platform/config"
	"proofgate/internal/platform/database"
	"proofgate/internal/platform/health"
	"proofgate/internal/platform/kafka/producer"
	"proofgate/internal/platform/logger"
	"proofgate/internal/platform/redis"
	"proofgate/internal/proofsystem"
	"proofgate/internal/registry/cache"
	regmetrics "proofgate/internal/registry/metrics"
	"proofgate/internal/registry/readmodel"
	registrysvc "proofgate/internal/registry/service"
	"proofgate/internal/registry/store"
	httptransport "proofgate/internal/transport/http"
	"proofgate/internal/verification"
	"proofgate/pkg/platform/audit"
	"proofgate/pkg/platform/audit/sink"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing proofgate",
		"addr", cfg.Addr,
		"proof_recheck", cfg.ProofRecheck,
	)

	// Audit pipeline: in-memory log always; Kafka sink when brokers are set.
	auditStore := audit.NewInMemoryStore()
	var auditSink audit.Store = auditStore
	var kafkaProducer *producer.Producer
	if cfg.KafkaBrokers != "" {
		prodCfg := producer.DefaultConfig()
		prodCfg.Brokers = cfg.KafkaBrokers
		var err error
		kafkaProducer, err = producer.New(prodCfg, log)
		if err != nil {
			log.Error("kafka producer init failed", "error", err)
			os.Exit(1)
		}
		auditSink = sink.Tee{auditStore, sink.NewKafkaStore(kafkaProducer, cfg.AuditTopic)}
	}
	auditor := audit.NewPublisher(auditSink,
		audit.WithAsyncBuffer(1024),
		audit.WithPublisherLogger(log),
	)

	// Ledger and read path.
	ledger := store.NewInMemoryLedger()
	registryMetrics := regmetrics.New()

	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.DatabaseURL
	pool, err := database.New(dbCfg)
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}

	redisCfg := redis.DefaultConfig()
	redisCfg.URL = cfg.RedisURL
	redisClient, err := redis.New(redisCfg)
	if err != nil {
		log.Error("redis init failed", "error", err)
		os.Exit(1)
	}

	var kv cache.KV = cache.NewMemoryKV()
	if redisClient != nil {
		kv = cache.NewRedisKV(redisClient)
	}
	credCache := cache.New(ledger, kv, cfg.ReadCacheTTL,
		cache.WithMetrics(registryMetrics),
		cache.WithLogger(log),
	)

	registryOpts := []registrysvc.Option{
		registrysvc.WithMetrics(registryMetrics),
		registrysvc.WithLogger(log),
		registrysvc.WithInvalidator(credCache),
	}
	var consentStore consentstore.Store = consentstore.NewInMemory()
	if pool != nil {
		registryOpts = append(registryOpts, registrysvc.WithMirror(readmodel.NewPostgres(pool.DB())))
		consentStore = consentstore.NewPostgres(pool.DB())
	}
	registry := registrysvc.New(ledger, auditor, registryOpts...)

	// Proof system: external endpoint when configured, in-process simulator
	// for local runs.
	var proofs proofsystem.ProofSystem = proofsystem.NewSimulator()
	if cfg.ProofSystemURL != "" {
		proofs = proofsystem.NewHTTPClient(cfg.ProofSystemURL)
	}

	issuanceSvc := issuance.New(proofs, registry, issuance.WithLogger(log))

	verifyOpts := []verification.Option{verification.WithMetrics(verification.NewMetrics())}
	if cfg.ProofRecheck {
		verifyOpts = append(verifyOpts, verification.WithProofRecheck(proofs))
	}
	engine := verification.New(credCache, verifyOpts...)

	consents := consentsvc.New(consentStore, auditor, consentsvc.WithLogger(log))
	accessGate := gate.New(engine, consents,
		gate.WithAuditPublisher(auditor),
		gate.WithLogger(log),
	)
	filter := match.New(credCache, accessGate, match.WithLogger(log))

	checks := map[string]health.CheckFunc{}
	if pool != nil {
		checks["read_model"] = func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Health(ctx)
		}
	}
	if redisClient != nil {
		checks["read_cache"] = func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Health(ctx)
		}
	}

	handler := httptransport.NewHandler(issuanceSvc, registry, engine, filter, consents, log)
	router := httptransport.NewRouter(handler, log, httptransport.RouterConfig{
		JWTSigningKey: []byte(cfg.JWTSigningKey),
		Environment:   cfg.Environment,
		HealthChecks:  checks,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("starting http server", "addr", cfg.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}

	// Drain audit events before closing downstream sinks.
	auditor.Close()
	if kafkaProducer != nil {
		if err := kafkaProducer.Close(); err != nil {
			log.Error("kafka producer close failed", "error", err)
		}
	}
	if err := pool.Close(); err != nil {
		log.Error("database close failed", "error", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("redis close failed", "error", err)
		}
	}

	log.Info("server stopped")
}
