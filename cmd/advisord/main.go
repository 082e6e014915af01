package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/loanworks/advisor/internal/application/usecase"
	"github.com/loanworks/advisor/internal/domain/service"
	"github.com/loanworks/advisor/internal/infrastructure/catalog"
	"github.com/loanworks/advisor/internal/infrastructure/config"
	"github.com/loanworks/advisor/internal/infrastructure/kafka"
	pgRepo "github.com/loanworks/advisor/internal/infrastructure/postgres"
	grpcPresentation "github.com/loanworks/advisor/internal/presentation/grpc"
	"github.com/loanworks/advisor/internal/presentation/rest"
	"github.com/loanworks/advisor/pkg/auth"
	pkgkafka "github.com/loanworks/advisor/pkg/kafka"
	"github.com/loanworks/advisor/pkg/observability"
	pkgpostgres "github.com/loanworks/advisor/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()
	cfg.Validate()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.Observability.LogLevel,
		Format: cfg.Observability.LogFormat,
	})
	slog.SetDefault(logger)

	logger.Info("starting advisor-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"guideline_version", cfg.GuidelineVersion,
	)

	// Initialize tracing.
	if cfg.Observability.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.ServiceName,
			Endpoint:    cfg.Observability.OTLPEndpoint,
			Insecure:    true,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer func() { _ = shutdown(ctx) }() //nolint:errcheck // best-effort tracer shutdown
		}
	}

	// Initialize metrics.
	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
		Port:        cfg.HTTPPort,
	})
	if err != nil {
		logger.Warn("failed to initialize metrics, continuing without metrics", "error", err)
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	dbCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
	pool, err := pkgpostgres.NewPool(dbCtx, dbCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Run database migrations.
	if migErr := pkgpostgres.RunMigrations(dbCfg.DSN(), "file://"+cfg.DB.MigrationsDir); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Wire infrastructure adapters.
	scenarioRepo := pgRepo.NewScenarioRepo(pool)
	tradelineRepo := pgRepo.NewTradelineRepo(pool)
	decisionRepo := pgRepo.NewDecisionRecordRepo(pool)
	auditRepo := pgRepo.NewAuditLogRepo(pool)

	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer kafkaProducer.Close()
	publisher := kafka.NewEventPublisher(kafkaProducer, cfg.Kafka.Topic, logger)

	programCatalog := catalog.NewStaticCatalog()

	// Domain engines.
	filter := service.NewEligibilityFilter()
	builder := service.NewStackBuilder()
	detector := service.NewDuplicateDetector()
	selector := service.NewStudentLoanRuleSelector()
	streamlineRules := service.NewStreamlineRuleEngine()
	ntbAnalyzer := service.NewNTBAnalyzer()
	miOptimizer := service.NewMIOptimizer()
	buydownComparator := service.NewBuydownComparator()

	// Wire use cases.
	handler := grpcPresentation.NewAdvisorHandler(grpcPresentation.HandlerDeps{
		CreateScenario: usecase.NewCreateScenarioUseCase(scenarioRepo, publisher),
		GetScenario:    usecase.NewGetScenarioUseCase(scenarioRepo),
		UpdateScenario: usecase.NewUpdateScenarioUseCase(scenarioRepo, publisher),
		ListScenarios:  usecase.NewListScenariosUseCase(scenarioRepo),

		BuildStacks:   usecase.NewBuildAssistanceStacksUseCase(scenarioRepo, programCatalog, filter, builder),
		Consolidation: usecase.NewRunDebtConsolidationUseCase(scenarioRepo, tradelineRepo, auditRepo, publisher, detector, selector),
		ResolveDupe:   usecase.NewResolveDuplicateUseCase(tradelineRepo, auditRepo, publisher),
		Streamline:    usecase.NewRunStreamlineAnalysisUseCase(scenarioRepo, publisher, streamlineRules, ntbAnalyzer),
		MIComparison:  usecase.NewRunMIComparisonUseCase(scenarioRepo, publisher, miOptimizer),
		RateBuydown:   usecase.NewRunRateBuydownUseCase(scenarioRepo, publisher, buydownComparator),

		RecordDecision: usecase.NewRecordDecisionUseCase(scenarioRepo, decisionRepo, auditRepo, publisher),
		VoidDecision:   usecase.NewVoidDecisionUseCase(decisionRepo, auditRepo, publisher),
		ExportLog:      usecase.NewExportDecisionLogUseCase(decisionRepo),

		DataSource:       cfg.DataSource,
		GuidelineVersion: cfg.GuidelineVersion,
	})

	// JWT service (validation-only: public key preferred, secret as fallback).
	jwtCfg := auth.JWTConfig{
		Issuer: cfg.Auth.Issuer,
	}
	if cfg.Auth.PublicKeyFile != "" {
		keyData, loadErr := auth.LoadKeyFromFile(cfg.Auth.PublicKeyFile)
		if loadErr != nil {
			logger.Error("failed to load JWT public key file", "error", loadErr)
			os.Exit(1)
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	} else {
		jwtCfg.Secret = cfg.Auth.JWTSecret
	}
	jwtSvc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// gRPC server.
	grpcServer := grpcPresentation.NewServer(handler, logger, jwtSvc, cfg.TLS.CertFile, cfg.TLS.KeyFile)

	// HTTP server (health checks and metrics).
	mux := http.NewServeMux()
	healthHandler := rest.NewHealthHandler(logger, func() error {
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer pingCancel()
		return pool.Ping(pingCtx)
	})
	healthHandler.RegisterRoutes(mux)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("advisor-service stopped")
}
