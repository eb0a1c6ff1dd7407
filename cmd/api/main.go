package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.mongodb.org/mongo-driver/mongo"

	mongoRepo "cineswipe/internal/infra/adapter/persistence/mongo"
	pgRepo "cineswipe/internal/infra/adapter/persistence/postgres"
	"cineswipe/internal/infra/db"
	"cineswipe/internal/infra/letterboxd"
	"cineswipe/internal/infra/modelstore"
	"cineswipe/internal/observability/logging"
	"cineswipe/internal/observability/slo"
	"cineswipe/internal/observability/tracing"
	"cineswipe/internal/recommend"
	"cineswipe/internal/repository"
	"cineswipe/pkg/config"

	catalogUC "cineswipe/internal/usecase/catalog"
	importUC "cineswipe/internal/usecase/importing"
	recUC "cineswipe/internal/usecase/recommend"
	trainUC "cineswipe/internal/usecase/train"

	hhttp "cineswipe/internal/handler/http"
	hadmin "cineswipe/internal/handler/http/admin"
	himporter "cineswipe/internal/handler/http/importer"
	hmovie "cineswipe/internal/handler/http/movie"
	hrec "cineswipe/internal/handler/http/recommendation"
	"cineswipe/internal/handler/http/requestid"
)

func main() {
	logger := initLogger()
	validateJWTSecret(logger)

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessions := setupSessionStore(ctx, logger)
	defer sessions.Close(logger)

	version := getVersion()
	handler, recSvc := setupServer(ctx, logger, database, sessions, version)

	runServer(ctx, cancel, logger, handler, recSvc, version)
}

// initLogger initializes and returns a structured logger based on environment configuration.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// validateJWTSecret validates the JWT_SECRET environment variable at startup,
// so a misconfigured deployment fails fast instead of rejecting every request.
func validateJWTSecret(logger *slog.Logger) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Error("JWT_SECRET must be set")
		os.Exit(1)
	}
	if len(secret) < 32 {
		logger.Error("JWT_SECRET must be at least 32 characters (256 bits)")
		os.Exit(1)
	}
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	dsn := os.Getenv("DATABASE_URL")
	database, err := db.Open(dsn)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// sessionRepoHolder bundles the optional MongoDB session logging backend.
// When the connection is absent the repo is nil and session logging is off.
type sessionRepoHolder struct {
	client *mongo.Client
	repo   repository.SessionRepository
}

// pingFunc returns a health check probe for the session store, or nil when
// session logging is disabled.
func (h *sessionRepoHolder) pingFunc() func(ctx context.Context) error {
	if h.client == nil {
		return nil
	}
	return func(ctx context.Context) error {
		return h.client.Ping(ctx, nil)
	}
}

// Close disconnects the MongoDB client if one was opened.
func (h *sessionRepoHolder) Close(logger *slog.Logger) {
	if h.client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.client.Disconnect(ctx); err != nil {
		logger.Error("failed to disconnect session store", slog.Any("error", err))
	}
}

// setupSessionStore connects to MongoDB when MONGO_URI is set. Session
// logging is best effort: a failed connection degrades the API to running
// without explanation history rather than refusing to start.
func setupSessionStore(ctx context.Context, logger *slog.Logger) *sessionRepoHolder {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		logger.Info("session logging disabled, MONGO_URI not set")
		return &sessionRepoHolder{}
	}

	client, err := mongoRepo.Connect(ctx, uri)
	if err != nil {
		logger.Warn("session store unavailable, continuing without session logging",
			slog.Any("error", err))
		return &sessionRepoHolder{}
	}

	dbName := config.GetEnvString("MONGO_DATABASE", "cineswipe")
	logger.Info("session store connected", slog.String("database", dbName))
	return &sessionRepoHolder{
		client: client,
		repo:   mongoRepo.NewSessionRepo(client, dbName),
	}
}

// setupServer wires repositories, services, and HTTP routes, returning the
// fully decorated handler and the recommendation service for readiness checks.
func setupServer(ctx context.Context, logger *slog.Logger, database *sql.DB, sessions *sessionRepoHolder, version string) (http.Handler, *recUC.Service) {
	movieRepo := pgRepo.NewMovieRepo(database)
	interactionRepo := pgRepo.NewInteractionRepo(database)

	modelPath := config.GetEnvString("MODEL_PATH", "data/model.gob")
	store := modelstore.NewFileStore(modelPath)

	engineCfg, err := recommend.ConfigFromFile(os.Getenv("ENGINE_CONFIG_PATH"))
	if err != nil {
		logger.Error("failed to load engine configuration", slog.Any("error", err))
		os.Exit(1)
	}

	catalogSvc := &catalogUC.Service{Movies: movieRepo}
	recSvc := recUC.NewService(store, movieRepo, interactionRepo, sessions.repo)
	trainer := &trainUC.Service{
		Movies:       movieRepo,
		Interactions: interactionRepo,
		Store:        store,
		Sessions:     sessions.repo,
		Config:       engineCfg,
	}
	importSvc := &importUC.Service{
		Fetcher:      letterboxd.NewFetcher(newLetterboxdHTTPClient()),
		Movies:       movieRepo,
		Interactions: interactionRepo,
	}

	// Load the latest artifact, if the trainer has produced one.
	if err := recSvc.Reload(ctx); err != nil {
		logger.Warn("model reload failed, serving unfitted until next retrain",
			slog.Any("error", err))
	} else if recSvc.Ready() {
		logger.Info("model loaded", slog.String("path", modelPath))
	}

	mux := http.NewServeMux()
	hmovie.Register(mux, catalogSvc, recSvc)
	hrec.Register(mux, recSvc)
	himporter.Register(mux, importSvc, recSvc)
	hadmin.Register(mux, trainer, recSvc)

	mux.Handle("GET /healthz", &hhttp.HealthHandler{
		DB:          database,
		Version:     version,
		SessionPing: sessions.pingFunc(),
	})
	mux.Handle("GET /readyz", &hhttp.ReadyHandler{Ready: recSvc.Ready})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	return applyMiddleware(logger, mux), recSvc
}

// newLetterboxdHTTPClient returns the client used for ratings feed fetches.
// TLS 1.2+ is enforced and the timeout stays short, since a slow upstream
// must not pin an import request.
func newLetterboxdHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 15 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
}

// applyMiddleware wraps the handler with the middleware chain.
// Order (outermost to innermost): CORS, request ID, IP rate limit, recovery,
// logging, request timeout, input validation, body size limit, security
// headers, tracing, metrics.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	allowedOrigins := config.GetEnvStringList("CORS_ALLOWED_ORIGINS", nil)
	rps := config.GetEnvInt("RATE_LIMIT_RPS", 20)
	burst := config.GetEnvInt("RATE_LIMIT_BURST", 40)
	rateLimiter := hhttp.NewRateLimiter(float64(rps), burst)

	chain := handler

	// Apply in reverse order (innermost to outermost)
	chain = hhttp.MetricsMiddleware(chain)
	chain = tracing.Middleware(chain)
	chain = hhttp.SecurityHeaders()(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain) // 1MB limit
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.Timeout(30 * time.Second)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = rateLimiter.Limit(chain)
	chain = requestid.Middleware(chain)
	chain = hhttp.CORS(allowedOrigins)(chain)

	return chain
}

// runServer starts the HTTP server and the SLO evaluator, then blocks until
// a shutdown signal arrives.
func runServer(ctx context.Context, cancel context.CancelFunc, logger *slog.Logger, handler http.Handler, recSvc *recUC.Service, version string) {
	// Evaluate availability and latency objectives from the metrics registry.
	go slo.NewEvaluator().Run(ctx)

	addr := config.GetEnvString("LISTEN_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version),
			slog.Bool("model_ready", recSvc.Ready()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	// Stop the SLO evaluator and any other background goroutines.
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
