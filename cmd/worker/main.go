package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/mongo"

	mongoRepo "cineswipe/internal/infra/adapter/persistence/mongo"
	pgRepo "cineswipe/internal/infra/adapter/persistence/postgres"
	"cineswipe/internal/infra/db"
	"cineswipe/internal/infra/modelstore"
	workerPkg "cineswipe/internal/infra/worker"
	"cineswipe/internal/observability/logging"
	"cineswipe/internal/recommend"
	"cineswipe/internal/repository"
	trainUC "cineswipe/internal/usecase/train"
	"cineswipe/pkg/config"
)

// waitForMigrations blocks until the API has applied the schema. The worker
// deliberately does not run migrations itself; only one process owns them.
func waitForMigrations(logger *slog.Logger, database *sql.DB) {
	const probe = "SELECT 1 FROM movies LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := database.Exec(probe); err == nil {
			return
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		time.Sleep(3 * time.Second)
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
}

func main() {
	logger := initLogger()
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load worker configuration (fail-open strategy)
	workerMetrics := workerPkg.NewWorkerMetrics()
	workerMetrics.MustRegister()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("train_timeout", workerConfig.TrainTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	// Start metrics HTTP server
	startMetricsServer(ctx, logger)

	// Start health check server
	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	trainer, sessionCleanup := setupTrainer(ctx, logger, database)
	defer sessionCleanup()

	startCronWorker(logger, trainer, workerConfig, workerMetrics, healthServer)
}

// initLogger initializes and returns a structured logger based on environment configuration.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the database connection and waits for migrations to complete.
func initDatabase(logger *slog.Logger) *sql.DB {
	database, err := db.Open(os.Getenv("DATABASE_URL"))
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	waitForMigrations(logger, database)
	return database
}

// setupTrainer creates the training service with all dependencies.
// Returns the service and a cleanup function for graceful shutdown.
func setupTrainer(ctx context.Context, logger *slog.Logger, database *sql.DB) (*trainUC.Service, func()) {
	movieRepo := pgRepo.NewMovieRepo(database)
	interactionRepo := pgRepo.NewInteractionRepo(database)

	modelPath := config.GetEnvString("MODEL_PATH", "data/model.gob")
	store := modelstore.NewFileStore(modelPath)

	engineCfg, err := recommend.ConfigFromFile(os.Getenv("ENGINE_CONFIG_PATH"))
	if err != nil {
		logger.Error("failed to load engine configuration", slog.Any("error", err))
		os.Exit(1)
	}

	sessions, client := setupVersionLog(ctx, logger)

	trainer := &trainUC.Service{
		Movies:       movieRepo,
		Interactions: interactionRepo,
		Store:        store,
		Sessions:     sessions,
		Config:       engineCfg,
	}

	cleanup := func() {
		if client == nil {
			return
		}
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Error("failed to disconnect version log store", slog.Any("error", err))
		}
	}

	return trainer, cleanup
}

// setupVersionLog connects to MongoDB for model version records when
// MONGO_URI is set. Version logging is best effort: a failed connection
// degrades the worker to training without version history.
func setupVersionLog(ctx context.Context, logger *slog.Logger) (repository.SessionRepository, *mongo.Client) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		logger.Info("model version logging disabled, MONGO_URI not set")
		return nil, nil
	}

	client, err := mongoRepo.Connect(ctx, uri)
	if err != nil {
		logger.Warn("version log store unavailable, continuing without version records",
			slog.Any("error", err))
		return nil, nil
	}

	dbName := config.GetEnvString("MONGO_DATABASE", "cineswipe")
	logger.Info("version log store connected", slog.String("database", dbName))
	return mongoRepo.NewSessionRepo(client, dbName), client
}

// startCronWorker starts the cron scheduler and runs the training job periodically.
func startCronWorker(logger *slog.Logger, trainer *trainUC.Service, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics, healthServer *workerPkg.HealthServer) {
	// Load timezone
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runTrainingJob(logger, trainer, cfg, metrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	// Mark as ready after cron is set up
	healthServer.SetReady(true)
	logger.Info("worker marked as ready")

	logger.Info("worker started", slog.String("schedule", cfg.CronSchedule), slog.String("timezone", cfg.Timezone))
	select {}
}

// runTrainingJob executes a single training cycle with timeout and error handling.
func runTrainingJob(logger *slog.Logger, trainer *trainUC.Service, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics) {
	startTime := time.Now()
	logger.Info("training started")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.TrainTimeout)
	defer cancel()

	result, err := trainer.Train(ctx)
	if err != nil {
		logger.Error("training failed", slog.Any("error", err))
		metrics.RecordJobRun("failure")
		metrics.RecordJobDuration(time.Since(startTime).Seconds())
		return
	}

	// Record metrics
	metrics.RecordJobRun("success")
	metrics.RecordJobDuration(time.Since(startTime).Seconds())
	metrics.RecordEventsTrained(result.Events)
	metrics.RecordLastSuccess()

	logger.Info("training completed",
		slog.Int("movies", result.Movies),
		slog.Int("users", result.Users),
		slog.Int("events", result.Events),
		slog.Time("trained_at", result.TrainedAt),
		slog.Duration("duration", result.Duration),
	)
}
