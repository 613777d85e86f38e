package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/werkbank/workshop-system/internal/api"
	"github.com/werkbank/workshop-system/internal/core/service"
	"github.com/werkbank/workshop-system/internal/infrastructure/db/mongo"
	"github.com/werkbank/workshop-system/internal/infrastructure/db/postgres"
	"github.com/werkbank/workshop-system/internal/infrastructure/db/redis"
	"github.com/werkbank/workshop-system/internal/infrastructure/http/handlers"
	"github.com/werkbank/workshop-system/internal/infrastructure/queue"
	"github.com/werkbank/workshop-system/internal/pkg/config"
	"github.com/werkbank/workshop-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title                      Workshop API
// @version                    1.0
// @description                Multi-tenant workshop management: employees, customers, work orders and tasks.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                Type "Bearer" followed by a space and the access token.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "workshop-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Infrastructure ---
	db, err := postgres.Connect(ctx, postgres.Config{
		URL:          cfg.Postgres.URL,
		MaxOpenConns: cfg.Postgres.MaxOpenConns,
		MaxIdleConns: cfg.Postgres.MaxIdleConns,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return err
	}

	mongoClient, mongoDB, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	redisClient, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer redisClient.Close()

	// --- Repositories ---
	employeeRepo := postgres.NewEmployeeRepository(db)
	orgRepo := postgres.NewOrganizationRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)
	workorderRepo := postgres.NewWorkorderRepository(db)
	taskRepo := postgres.NewTaskRepository(db)

	activityRepo := mongo.NewActivityRepository(mongoDB)
	if err := activityRepo.EnsureIndexes(ctx); err != nil {
		return err
	}
	idempotency := redis.NewIdempotencyStore(redisClient, cfg.IdempotencyTTL)

	// --- Services ---
	orgSource, err := service.ParseOrgSource(cfg.OrgSource)
	if err != nil {
		return err
	}
	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, time.Now)

	activitySvc := service.NewActivityService(activityRepo, workorderRepo, log)
	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, activitySvc, log)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)
	defer func() {
		stopWorkers()
		dispatcher.Wait()
	}()

	services := api.Services{
		Authenticator: service.NewAuthenticator(tokens, employeeRepo, orgSource, log),
		Auth:          service.NewAuthService(employeeRepo, orgRepo, hasher, tokens, log),
		Employees:     service.NewEmployeeService(employeeRepo, hasher, log),
		Customers:     service.NewCustomerService(customerRepo),
		Workorders:    service.NewWorkorderService(workorderRepo, customerRepo, idempotency, dispatcher, log),
		Tasks:         service.NewTaskService(taskRepo, workorderRepo, employeeRepo, dispatcher, log),
		Portal:        service.NewPortalService(workorderRepo, taskRepo),
		Activity:      activitySvc,
	}

	// --- HTTP ---
	e := api.NewRouter(services, api.Options{
		Log:         log,
		CORSOrigins: cfg.CORSOrigins,
		Metrics:     true,
		HealthChecks: []handlers.Check{
			handlers.PostgresCheck(db),
			handlers.MongoCheck(mongoDB),
			handlers.RedisCheck(redisClient),
		},
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
