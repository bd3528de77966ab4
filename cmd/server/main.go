package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/peoplecore/hr-workforce/internal/api"
	"github.com/peoplecore/hr-workforce/internal/core/service"
	"github.com/peoplecore/hr-workforce/internal/infrastructure/authsvc"
	"github.com/peoplecore/hr-workforce/internal/infrastructure/bus"
	"github.com/peoplecore/hr-workforce/internal/infrastructure/config"
	mongodb "github.com/peoplecore/hr-workforce/internal/infrastructure/db/mongo"
	redisdb "github.com/peoplecore/hr-workforce/internal/infrastructure/db/redis"
	"github.com/peoplecore/hr-workforce/internal/infrastructure/outbox"
	"github.com/peoplecore/hr-workforce/pkg/logger"
)

// @title        HR Workforce API
// @version      1.0
// @description  Employee records, verification workflow and role management for the HR platform.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Repositories ---
	employeeRepo := mongodb.NewEmployeeRepository(db)
	roleRepo := mongodb.NewRoleAssignmentRepository(db)
	outboxRepo := mongodb.NewOutboxRepository(db)
	authRepo := mongodb.NewAuthRepository(db)
	txRunner := mongodb.NewTxRunner(mongoClient)

	for name, ensure := range map[string]func(context.Context) error{
		"employees":        employeeRepo.EnsureIndexes,
		"role_assignments": roleRepo.EnsureIndexes,
		"outbox":           outboxRepo.EnsureIndexes,
		"auth_users":       authRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("failed to ensure indexes")
		}
	}

	// --- Core services ---
	gate := service.NewAuthorizationGate(employeeRepo)
	employeeService := service.NewEmployeeService(employeeRepo, outboxRepo, txRunner, gate, log)
	verificationService := service.NewVerificationService(employeeRepo, outboxRepo, txRunner, gate, log)
	roleService := service.NewRoleService(roleRepo, outboxRepo, txRunner, gate, log)
	authService := service.NewAuthService(
		authRepo,
		roleRepo,
		outboxRepo,
		txRunner,
		cfg.JWT.Secret,
		cfg.JWT.TokenTTL,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
	)

	// --- Event pipeline ---
	authClient := authsvc.NewClient(
		cfg.AuthSvc.BaseURL,
		cfg.AuthSvc.ServiceName,
		cfg.AuthSvc.ServiceToken,
		cfg.AuthSvc.Timeout,
		log,
	)
	dedup := redisdb.NewDedupChecker(rdb)
	fanout := bus.NewFanout(
		bus.NewRedisBus(rdb, log),
		bus.NewAuthSyncPublisher(authClient, dedup, log),
	)
	dispatcher := outbox.NewDispatcher(outboxRepo, fanout, outbox.Options{
		PollInterval: cfg.Outbox.PollInterval,
		BatchSize:    cfg.Outbox.BatchSize,
		Retention:    cfg.Outbox.Retention,
	}, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(api.Dependencies{
		Config: cfg,
		Log:    log,
		Mongo:  db,
		Redis:  rdb,

		AuthService:         authService,
		EmployeeService:     employeeService,
		VerificationService: verificationService,
		RoleService:         roleService,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}
	log.Info().Msg("server stopped")
}
