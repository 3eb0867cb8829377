package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/rollcall-app/rollcall/internal/app"
	"github.com/rollcall-app/rollcall/internal/authn"
	"github.com/rollcall-app/rollcall/internal/authz"
	"github.com/rollcall-app/rollcall/internal/classrooms"
	"github.com/rollcall-app/rollcall/internal/platform/cache"
	"github.com/rollcall-app/rollcall/internal/platform/db"
	"github.com/rollcall-app/rollcall/internal/shared"
	"github.com/rollcall-app/rollcall/internal/students"
	"github.com/rollcall-app/rollcall/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, ownership checks go straight to postgres", slog.Any("error", err))
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	tokenIssuer := authn.NewTokenIssuer(cfg.TokenSecret, cfg.TokenTTL)
	authnRepo := authn.NewRepository(pool)
	authnService := authn.NewService(authnRepo, tokenIssuer)
	authnHandler := authn.NewHandler(logger, authnService)
	authnMiddleware := authn.Middleware{Issuer: tokenIssuer, Logger: logger}

	classroomRepo := classrooms.NewRepository(pool)
	ownership := classrooms.NewOwnershipCache(classroomRepo, redisClient, cfg.OwnershipCacheTTL, logger)

	evaluator := authz.NewEvaluator(authz.DefaultRegistry(), ownership)
	authzMiddleware := authz.Middleware{Evaluator: evaluator, Logger: logger}

	auditLogger := shared.NewAuditLogger(pool)
	studentRepo := students.NewRepository(pool)
	studentService := students.NewService(studentRepo, classroomRepo, auditLogger, logger)
	studentsHandler := students.NewHandler(logger, studentService, authzMiddleware)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobsHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		AuthnHandler:    authnHandler,
		AuthnMiddleware: authnMiddleware,
		StudentsHandler: studentsHandler,
		JobsHandler:     jobsHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
