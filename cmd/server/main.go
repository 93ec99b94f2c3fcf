package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "xpoll/docs"
	"xpoll/internal/config"
	"xpoll/internal/domain/poll"
	"xpoll/internal/domain/response"
	"xpoll/internal/domain/summary"
	"xpoll/internal/domain/user"
	api "xpoll/internal/http"
	"xpoll/internal/metrics"
	"xpoll/internal/platform/database"
	"xpoll/internal/platform/hash"
	"xpoll/internal/repository/postgres"
	"xpoll/internal/repository/sqlite"
	"xpoll/internal/retry"
	"xpoll/internal/worker"
)

// @title           xpoll API
// @version         1.0
// @description     Poll lifecycle and response tally service
// @BasePath        /api/v1
func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	api.SetLogger(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var db *sql.DB
	err := retry.Do(ctx, 5, time.Second, func() error {
		var openErr error
		db, openErr = database.Open(ctx, database.Config{
			Driver:          cfg.DBDriver,
			DSN:             cfg.DBDSN,
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxLifetime: cfg.DBConnLifetime,
			ConnectTimeout:  cfg.DBConnectTimeout,
		})
		if openErr != nil {
			logger.Warn("store not ready", "error", openErr)
		}
		return openErr
	})
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db, cfg.DBDriver); err != nil {
		log.Fatalf("db schema error: %v", err)
	}

	metrics.Register()

	var (
		userRepo     user.Repository
		pollRepo     poll.Repository
		responseRepo response.Repository
		summaryRepo  summary.Repository
	)
	switch cfg.DBDriver {
	case "sqlite":
		userRepo = sqlite.NewUserRepo(db)
		pollRepo = sqlite.NewPollRepo(db)
		responseRepo = sqlite.NewResponseRepo(db)
		summaryRepo = sqlite.NewSummaryRepo(db)
	default:
		userRepo = postgres.NewUserRepo(db)
		pollRepo = postgres.NewPollRepo(db)
		responseRepo = postgres.NewResponseRepo(db)
		summaryRepo = postgres.NewSummaryRepo(db)
	}

	userSvc := user.NewService(userRepo, hash.NewBcrypt())
	pollSvc := poll.NewService(pollRepo)
	responseSvc := response.NewService(responseRepo)
	summarySvc := summary.NewService(summaryRepo)

	responseCh := make(chan worker.ResponseEvent, 100)
	tallyWorker := worker.NewTallyWorker(responseCh, logger)

	router := api.NewRouter(userSvc, pollSvc, responseSvc, summarySvc, responseCh, db)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go tallyWorker.Run(ctx)

	go func() {
		logger.Info("server listening", "addr", srv.Addr, "driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	<-stop
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown error: %v", err)
	}

	logger.Info("server stopped")
}
