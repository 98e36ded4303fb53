package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Pedro-L-Lopes/AlunosApi/internal/config"
	internalhttp "github.com/Pedro-L-Lopes/AlunosApi/internal/http"
	"github.com/Pedro-L-Lopes/AlunosApi/internal/repository/postgres"
	"github.com/Pedro-L-Lopes/AlunosApi/internal/service"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db connection failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	store := postgres.NewStore(pool)
	alunos := service.NewAlunoService(store)
	accounts := service.NewAccountService(store)
	server := internalhttp.NewServer(cfg, logger, alunos, accounts)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("alunos-api listening", slog.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}
}
