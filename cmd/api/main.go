package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"app/internal/config"
	"app/internal/handler"
	infraRepo "app/internal/infra/repository"
	"app/internal/oplog"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	// Optional; containers set env vars directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Prices serialize as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true

	ops := oplog.New(cfg.OplogPath, logger)

	productRepo := infraRepo.NewProductMemoryRepository()
	orderRepo := infraRepo.NewOrderMemoryRepository()

	productUC := usecase.NewProductUsecase(productRepo, ops)
	orderUC := usecase.NewOrderUsecase(orderRepo, productRepo, ops)
	importUC := usecase.NewCSVImportUsecase(productUC, logger)

	productH := handler.NewProductHandler(productUC, importUC)
	orderH := handler.NewOrderHandler(orderUC)

	e := server.New(logger, productH, orderH)

	schedCtx, stopScheduler := context.WithCancel(context.Background())
	go ops.RunScheduler(schedCtx, cfg.FlushInterval)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()
	logger.Info("server started",
		zap.String("port", cfg.Port),
		zap.String("oplog", cfg.OplogPath),
		zap.Duration("flush_interval", cfg.FlushInterval))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	stopScheduler()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}

	// Entries below the flush threshold would otherwise be lost on exit.
	ops.FlushPending()
}
