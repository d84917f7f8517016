package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rcoelho/loja-virtual/internal/config"
	"github.com/rcoelho/loja-virtual/internal/delivery/events"
	httpDelivery "github.com/rcoelho/loja-virtual/internal/delivery/http"
	"github.com/rcoelho/loja-virtual/internal/delivery/http/handler"
	"github.com/rcoelho/loja-virtual/internal/pkg/cache"
	"github.com/rcoelho/loja-virtual/internal/pkg/database"
	"github.com/rcoelho/loja-virtual/internal/pkg/logger"
	cacheRepo "github.com/rcoelho/loja-virtual/internal/repository/cache"
	"github.com/rcoelho/loja-virtual/internal/repository/postgres"
	"github.com/rcoelho/loja-virtual/internal/usecase/produto"
	"github.com/rcoelho/loja-virtual/internal/usecase/relatorio"
	"github.com/rcoelho/loja-virtual/internal/usecase/venda"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Env)
	appLogger.Info("Starting Loja Virtual API...")

	appLogger.Info("Connecting to PostgreSQL...")
	db, err := database.WaitForDB(cfg, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL successfully")

	if err := database.RunMigrations(db); err != nil {
		appLogger.Fatal("Failed to run migrations", err)
	}

	appLogger.Info("Connecting to Redis...")
	redisClient, err := cache.WaitForRedis(cfg, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis successfully")

	appLogger.Info("Connecting to NATS...")
	publisher, err := events.NewPublisher(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create NATS publisher", err)
	}
	defer publisher.Close()

	produtoRepo := postgres.NewProdutoRepository(db)
	vendaRepo := postgres.NewVendaRepository(db)
	redisCache := cacheRepo.NewRedisCache(
		redisClient,
		cfg.Cache.ProdutosTTL,
		cfg.Cache.ResumoTTL,
	)

	produtoService := produto.NewService(produtoRepo, redisCache, appLogger)
	vendaService := venda.NewService(vendaRepo, redisCache, publisher, appLogger)
	relatorioService := relatorio.NewService(produtoRepo, vendaRepo, redisCache, appLogger)

	produtoHandler := handler.NewProdutoHandler(produtoService, appLogger)
	vendaHandler := handler.NewVendaHandler(vendaService, appLogger)
	relatorioHandler := handler.NewRelatorioHandler(relatorioService, appLogger)

	router := httpDelivery.NewRouter(produtoHandler, vendaHandler, relatorioHandler, cfg, appLogger)
	httpHandler := router.Setup()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      httpHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Infof("HTTP server listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("HTTP server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", err)
	}

	appLogger.Info("Server stopped gracefully")
}
