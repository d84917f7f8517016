package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rcoelho/loja-virtual/internal/config"
	"github.com/rcoelho/loja-virtual/internal/delivery/events"
	"github.com/rcoelho/loja-virtual/internal/pkg/database"
	"github.com/rcoelho/loja-virtual/internal/pkg/logger"
	"github.com/rcoelho/loja-virtual/internal/repository/postgres"
	"github.com/rcoelho/loja-virtual/internal/usecase/venda"
	"github.com/rcoelho/loja-virtual/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Env)
	appLogger.Info("Starting estoque worker...")

	appLogger.Info("Connecting to PostgreSQL...")
	db, err := database.WaitForDB(cfg, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()
	appLogger.Info("Connected to database")

	produtoRepo := postgres.NewProdutoRepository(db)
	estoqueWorker := worker.NewEstoqueWorker(produtoRepo, appLogger)

	consumer, err := events.NewConsumer(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create NATS consumer", err)
	}
	defer consumer.Close()

	if err := consumer.Subscribe(venda.AssuntoVendaCriada, estoqueWorker.HandleEvent); err != nil {
		appLogger.Fatal("Failed to subscribe to venda events", err)
	}

	appLogger.Info("Estoque worker started and listening for events...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down estoque worker...")
}
