package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rcoelho/loja-virtual/internal/config"
	httpDelivery "github.com/rcoelho/loja-virtual/internal/delivery/http"
	"github.com/rcoelho/loja-virtual/internal/delivery/http/handler"
	"github.com/rcoelho/loja-virtual/internal/engine/sale"
	"github.com/rcoelho/loja-virtual/internal/engine/store"
	"github.com/rcoelho/loja-virtual/internal/gateway"
	"github.com/rcoelho/loja-virtual/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Env)
	appLogger.Info("Starting back office...")

	client := gateway.NewClient(cfg, appLogger)
	st := store.New(client, appLogger)
	flow := sale.NewFlow(st, appLogger, cfg.Engine.SucessoExibicao)

	// Warm the catalog and ledger; failures show up in the request
	// trackers and are retried via the recarregar command
	ctx := context.Background()
	st.LoadProdutos(ctx)
	st.LoadVendas(ctx)

	painel := handler.NewPainelHandler(st, flow, appLogger)
	router := httpDelivery.NewPainelRouter(painel, appLogger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Infof("Back office listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("HTTP server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down back office...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", err)
	}

	appLogger.Info("Back office stopped gracefully")
}
