package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/tmachado/retailops/internal/catalog"
	catalogStore "github.com/tmachado/retailops/internal/catalog/store"
	"github.com/tmachado/retailops/internal/config"
	"github.com/tmachado/retailops/internal/database"
	"github.com/tmachado/retailops/internal/gateway"
	retailHttp "github.com/tmachado/retailops/internal/http"
	inventoryHandler "github.com/tmachado/retailops/internal/http/inventory"
	productHandler "github.com/tmachado/retailops/internal/http/product"
	saleHandler "github.com/tmachado/retailops/internal/http/sale"
	"github.com/tmachado/retailops/internal/inventory"
	inventoryStore "github.com/tmachado/retailops/internal/inventory/store"
	"github.com/tmachado/retailops/internal/migrations"
	"github.com/tmachado/retailops/internal/sale"
	saleStore "github.com/tmachado/retailops/internal/sale/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := migrations.Run(context.Background(), db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	var notifier sale.Notifier = gateway.Log{}

	if len(cfg.Kafka.Brokers) > 0 {
		kafkaGateway := gateway.NewKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaGateway.Close()

		notifier = kafkaGateway
	}

	var (
		catalogService   = catalog.NewService(catalogStore.New(db))
		inventoryService = inventory.NewService(
			inventoryStore.New(db),
			inventory.OversellPolicy(cfg.Inventory.OversellPolicy),
		)
		saleService = sale.NewService(
			saleStore.New(db), catalogService, inventoryService, notifier,
		)
	)

	var (
		salesH     = saleHandler.NewHandler(saleService)
		inventoryH = inventoryHandler.NewHandler(inventoryService)
		productsH  = productHandler.NewHandler(catalogService)
	)

	router := retailHttp.New(salesH, inventoryH, productsH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
