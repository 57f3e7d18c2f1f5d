package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"stockscan/internal/config"
	"stockscan/internal/database"
	stockHttp "stockscan/internal/http"
	billHandler "stockscan/internal/http/bill"
	itemHandler "stockscan/internal/http/item"
	"stockscan/internal/inventory"
	"stockscan/internal/inventory/store"
	"stockscan/internal/scan"
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

	var (
		inventoryService = inventory.NewService(store.New(db))
		extractor        = scan.NewCommandExtractor(cfg.OCR.Command, cfg.OCR.Lang)
	)

	var (
		itemsH = itemHandler.NewHandler(inventoryService)
		billsH = billHandler.NewHandler(inventoryService, extractor, cfg.Upload.Dir, cfg.Upload.MaxBytes)
	)

	router := stockHttp.New(itemsH, billsH, cfg.CORS.Origin)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
