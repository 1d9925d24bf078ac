package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/daniel1743/claculadorafuxion-sub001/internal/config"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/cycle"
	cycleStore "github.com/daniel1743/claculadorafuxion-sub001/internal/cycle/store"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/database"
	ledgerHttp "github.com/daniel1743/claculadorafuxion-sub001/internal/http"
	cycleHandler "github.com/daniel1743/claculadorafuxion-sub001/internal/http/cycle"
	importHandler "github.com/daniel1743/claculadorafuxion-sub001/internal/http/importcsv"
	txHandler "github.com/daniel1743/claculadorafuxion-sub001/internal/http/ledger"
	loanHandler "github.com/daniel1743/claculadorafuxion-sub001/internal/http/loan"
	productHandler "github.com/daniel1743/claculadorafuxion-sub001/internal/http/product"
	reportHandler "github.com/daniel1743/claculadorafuxion-sub001/internal/http/report"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/importer"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/importer/legacy"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/ledger"
	ledgerStore "github.com/daniel1743/claculadorafuxion-sub001/internal/ledger/store"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/loan"
	loanStore "github.com/daniel1743/claculadorafuxion-sub001/internal/loan/store"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/product"
	productStore "github.com/daniel1743/claculadorafuxion-sub001/internal/product/store"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/report"
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
		productService = product.NewService(productStore.New(db))
		ledgerService  = ledger.NewService(ledgerStore.New(db))
		loanService    = loan.NewService(loanStore.New(db))
		cycleService   = cycle.NewService(cycleStore.New(db), ledgerService, productService, loanService)
		reportService  = report.NewService(ledgerService, productService, cycleService)
		importService  = importer.NewService(legacy.New(), ledgerService, productService)
	)

	var (
		productH = productHandler.NewHandler(productService)
		ledgerH  = txHandler.NewHandler(ledgerService)
		loanH    = loanHandler.NewHandler(loanService)
		reportH  = reportHandler.NewHandler(reportService)
		cycleH   = cycleHandler.NewHandler(cycleService)
		importH  = importHandler.NewHandler(importService)
	)

	router := ledgerHttp.New(productH, ledgerH, loanH, reportH, cycleH, importH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
