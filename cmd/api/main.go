package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/aapnaincom/internal/account"
	accStore "github.com/MrJamesThe3rd/aapnaincom/internal/account/store"
	"github.com/MrJamesThe3rd/aapnaincom/internal/auth"
	authStore "github.com/MrJamesThe3rd/aapnaincom/internal/auth/store"
	"github.com/MrJamesThe3rd/aapnaincom/internal/categorize"
	catStore "github.com/MrJamesThe3rd/aapnaincom/internal/categorize/store"
	"github.com/MrJamesThe3rd/aapnaincom/internal/config"
	"github.com/MrJamesThe3rd/aapnaincom/internal/database"
	"github.com/MrJamesThe3rd/aapnaincom/internal/datasync"
	apiHttp "github.com/MrJamesThe3rd/aapnaincom/internal/http"
	accountHandler "github.com/MrJamesThe3rd/aapnaincom/internal/http/account"
	authHandler "github.com/MrJamesThe3rd/aapnaincom/internal/http/auth"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/catalog"
	categorizeHandler "github.com/MrJamesThe3rd/aapnaincom/internal/http/categorize"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/dashboard"
	exportHandler "github.com/MrJamesThe3rd/aapnaincom/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/aapnaincom/internal/http/importcsv"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/stream"
	txHandler "github.com/MrJamesThe3rd/aapnaincom/internal/http/transaction"
	ledgerStore "github.com/MrJamesThe3rd/aapnaincom/internal/ledger/store"
	"github.com/MrJamesThe3rd/aapnaincom/internal/statement"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
	txStore "github.com/MrJamesThe3rd/aapnaincom/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	hub := datasync.NewHub()
	go datasync.NewListener(cfg.ConnectionString(), cfg.Sync.Channel, hub).Run(ctx)

	var (
		transactions = txStore.New(db)
		accounts     = accStore.New(db)
		ledgerRepo   = ledgerStore.New(db, cfg.Sync.Channel)
	)

	var (
		transactionService = transaction.NewService(transactions)
		accountService     = account.NewService(accounts)
		categorizeService  = categorize.NewService(catStore.New(db))
		statementService   = statement.NewService(categorizeService)
		authService        = auth.NewService(authStore.New(db), auth.Config{
			JWTSecret:         cfg.Auth.JWTSecret,
			TokenTTL:          cfg.Auth.TokenTTL,
			FederatedSecret:   cfg.Auth.FederatedSecret,
			AuthorizedDomains: cfg.Auth.AuthorizedDomains,
		})
	)

	router := apiHttp.New(
		apiHttp.Options{AllowedOrigins: cfg.Server.AllowedOrigins, Timeout: cfg.Server.Timeout},
		authService,
		apiHttp.Handlers{
			Auth:         authHandler.NewHandler(authService),
			Catalog:      catalog.NewHandler(),
			Dashboard:    dashboard.NewHandler(transactionService, accountService),
			Transactions: txHandler.NewHandler(transactionService, ledgerRepo, categorizeService),
			Accounts:     accountHandler.NewHandler(accountService, ledgerRepo),
			Import:       importHandler.NewHandler(statementService, ledgerRepo),
			Categorize:   categorizeHandler.NewHandler(categorizeService),
			Export:       exportHandler.NewHandler(transactionService),
			Stream:       stream.NewHandler(hub, datasync.Join(transactions, accounts), cfg.Server.AllowedOrigins),
		},
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
