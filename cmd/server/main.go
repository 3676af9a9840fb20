package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"github.com/api-sage/ledger-service/internal/adapter/http/controller"
	"github.com/api-sage/ledger-service/internal/adapter/http/middleware"
	"github.com/api-sage/ledger-service/internal/adapter/http/router"
	"github.com/api-sage/ledger-service/internal/adapter/repository/implementations"
	"github.com/api-sage/ledger-service/internal/config"
	"github.com/api-sage/ledger-service/internal/usecase/services"
)

func main() {
	// .env is optional; environment variables win when both are set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := implementations.RunMigrations(ctx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	db, err := implementations.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ledgerRepo := implementations.NewLedgerRepository(db)
	accountRepo := implementations.NewAccountRepository(db)
	transactionRepo := implementations.NewTransactionRepository(db)
	transferRepo := implementations.NewTransferRepository(db)
	userRepo := implementations.NewUserRepository(db)
	holderRepo := implementations.NewHolderRepository(db)
	cardRepo := implementations.NewCardRepository(db)
	auditRepo := implementations.NewAuditRepository(db)

	authService := services.NewAuthService(userRepo, holderRepo, cfg)
	holderService := services.NewHolderService(holderRepo)
	accountService := services.NewAccountService(accountRepo, holderRepo, cfg.Policy)
	transactionService := services.NewTransactionService(accountRepo, transactionRepo, ledgerRepo)
	transferService := services.NewTransferService(transferRepo, accountRepo, ledgerRepo)
	statementService := services.NewStatementService(accountRepo, transactionRepo)
	cardService := services.NewCardService(cardRepo, accountRepo, holderRepo, cfg.Policy)
	auditService := services.NewAuditService(auditRepo)

	authMiddleware := middleware.BearerAuth(authService)

	mux := router.New(
		controller.NewAuthController(authService),
		controller.NewHolderController(holderService, auditService),
		controller.NewAccountController(accountService, transactionService, auditService),
		controller.NewTransferController(transferService, auditService),
		controller.NewStatementController(statementService),
		controller.NewCardController(cardService, auditService),
		authMiddleware,
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("ledger service listening on %s", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("http server: %v", err)
	}
}
