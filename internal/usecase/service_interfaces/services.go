package service_interfaces

import (
	"context"

	"github.com/api-sage/ledger-service/internal/adapter/http/models"
	"github.com/api-sage/ledger-service/internal/commons"
)

type AuthService interface {
	Signup(ctx context.Context, req models.SignupRequest) (commons.Response[models.TokenResponse], error)
	Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.TokenResponse], error)
	Refresh(ctx context.Context, req models.RefreshRequest) (commons.Response[models.TokenResponse], error)
	Me(ctx context.Context, userID string) (commons.Response[models.MeResponse], error)
	// VerifyAccessToken validates a bearer token and returns the user ID it
	// was issued for. Consumed by the HTTP middleware.
	VerifyAccessToken(ctx context.Context, token string) (string, error)
}

type HolderService interface {
	CreateHolder(ctx context.Context, userID string, req models.CreateHolderRequest) (commons.Response[models.HolderResponse], error)
	GetHolder(ctx context.Context, userID string) (commons.Response[models.HolderResponse], error)
	UpdateHolder(ctx context.Context, userID string, req models.UpdateHolderRequest) (commons.Response[models.HolderResponse], error)
}

type AccountService interface {
	CreateAccount(ctx context.Context, userID string, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error)
	GetAccount(ctx context.Context, userID string, accountID string) (commons.Response[models.AccountResponse], error)
	ListAccounts(ctx context.Context, userID string) (commons.Response[[]models.AccountResponse], error)
	ListActiveAccounts(ctx context.Context) (commons.Response[[]models.AccountResponse], error)
	UpdateStatus(ctx context.Context, userID string, accountID string, req models.UpdateAccountStatusRequest) (commons.Response[models.AccountResponse], error)
}

type TransactionService interface {
	Deposit(ctx context.Context, userID string, accountID string, req models.DepositRequest) (commons.Response[models.TransactionResponse], error)
	Withdraw(ctx context.Context, userID string, accountID string, req models.WithdrawRequest) (commons.Response[models.TransactionResponse], error)
	ListTransactions(ctx context.Context, userID string, accountID string, query models.ListTransactionsQuery) (commons.Response[models.TransactionListResponse], error)
}

type TransferService interface {
	CreateTransfer(ctx context.Context, userID string, req models.CreateTransferRequest) (commons.Response[models.TransferResponse], error)
	GetTransfer(ctx context.Context, userID string, transferID string) (commons.Response[models.TransferResponse], error)
}

type StatementService interface {
	BuildStatement(ctx context.Context, userID string, accountID string, startDate string, endDate string) (commons.Response[models.StatementResponse], error)
}

type CardService interface {
	CreateCard(ctx context.Context, userID string, req models.CreateCardRequest) (commons.Response[models.CardResponse], error)
	ListCards(ctx context.Context, userID string) (commons.Response[[]models.CardResponse], error)
	GetCard(ctx context.Context, userID string, cardID string) (commons.Response[models.CardResponse], error)
	UpdateCardStatus(ctx context.Context, userID string, cardID string, req models.UpdateCardStatusRequest) (commons.Response[models.CardResponse], error)
	UpdateCardLimit(ctx context.Context, userID string, cardID string, req models.UpdateCardLimitRequest) (commons.Response[models.CardResponse], error)
}

// AuditService records actions after the fact. Failures are swallowed and
// logged; callers never block on it.
type AuditService interface {
	Record(ctx context.Context, userID string, action string, resourceType string, resourceID string, details string, ipAddress string)
}
