package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/api-sage/ledger-service/internal/adapter/http/models"
	"github.com/api-sage/ledger-service/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/ledger-service/internal/commons"
	"github.com/api-sage/ledger-service/internal/domain"
	"github.com/api-sage/ledger-service/internal/logger"
	"github.com/shopspring/decimal"
)

const defaultPageSize = 20
const maxPageSize = 100

type TransactionService struct {
	accountRepo     repo_interfaces.AccountRepository
	transactionRepo repo_interfaces.TransactionRepository
	ledgerRepo      repo_interfaces.LedgerRepository
}

func NewTransactionService(
	accountRepo repo_interfaces.AccountRepository,
	transactionRepo repo_interfaces.TransactionRepository,
	ledgerRepo repo_interfaces.LedgerRepository,
) *TransactionService {
	return &TransactionService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		ledgerRepo:      ledgerRepo,
	}
}

func (s *TransactionService) Deposit(ctx context.Context, userID string, accountID string, req models.DepositRequest) (commons.Response[models.TransactionResponse], error) {
	return s.post(ctx, userID, accountID, domain.TransactionTypeDeposit, req.Amount, req.Description, req.Validate)
}

func (s *TransactionService) Withdraw(ctx context.Context, userID string, accountID string, req models.WithdrawRequest) (commons.Response[models.TransactionResponse], error) {
	return s.post(ctx, userID, accountID, domain.TransactionTypeWithdrawal, req.Amount, req.Description, req.Validate)
}

func (s *TransactionService) post(ctx context.Context, userID string, accountID string, transactionType domain.TransactionType, amount decimal.Decimal, description string, validate func() error) (commons.Response[models.TransactionResponse], error) {
	logger.Info("transaction service post request", logger.Fields{
		"userId":          userID,
		"accountId":       accountID,
		"transactionType": transactionType,
		"amount":          amount,
	})

	if err := validate(); err != nil {
		logger.Error("transaction service post validation failed", err, nil)
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	amountMinor, err := models.ToMinorUnits(amount)
	if err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	account, err := s.accountRepo.GetOwnedByUser(ctx, accountID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransactionResponse]("Account not found"), err
		}
		logger.Error("transaction service resolve account failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.ErrorResponse[models.TransactionResponse]("failed to post transaction", "Unable to post transaction right now"), err
	}

	var descriptionPtr *string
	if trimmed := strings.TrimSpace(description); trimmed != "" {
		descriptionPtr = &trimmed
	}

	posted, err := s.ledgerRepo.Post(ctx, account.ID, transactionType, amountMinor, descriptionPtr, nil)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountNotActive):
			return commons.ErrorResponse[models.TransactionResponse]("Account is not active", err.Error()), err
		case errors.Is(err, domain.ErrInvalidAmount):
			return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
		case errors.Is(err, domain.ErrInsufficientBalance):
			return commons.ErrorResponse[models.TransactionResponse]("Insufficient balance", err.Error()), err
		case errors.Is(err, domain.ErrRecordNotFound):
			return commons.ErrorResponse[models.TransactionResponse]("Account not found"), err
		}
		logger.Error("transaction service post failed", err, logger.Fields{
			"accountId":       account.ID,
			"transactionType": transactionType,
		})
		return commons.ErrorResponse[models.TransactionResponse]("failed to post transaction", "Unable to post transaction right now"), err
	}

	logger.Info("transaction service post success", logger.Fields{
		"transactionId":     posted.ID,
		"accountId":         account.ID,
		"balanceAfterMinor": posted.BalanceAfterMinor,
	})

	return commons.SuccessResponse("transaction posted successfully", mapTransactionToResponse(posted)), nil
}

func (s *TransactionService) ListTransactions(ctx context.Context, userID string, accountID string, query models.ListTransactionsQuery) (commons.Response[models.TransactionListResponse], error) {
	account, err := s.accountRepo.GetOwnedByUser(ctx, accountID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransactionListResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.TransactionListResponse]("failed to list transactions", "Unable to list transactions right now"), err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	transactions, total, err := s.transactionRepo.ListByAccount(ctx, account.ID, query.TransactionType, pageSize, (page-1)*pageSize)
	if err != nil {
		logger.Error("transaction service list failed", err, logger.Fields{
			"accountId": account.ID,
		})
		return commons.ErrorResponse[models.TransactionListResponse]("failed to list transactions", "Unable to list transactions right now"), err
	}

	items := make([]models.TransactionResponse, 0, len(transactions))
	for _, entry := range transactions {
		items = append(items, mapTransactionToResponse(entry))
	}

	response := models.TransactionListResponse{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}

	return commons.SuccessResponse("transactions fetched successfully", response), nil
}

func mapTransactionToResponse(entry domain.Transaction) models.TransactionResponse {
	return models.TransactionResponse{
		ID:                entry.ID,
		AccountID:         entry.AccountID,
		TransactionType:   string(entry.TransactionType),
		Amount:            models.FormatMinorUnits(entry.AmountMinor),
		AmountMinor:       entry.AmountMinor,
		BalanceAfter:      models.FormatMinorUnits(entry.BalanceAfterMinor),
		BalanceAfterMinor: entry.BalanceAfterMinor,
		Description:       entry.Description,
		ReferenceID:       entry.ReferenceID,
		Status:            string(entry.Status),
		CreatedAt:         entry.CreatedAt.Format(time.RFC3339),
	}
}
