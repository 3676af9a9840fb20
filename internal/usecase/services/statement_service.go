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
)

const statementDateLayout = "2006-01-02"

// StatementService reconstructs an account's history over a date range from
// the transaction log alone. It never reads the live balance column, so a
// statement is reproducible for any past range.
type StatementService struct {
	accountRepo     repo_interfaces.AccountRepository
	transactionRepo repo_interfaces.TransactionRepository
}

func NewStatementService(
	accountRepo repo_interfaces.AccountRepository,
	transactionRepo repo_interfaces.TransactionRepository,
) *StatementService {
	return &StatementService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

func (s *StatementService) BuildStatement(ctx context.Context, userID string, accountID string, startDate string, endDate string) (commons.Response[models.StatementResponse], error) {
	accountID = strings.TrimSpace(accountID)
	startDate = strings.TrimSpace(startDate)
	endDate = strings.TrimSpace(endDate)

	var errs []string
	if accountID == "" {
		errs = append(errs, "accountId is required")
	}
	start, err := time.ParseInLocation(statementDateLayout, startDate, time.UTC)
	if err != nil {
		errs = append(errs, "startDate must be a valid date in YYYY-MM-DD format")
	}
	end, err := time.ParseInLocation(statementDateLayout, endDate, time.UTC)
	if err != nil {
		errs = append(errs, "endDate must be a valid date in YYYY-MM-DD format")
	}
	if len(errs) > 0 {
		err := errors.New(strings.Join(errs, "; "))
		return commons.ErrorResponse[models.StatementResponse]("validation failed", err.Error()), err
	}
	if start.After(end) {
		err := domain.ErrInvalidRange
		return commons.ErrorResponse[models.StatementResponse]("validation failed", err.Error()), err
	}

	account, err := s.accountRepo.GetOwnedByUser(ctx, accountID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.StatementResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.StatementResponse]("failed to build statement", "Unable to build statement right now"), err
	}

	// The range covers whole days: start at midnight, end just before the
	// following midnight.
	rangeStart := start
	rangeEnd := end.Add(24*time.Hour - time.Nanosecond)

	opening, ok, err := s.transactionRepo.LastBalanceBefore(ctx, account.ID, rangeStart)
	if err != nil {
		return commons.ErrorResponse[models.StatementResponse]("failed to build statement", "Unable to build statement right now"), err
	}
	if !ok {
		opening = 0
	}

	entries, err := s.transactionRepo.ListBetween(ctx, account.ID, rangeStart, rangeEnd)
	if err != nil {
		return commons.ErrorResponse[models.StatementResponse]("failed to build statement", "Unable to build statement right now"), err
	}

	statement := domain.Statement{
		AccountID:           account.ID,
		OpeningBalanceMinor: opening,
		ClosingBalanceMinor: opening,
		TransactionCount:    len(entries),
		Transactions:        entries,
	}
	for _, entry := range entries {
		if entry.TransactionType.IsCredit() {
			statement.TotalDepositsMinor += entry.AmountMinor
		} else {
			statement.TotalWithdrawalsMinor += entry.AmountMinor
		}
	}
	// Closing balance is the last entry's snapshot, not a recomputation, so
	// it stays honest against the aggregates.
	if len(entries) > 0 {
		statement.ClosingBalanceMinor = entries[len(entries)-1].BalanceAfterMinor
	}

	logger.Info("statement service build statement success", logger.Fields{
		"accountId":        account.ID,
		"startDate":        startDate,
		"endDate":          endDate,
		"transactionCount": statement.TransactionCount,
	})

	return commons.SuccessResponse("statement built successfully", mapStatementToResponse(statement, startDate, endDate)), nil
}

func mapStatementToResponse(statement domain.Statement, startDate, endDate string) models.StatementResponse {
	transactions := make([]models.TransactionResponse, 0, len(statement.Transactions))
	for _, entry := range statement.Transactions {
		transactions = append(transactions, mapTransactionToResponse(entry))
	}

	return models.StatementResponse{
		AccountID:             statement.AccountID,
		StartDate:             startDate,
		EndDate:               endDate,
		OpeningBalance:        models.FormatMinorUnits(statement.OpeningBalanceMinor),
		OpeningBalanceMinor:   statement.OpeningBalanceMinor,
		ClosingBalance:        models.FormatMinorUnits(statement.ClosingBalanceMinor),
		ClosingBalanceMinor:   statement.ClosingBalanceMinor,
		TotalDeposits:         models.FormatMinorUnits(statement.TotalDepositsMinor),
		TotalDepositsMinor:    statement.TotalDepositsMinor,
		TotalWithdrawals:      models.FormatMinorUnits(statement.TotalWithdrawalsMinor),
		TotalWithdrawalsMinor: statement.TotalWithdrawalsMinor,
		TransactionCount:      statement.TransactionCount,
		Transactions:          transactions,
	}
}
