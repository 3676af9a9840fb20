package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/api-sage/ledger-service/internal/adapter/http/models"
	"github.com/api-sage/ledger-service/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/ledger-service/internal/commons"
	"github.com/api-sage/ledger-service/internal/config"
	"github.com/api-sage/ledger-service/internal/domain"
	"github.com/api-sage/ledger-service/internal/logger"
)

const accountNumberDigits = 10

type AccountService struct {
	accountRepo repo_interfaces.AccountRepository
	holderRepo  repo_interfaces.HolderRepository
	policy      config.Policy
}

func NewAccountService(
	accountRepo repo_interfaces.AccountRepository,
	holderRepo repo_interfaces.HolderRepository,
	policy config.Policy,
) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		holderRepo:  holderRepo,
		policy:      policy,
	}
}

func (s *AccountService) CreateAccount(ctx context.Context, userID string, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service create account request", logger.Fields{
		"userId":  userID,
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service create account validation failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	holder, err := s.holderRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("Account holder profile not found"), err
		}
		return commons.ErrorResponse[models.AccountResponse]("failed to create account", "Unable to create account right now"), err
	}

	var initialDepositMinor int64
	if req.InitialDeposit != nil && req.InitialDeposit.IsPositive() {
		initialDepositMinor, err = models.ToMinorUnits(*req.InitialDeposit)
		if err != nil {
			return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
		}
	}

	accountNumber, err := s.generateAccountNumber(ctx)
	if err != nil {
		logger.Error("account service account number generation failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("failed to create account", err.Error()), err
	}

	account := domain.Account{
		HolderID:      holder.ID,
		AccountNumber: accountNumber,
		AccountType:   domain.AccountType(strings.ToLower(strings.TrimSpace(req.AccountType))),
		Status:        domain.AccountStatusActive,
		Currency:      strings.ToUpper(strings.TrimSpace(req.Currency)),
	}

	created, err := s.accountRepo.Create(ctx, account, initialDepositMinor)
	if err != nil {
		logger.Error("account service create account failed", err, logger.Fields{
			"holderId": holder.ID,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to create account", "Unable to create account right now"), err
	}

	logger.Info("account service create account success", logger.Fields{
		"accountId": created.ID,
		"holderId":  created.HolderID,
	})

	return commons.SuccessResponse("account created successfully", mapAccountToResponse(created)), nil
}

func (s *AccountService) GetAccount(ctx context.Context, userID string, accountID string) (commons.Response[models.AccountResponse], error) {
	account, err := s.accountRepo.GetOwnedByUser(ctx, strings.TrimSpace(accountID), userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.AccountResponse]("failed to get account", "Unable to fetch account right now"), err
	}

	return commons.SuccessResponse("account fetched successfully", mapAccountToResponse(account)), nil
}

func (s *AccountService) ListAccounts(ctx context.Context, userID string) (commons.Response[[]models.AccountResponse], error) {
	holder, err := s.holderRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[[]models.AccountResponse]("Account holder profile not found"), err
		}
		return commons.ErrorResponse[[]models.AccountResponse]("failed to list accounts", "Unable to fetch accounts right now"), err
	}

	accounts, err := s.accountRepo.ListByHolder(ctx, holder.ID)
	if err != nil {
		return commons.ErrorResponse[[]models.AccountResponse]("failed to list accounts", "Unable to fetch accounts right now"), err
	}

	return commons.SuccessResponse("accounts fetched successfully", mapAccountsToResponse(accounts)), nil
}

func (s *AccountService) ListActiveAccounts(ctx context.Context) (commons.Response[[]models.AccountResponse], error) {
	accounts, err := s.accountRepo.ListActive(ctx)
	if err != nil {
		return commons.ErrorResponse[[]models.AccountResponse]("failed to list accounts", "Unable to fetch accounts right now"), err
	}

	return commons.SuccessResponse("accounts fetched successfully", mapAccountsToResponse(accounts)), nil
}

func (s *AccountService) UpdateStatus(ctx context.Context, userID string, accountID string, req models.UpdateAccountStatusRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service update status request", logger.Fields{
		"userId":    userID,
		"accountId": accountID,
		"payload":   logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	account, err := s.accountRepo.GetOwnedByUser(ctx, strings.TrimSpace(accountID), userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.AccountResponse]("failed to update account", "Unable to update account right now"), err
	}

	target := domain.AccountStatus(strings.ToLower(strings.TrimSpace(req.Status)))

	if account.Status == domain.AccountStatusClosed && !s.policy.AllowReopenClosedAccounts {
		err := domain.ErrStatusTransitionNotAllowed
		return commons.ErrorResponse[models.AccountResponse]("validation failed", "closed accounts cannot change status"), err
	}

	if target == account.Status {
		return commons.SuccessResponse("account status unchanged", mapAccountToResponse(account)), nil
	}

	requireZeroBalance := target == domain.AccountStatusClosed

	updated, err := s.accountRepo.UpdateStatus(ctx, account.ID, target, requireZeroBalance)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNonZeroBalance):
			return commons.ErrorResponse[models.AccountResponse]("Cannot close account with non-zero balance", err.Error()), err
		case errors.Is(err, domain.ErrRecordNotFound):
			return commons.ErrorResponse[models.AccountResponse]("Account not found"), err
		}
		logger.Error("account service update status failed", err, logger.Fields{
			"accountId": account.ID,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to update account", "Unable to update account right now"), err
	}

	logger.Info("account service update status success", logger.Fields{
		"accountId": updated.ID,
		"status":    string(updated.Status),
	})

	return commons.SuccessResponse("account status updated successfully", mapAccountToResponse(updated)), nil
}

// generateAccountNumber draws random 10-digit numbers until one is free,
// giving up after the configured number of attempts.
func (s *AccountService) generateAccountNumber(ctx context.Context) (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(accountNumberDigits), nil)

	attempts := s.policy.AccountNumberAttempts
	if attempts <= 0 {
		attempts = 1
	}

	for i := 0; i < attempts; i++ {
		value, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate account number: %w", err)
		}
		candidate := fmt.Sprintf("%0*d", accountNumberDigits, value)

		exists, err := s.accountRepo.NumberExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}

	return "", domain.ErrNumberGenerationExhausted
}

func mapAccountToResponse(account domain.Account) models.AccountResponse {
	return models.AccountResponse{
		ID:            account.ID,
		HolderID:      account.HolderID,
		AccountNumber: account.AccountNumber,
		AccountType:   string(account.AccountType),
		Status:        string(account.Status),
		Balance:       models.FormatMinorUnits(account.BalanceMinor),
		BalanceMinor:  account.BalanceMinor,
		Currency:      account.Currency,
		CreatedAt:     account.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     account.UpdatedAt.Format(time.RFC3339),
	}
}

func mapAccountsToResponse(accounts []domain.Account) []models.AccountResponse {
	responses := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, mapAccountToResponse(account))
	}
	return responses
}
