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

type TransferService struct {
	transferRepo repo_interfaces.TransferRepository
	accountRepo  repo_interfaces.AccountRepository
	ledgerRepo   repo_interfaces.LedgerRepository
}

func NewTransferService(
	transferRepo repo_interfaces.TransferRepository,
	accountRepo repo_interfaces.AccountRepository,
	ledgerRepo repo_interfaces.LedgerRepository,
) *TransferService {
	return &TransferService{
		transferRepo: transferRepo,
		accountRepo:  accountRepo,
		ledgerRepo:   ledgerRepo,
	}
}

func (s *TransferService) CreateTransfer(ctx context.Context, userID string, req models.CreateTransferRequest) (commons.Response[models.TransferResponse], error) {
	logger.Info("transfer service create transfer request", logger.Fields{
		"userId":  userID,
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("transfer service create transfer validation failed", err, nil)
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), err
	}

	idempotencyKey := strings.TrimSpace(req.IdempotencyKey)
	fromAccountID := strings.TrimSpace(req.FromAccountID)
	toAccountID := strings.TrimSpace(req.ToAccountID)

	if fromAccountID == toAccountID {
		err := domain.ErrInvalidTransfer
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), err
	}

	// Fast path for retried submissions: the stored transfer wins and no
	// balance is touched. The ledger store covers the concurrent race with
	// the idempotency-key unique constraint.
	existing, err := s.transferRepo.GetByIdempotencyKey(ctx, idempotencyKey)
	if err == nil {
		if err := s.requireSourceOwner(ctx, userID, existing); err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return commons.ErrorResponse[models.TransferResponse]("Transfer not found"), err
			}
			return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), err
		}
		logger.Info("transfer service idempotency replay", logger.Fields{
			"transferId":     existing.ID,
			"idempotencyKey": existing.IdempotencyKey,
		})
		return commons.SuccessResponse("transfer already processed", mapTransferToResponse(existing)), nil
	}
	if !errors.Is(err, domain.ErrRecordNotFound) {
		return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}

	amountMinor, err := models.ToMinorUnits(req.Amount)
	if err != nil {
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), err
	}

	source, err := s.accountRepo.GetOwnedByUser(ctx, fromAccountID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransferResponse]("Source account not found"), err
		}
		return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}

	destination, err := s.accountRepo.GetByID(ctx, toAccountID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransferResponse]("Destination account not found"), err
		}
		return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}

	if source.Status != domain.AccountStatusActive {
		err := domain.ErrAccountNotActive
		return commons.ErrorResponse[models.TransferResponse]("validation failed", "source account is not active"), err
	}
	if destination.Status != domain.AccountStatusActive {
		err := domain.ErrAccountNotActive
		return commons.ErrorResponse[models.TransferResponse]("validation failed", "destination account is not active"), err
	}
	if source.BalanceMinor < amountMinor {
		err := domain.ErrInsufficientBalance
		return commons.ErrorResponse[models.TransferResponse]("Insufficient balance", err.Error()), err
	}

	var description *string
	if trimmed := strings.TrimSpace(req.Description); trimmed != "" {
		description = &trimmed
	}

	transfer := domain.Transfer{
		IdempotencyKey: idempotencyKey,
		FromAccountID:  source.ID,
		ToAccountID:    destination.ID,
		AmountMinor:    amountMinor,
		Description:    description,
	}

	// The atomic unit lives in the ledger store: transfer row, both legs
	// and both balance updates commit together or not at all. Status and
	// sufficiency are re-checked there under the row locks.
	result, created, err := s.ledgerRepo.PostTransfer(ctx, transfer)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountNotActive):
			return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), err
		case errors.Is(err, domain.ErrInsufficientBalance):
			return commons.ErrorResponse[models.TransferResponse]("Insufficient balance", err.Error()), err
		case errors.Is(err, domain.ErrInvalidTransfer), errors.Is(err, domain.ErrInvalidAmount):
			return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), err
		case errors.Is(err, domain.ErrRecordNotFound):
			return commons.ErrorResponse[models.TransferResponse]("Account not found"), err
		}
		logger.Error("transfer service post transfer failed", err, logger.Fields{
			"idempotencyKey": idempotencyKey,
		})
		return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}

	message := "transfer completed successfully"
	if !created {
		// The conflicting row may belong to a different user who picked the
		// same key first.
		if err := s.requireSourceOwner(ctx, userID, result); err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return commons.ErrorResponse[models.TransferResponse]("Transfer not found"), err
			}
			return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), err
		}
		message = "transfer already processed"
	}

	logger.Info("transfer service create transfer success", logger.Fields{
		"transferId":    result.ID,
		"fromAccountId": result.FromAccountID,
		"toAccountId":   result.ToAccountID,
		"created":       created,
	})

	return commons.SuccessResponse(message, mapTransferToResponse(result)), nil
}

// requireSourceOwner confirms the caller owns the source account of a
// stored transfer before it is returned on an idempotency replay.
func (s *TransferService) requireSourceOwner(ctx context.Context, userID string, transfer domain.Transfer) error {
	_, err := s.accountRepo.GetOwnedByUser(ctx, transfer.FromAccountID, userID)
	return err
}

func (s *TransferService) GetTransfer(ctx context.Context, userID string, transferID string) (commons.Response[models.TransferResponse], error) {
	transferID = strings.TrimSpace(transferID)
	if transferID == "" {
		err := errors.New("transferId is required")
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), err
	}

	transfer, err := s.transferRepo.GetOwnedByUser(ctx, transferID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransferResponse]("Transfer not found"), err
		}
		return commons.ErrorResponse[models.TransferResponse]("failed to get transfer", "Unable to fetch transfer right now"), err
	}

	return commons.SuccessResponse("transfer fetched successfully", mapTransferToResponse(transfer)), nil
}

func mapTransferToResponse(transfer domain.Transfer) models.TransferResponse {
	var completedAt *string
	if transfer.CompletedAt != nil {
		value := transfer.CompletedAt.Format(time.RFC3339)
		completedAt = &value
	}

	return models.TransferResponse{
		ID:             transfer.ID,
		IdempotencyKey: transfer.IdempotencyKey,
		FromAccountID:  transfer.FromAccountID,
		ToAccountID:    transfer.ToAccountID,
		Amount:         models.FormatMinorUnits(transfer.AmountMinor),
		AmountMinor:    transfer.AmountMinor,
		Description:    transfer.Description,
		Status:         string(transfer.Status),
		CompletedAt:    completedAt,
		CreatedAt:      transfer.CreatedAt.Format(time.RFC3339),
	}
}
