package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/ledger-service/internal/domain"
	"github.com/api-sage/ledger-service/internal/logger"
)

const selectTransfer = `
SELECT id, idempotency_key, from_account_id, to_account_id, amount_minor, description, status, completed_at, created_at, updated_at
FROM transfers`

type TransferRepository struct {
	db *sql.DB
}

func NewTransferRepository(db *sql.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

func (r *TransferRepository) GetByIdempotencyKey(ctx context.Context, key string) (domain.Transfer, error) {
	transfer, err := scanTransferRow(r.db.QueryRowContext(ctx, selectTransfer+` WHERE idempotency_key = $1`, key))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Transfer{}, err
		}
		logger.Error("transfer repository get by idempotency key failed", err, logger.Fields{
			"idempotencyKey": key,
		})
		return domain.Transfer{}, err
	}
	return transfer, nil
}

func (r *TransferRepository) GetOwnedByUser(ctx context.Context, transferID string, userID string) (domain.Transfer, error) {
	const query = selectTransfer + `
WHERE id = $1
  AND from_account_id IN (
	SELECT a.id
	FROM accounts a
	JOIN account_holders h ON h.id = a.holder_id
	WHERE h.user_id = $2
  )`

	transfer, err := scanTransferRow(r.db.QueryRowContext(ctx, query, transferID, userID))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Transfer{}, err
		}
		logger.Error("transfer repository get owned failed", err, logger.Fields{
			"transferId": transferID,
			"userId":     userID,
		})
		return domain.Transfer{}, err
	}
	return transfer, nil
}

func scanTransferRow(row *sql.Row) (domain.Transfer, error) {
	var transfer domain.Transfer
	var description sql.NullString
	var completedAt sql.NullTime

	if err := row.Scan(
		&transfer.ID,
		&transfer.IdempotencyKey,
		&transfer.FromAccountID,
		&transfer.ToAccountID,
		&transfer.AmountMinor,
		&description,
		&transfer.Status,
		&completedAt,
		&transfer.CreatedAt,
		&transfer.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Transfer{}, domain.ErrRecordNotFound
		}
		return domain.Transfer{}, fmt.Errorf("scan transfer: %w", err)
	}

	if description.Valid {
		value := description.String
		transfer.Description = &value
	}
	if completedAt.Valid {
		value := completedAt.Time
		transfer.CompletedAt = &value
	}

	return transfer, nil
}
