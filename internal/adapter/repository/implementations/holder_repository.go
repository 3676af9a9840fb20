package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/ledger-service/internal/domain"
	"github.com/api-sage/ledger-service/internal/logger"
	"github.com/google/uuid"
)

const selectHolder = `
SELECT id, user_id, first_name, last_name, date_of_birth, phone, address, ssn_last_four, created_at, updated_at
FROM account_holders`

type HolderRepository struct {
	db *sql.DB
}

func NewHolderRepository(db *sql.DB) *HolderRepository {
	return &HolderRepository{db: db}
}

func (r *HolderRepository) Create(ctx context.Context, holder domain.AccountHolder) (domain.AccountHolder, error) {
	logger.Info("holder repository create", logger.Fields{
		"userId": holder.UserID,
	})

	const query = `
INSERT INTO account_holders (id, user_id, first_name, last_name, date_of_birth, phone, address, ssn_last_four)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING created_at, updated_at`

	holder.ID = uuid.NewString()
	if err := r.db.QueryRowContext(
		ctx,
		query,
		holder.ID,
		holder.UserID,
		holder.FirstName,
		holder.LastName,
		holder.DateOfBirth,
		holder.Phone,
		holder.Address,
		holder.SSNLastFour,
	).Scan(&holder.CreatedAt, &holder.UpdatedAt); err != nil {
		logger.Error("holder repository create failed", err, logger.Fields{
			"userId": holder.UserID,
		})
		return domain.AccountHolder{}, fmt.Errorf("create account holder: %w", err)
	}

	return holder, nil
}

func (r *HolderRepository) GetByUserID(ctx context.Context, userID string) (domain.AccountHolder, error) {
	return scanHolder(r.db.QueryRowContext(ctx, selectHolder+` WHERE user_id = $1`, userID))
}

func (r *HolderRepository) Update(ctx context.Context, holder domain.AccountHolder) (domain.AccountHolder, error) {
	const query = `
UPDATE account_holders
SET first_name = $2, last_name = $3, phone = $4, address = $5, updated_at = NOW()
WHERE id = $1
RETURNING updated_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		holder.ID,
		holder.FirstName,
		holder.LastName,
		holder.Phone,
		holder.Address,
	).Scan(&holder.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.AccountHolder{}, domain.ErrRecordNotFound
		}
		logger.Error("holder repository update failed", err, logger.Fields{
			"holderId": holder.ID,
		})
		return domain.AccountHolder{}, fmt.Errorf("update account holder: %w", err)
	}

	return holder, nil
}

func scanHolder(row *sql.Row) (domain.AccountHolder, error) {
	var holder domain.AccountHolder
	if err := row.Scan(
		&holder.ID,
		&holder.UserID,
		&holder.FirstName,
		&holder.LastName,
		&holder.DateOfBirth,
		&holder.Phone,
		&holder.Address,
		&holder.SSNLastFour,
		&holder.CreatedAt,
		&holder.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.AccountHolder{}, domain.ErrRecordNotFound
		}
		return domain.AccountHolder{}, fmt.Errorf("scan account holder: %w", err)
	}
	return holder, nil
}
