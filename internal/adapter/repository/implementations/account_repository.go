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

const selectAccount = `
SELECT id, holder_id, account_number, account_type, status, balance_minor, currency, created_at, updated_at
FROM accounts`

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account, initialDepositMinor int64) (domain.Account, error) {
	logger.Info("account repository create", logger.Fields{
		"holderId":            account.HolderID,
		"accountNumber":       account.AccountNumber,
		"accountType":         account.AccountType,
		"currency":            account.Currency,
		"initialDepositMinor": initialDepositMinor,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("account repository begin tx failed", err, nil)
		return domain.Account{}, fmt.Errorf("begin create account transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	account.ID = uuid.NewString()
	account.Status = domain.AccountStatusActive
	account.BalanceMinor = 0

	const insertAccount = `
INSERT INTO accounts (id, holder_id, account_number, account_type, status, balance_minor, currency)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING created_at, updated_at`

	err = tx.QueryRowContext(
		ctx,
		insertAccount,
		account.ID,
		account.HolderID,
		account.AccountNumber,
		account.AccountType,
		account.Status,
		account.BalanceMinor,
		account.Currency,
	).Scan(&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		logger.Error("account repository insert failed", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return domain.Account{}, fmt.Errorf("insert account: %w", err)
	}

	// The opening deposit goes through the same posting path as any other
	// entry so it lands in the log with a balance_after snapshot.
	if initialDepositMinor > 0 {
		description := "Initial deposit"
		var opening domain.Transaction
		opening, err = postEntry(ctx, tx, account.ID, domain.TransactionTypeDeposit, initialDepositMinor, &description, nil)
		if err != nil {
			return domain.Account{}, err
		}
		account.BalanceMinor = opening.BalanceAfterMinor
	}

	if err = tx.Commit(); err != nil {
		logger.Error("account repository commit failed", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return domain.Account{}, fmt.Errorf("commit create account transaction: %w", err)
	}

	logger.Info("account repository create success", logger.Fields{
		"accountId":     account.ID,
		"accountNumber": account.AccountNumber,
	})

	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (domain.Account, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectAccount+` WHERE id = $1`, id))
}

func (r *AccountRepository) GetOwnedByUser(ctx context.Context, accountID string, userID string) (domain.Account, error) {
	const query = selectAccount + `
WHERE id = $1
  AND holder_id IN (SELECT id FROM account_holders WHERE user_id = $2)`

	return r.scanOne(r.db.QueryRowContext(ctx, query, accountID, userID))
}

func (r *AccountRepository) ListByHolder(ctx context.Context, holderID string) ([]domain.Account, error) {
	return r.list(ctx, selectAccount+` WHERE holder_id = $1 ORDER BY created_at`, holderID)
}

func (r *AccountRepository) ListActive(ctx context.Context) ([]domain.Account, error) {
	return r.list(ctx, selectAccount+` WHERE status = $1 ORDER BY created_at`, domain.AccountStatusActive)
}

func (r *AccountRepository) NumberExists(ctx context.Context, accountNumber string) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM accounts WHERE account_number = $1`, accountNumber).Scan(&count); err != nil {
		return false, fmt.Errorf("check account number: %w", err)
	}
	return count > 0, nil
}

func (r *AccountRepository) UpdateStatus(ctx context.Context, accountID string, status domain.AccountStatus, requireZeroBalance bool) (domain.Account, error) {
	logger.Info("account repository update status", logger.Fields{
		"accountId": accountID,
		"status":    status,
	})

	query := `
UPDATE accounts
SET status = $2, updated_at = NOW()
WHERE id = $1`
	if requireZeroBalance {
		query += ` AND balance_minor = 0`
	}

	result, err := r.db.ExecContext(ctx, query, accountID, status)
	if err != nil {
		logger.Error("account repository update status failed", err, logger.Fields{
			"accountId": accountID,
		})
		return domain.Account{}, fmt.Errorf("update account status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return domain.Account{}, fmt.Errorf("update account status rows affected: %w", err)
	}
	if rows == 0 {
		// Either the account is missing or the zero-balance guard held it back.
		account, getErr := r.GetByID(ctx, accountID)
		if getErr != nil {
			return domain.Account{}, getErr
		}
		if requireZeroBalance && account.BalanceMinor != 0 {
			return domain.Account{}, domain.ErrNonZeroBalance
		}
		return domain.Account{}, fmt.Errorf("update account status: no rows updated")
	}

	return r.GetByID(ctx, accountID)
}

func (r *AccountRepository) scanOne(row *sql.Row) (domain.Account, error) {
	var account domain.Account
	if err := row.Scan(
		&account.ID,
		&account.HolderID,
		&account.AccountNumber,
		&account.AccountType,
		&account.Status,
		&account.BalanceMinor,
		&account.Currency,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrRecordNotFound
		}
		return domain.Account{}, fmt.Errorf("scan account: %w", err)
	}
	return account, nil
}

func (r *AccountRepository) list(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID,
			&account.HolderID,
			&account.AccountNumber,
			&account.AccountType,
			&account.Status,
			&account.BalanceMinor,
			&account.Currency,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}

	return accounts, nil
}
