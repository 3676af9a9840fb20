package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/ledger-service/internal/domain"
	"github.com/api-sage/ledger-service/internal/logger"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// LedgerRepository owns the posting path: every balance mutation and every
// transaction append happens here, inside one database transaction per call.
type LedgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) Post(ctx context.Context, accountID string, transactionType domain.TransactionType, amountMinor int64, description *string, referenceID *string) (domain.Transaction, error) {
	logger.Info("ledger repository post", logger.Fields{
		"accountId":       accountID,
		"transactionType": transactionType,
		"amountMinor":     amountMinor,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("ledger repository begin tx failed", err, nil)
		return domain.Transaction{}, fmt.Errorf("begin posting transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var posted domain.Transaction
	posted, err = postEntry(ctx, tx, accountID, transactionType, amountMinor, description, referenceID)
	if err != nil {
		return domain.Transaction{}, err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("ledger repository commit failed", err, logger.Fields{
			"accountId": accountID,
		})
		return domain.Transaction{}, fmt.Errorf("commit posting transaction: %w", err)
	}

	logger.Info("ledger repository post success", logger.Fields{
		"transactionId":     posted.ID,
		"accountId":         accountID,
		"balanceAfterMinor": posted.BalanceAfterMinor,
	})

	return posted, nil
}

func (r *LedgerRepository) PostTransfer(ctx context.Context, transfer domain.Transfer) (domain.Transfer, bool, error) {
	logger.Info("ledger repository post transfer", logger.Fields{
		"idempotencyKey": transfer.IdempotencyKey,
		"fromAccountId":  transfer.FromAccountID,
		"toAccountId":    transfer.ToAccountID,
		"amountMinor":    transfer.AmountMinor,
	})

	if transfer.FromAccountID == transfer.ToAccountID {
		return domain.Transfer{}, false, domain.ErrInvalidTransfer
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("ledger repository begin transfer tx failed", err, nil)
		return domain.Transfer{}, false, fmt.Errorf("begin transfer transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	transfer.ID = uuid.NewString()
	transfer.Status = domain.TransferStatusPending

	const insertTransfer = `
INSERT INTO transfers (id, idempotency_key, from_account_id, to_account_id, amount_minor, description, status)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING created_at, updated_at`

	err = tx.QueryRowContext(
		ctx,
		insertTransfer,
		transfer.ID,
		transfer.IdempotencyKey,
		transfer.FromAccountID,
		transfer.ToAccountID,
		transfer.AmountMinor,
		transfer.Description,
		transfer.Status,
	).Scan(&transfer.CreatedAt, &transfer.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			// Lost the race against a concurrent submission of the same key.
			_ = tx.Rollback()
			err = nil
			existing, getErr := r.getByIdempotencyKey(ctx, transfer.IdempotencyKey)
			if getErr != nil {
				return domain.Transfer{}, false, getErr
			}
			logger.Info("ledger repository transfer idempotency replay", logger.Fields{
				"transferId":     existing.ID,
				"idempotencyKey": existing.IdempotencyKey,
			})
			return existing, false, nil
		}
		logger.Error("ledger repository insert transfer failed", err, logger.Fields{
			"idempotencyKey": transfer.IdempotencyKey,
		})
		return domain.Transfer{}, false, fmt.Errorf("insert transfer: %w", err)
	}

	accounts, err := lockAccounts(ctx, tx, transfer.FromAccountID, transfer.ToAccountID)
	if err != nil {
		return domain.Transfer{}, false, err
	}

	source := accounts[transfer.FromAccountID]
	destination := accounts[transfer.ToAccountID]

	if source.status != domain.AccountStatusActive {
		err = fmt.Errorf("source account: %w", domain.ErrAccountNotActive)
		return domain.Transfer{}, false, err
	}
	if destination.status != domain.AccountStatusActive {
		err = fmt.Errorf("destination account: %w", domain.ErrAccountNotActive)
		return domain.Transfer{}, false, err
	}
	if transfer.AmountMinor <= 0 {
		err = domain.ErrInvalidAmount
		return domain.Transfer{}, false, err
	}
	if source.balanceMinor < transfer.AmountMinor {
		err = domain.ErrInsufficientBalance
		return domain.Transfer{}, false, err
	}

	reference := transfer.ID
	if _, err = writeEntry(ctx, tx, transfer.FromAccountID, domain.TransactionTypeTransferOut, transfer.AmountMinor, source.balanceMinor-transfer.AmountMinor, legDescription(transfer.Description, "Transfer out"), &reference); err != nil {
		return domain.Transfer{}, false, err
	}
	if _, err = writeEntry(ctx, tx, transfer.ToAccountID, domain.TransactionTypeTransferIn, transfer.AmountMinor, destination.balanceMinor+transfer.AmountMinor, legDescription(transfer.Description, "Transfer in"), &reference); err != nil {
		return domain.Transfer{}, false, err
	}

	const completeTransfer = `
UPDATE transfers
SET status = $2, completed_at = NOW(), updated_at = NOW()
WHERE id = $1
RETURNING completed_at, updated_at`

	var completedAt time.Time
	if err = tx.QueryRowContext(ctx, completeTransfer, transfer.ID, domain.TransferStatusCompleted).Scan(&completedAt, &transfer.UpdatedAt); err != nil {
		logger.Error("ledger repository complete transfer failed", err, logger.Fields{
			"transferId": transfer.ID,
		})
		return domain.Transfer{}, false, fmt.Errorf("complete transfer: %w", err)
	}
	transfer.Status = domain.TransferStatusCompleted
	transfer.CompletedAt = &completedAt

	if err = tx.Commit(); err != nil {
		logger.Error("ledger repository commit transfer failed", err, logger.Fields{
			"transferId": transfer.ID,
		})
		return domain.Transfer{}, false, fmt.Errorf("commit transfer transaction: %w", err)
	}

	logger.Info("ledger repository post transfer success", logger.Fields{
		"transferId":    transfer.ID,
		"fromAccountId": transfer.FromAccountID,
		"toAccountId":   transfer.ToAccountID,
	})

	return transfer, true, nil
}

func (r *LedgerRepository) getByIdempotencyKey(ctx context.Context, key string) (domain.Transfer, error) {
	return scanTransferRow(r.db.QueryRowContext(ctx, selectTransfer+` WHERE idempotency_key = $1`, key))
}

type lockedAccount struct {
	status       domain.AccountStatus
	balanceMinor int64
}

// lockAccounts acquires FOR UPDATE row locks on both accounts in ascending
// ID order so concurrent reverse transfers cannot deadlock.
func lockAccounts(ctx context.Context, tx *sql.Tx, accountIDs ...string) (map[string]lockedAccount, error) {
	const query = `
SELECT id, status, balance_minor
FROM accounts
WHERE id = ANY($1)
ORDER BY id
FOR UPDATE`

	rows, err := tx.QueryContext(ctx, query, pq.Array(accountIDs))
	if err != nil {
		return nil, fmt.Errorf("lock account rows: %w", err)
	}
	defer rows.Close()

	locked := make(map[string]lockedAccount, len(accountIDs))
	for rows.Next() {
		var id string
		var account lockedAccount
		if err := rows.Scan(&id, &account.status, &account.balanceMinor); err != nil {
			return nil, fmt.Errorf("scan locked account: %w", err)
		}
		locked[id] = account
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locked accounts: %w", err)
	}

	for _, id := range accountIDs {
		if _, ok := locked[id]; !ok {
			return nil, domain.ErrRecordNotFound
		}
	}

	return locked, nil
}

// postEntry locks one account row, validates the mutation and writes the
// balance change together with its log row. Callers own the transaction.
func postEntry(ctx context.Context, tx *sql.Tx, accountID string, transactionType domain.TransactionType, amountMinor int64, description *string, referenceID *string) (domain.Transaction, error) {
	const lockQuery = `
SELECT status, balance_minor
FROM accounts
WHERE id = $1
FOR UPDATE`

	var status domain.AccountStatus
	var balanceMinor int64
	if err := tx.QueryRowContext(ctx, lockQuery, accountID).Scan(&status, &balanceMinor); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Transaction{}, domain.ErrRecordNotFound
		}
		return domain.Transaction{}, fmt.Errorf("lock account row: %w", err)
	}

	if status != domain.AccountStatusActive {
		return domain.Transaction{}, domain.ErrAccountNotActive
	}
	if amountMinor <= 0 {
		return domain.Transaction{}, domain.ErrInvalidAmount
	}

	newBalance := balanceMinor + amountMinor
	if !transactionType.IsCredit() {
		if balanceMinor < amountMinor {
			return domain.Transaction{}, domain.ErrInsufficientBalance
		}
		newBalance = balanceMinor - amountMinor
	}

	return writeEntry(ctx, tx, accountID, transactionType, amountMinor, newBalance, description, referenceID)
}

// writeEntry applies an already-validated balance change and appends the
// matching transaction row. The caller must hold the account row lock.
func writeEntry(ctx context.Context, tx *sql.Tx, accountID string, transactionType domain.TransactionType, amountMinor int64, newBalanceMinor int64, description *string, referenceID *string) (domain.Transaction, error) {
	const updateBalance = `
UPDATE accounts
SET balance_minor = $2, updated_at = NOW()
WHERE id = $1`

	if _, err := tx.ExecContext(ctx, updateBalance, accountID, newBalanceMinor); err != nil {
		return domain.Transaction{}, fmt.Errorf("update account balance: %w", err)
	}

	const insertTransaction = `
INSERT INTO transactions (id, account_id, transaction_type, amount_minor, balance_after_minor, description, reference_id, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING created_at`

	entry := domain.Transaction{
		ID:                uuid.NewString(),
		AccountID:         accountID,
		TransactionType:   transactionType,
		AmountMinor:       amountMinor,
		BalanceAfterMinor: newBalanceMinor,
		Description:       description,
		ReferenceID:       referenceID,
		Status:            domain.TransactionStatusPosted,
	}

	if err := tx.QueryRowContext(
		ctx,
		insertTransaction,
		entry.ID,
		entry.AccountID,
		entry.TransactionType,
		entry.AmountMinor,
		entry.BalanceAfterMinor,
		entry.Description,
		entry.ReferenceID,
		entry.Status,
	).Scan(&entry.CreatedAt); err != nil {
		return domain.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	return entry, nil
}

func legDescription(description *string, fallback string) *string {
	if description != nil && *description != "" {
		return description
	}
	return &fallback
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == "23505"
	}
	return false
}
