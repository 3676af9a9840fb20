package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/ledger-service/internal/domain"
)

const selectTransaction = `
SELECT id, account_id, transaction_type, amount_minor, balance_after_minor, description, reference_id, status, created_at
FROM transactions`

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) LastBalanceBefore(ctx context.Context, accountID string, before time.Time) (int64, bool, error) {
	const query = `
SELECT balance_after_minor
FROM transactions
WHERE account_id = $1 AND created_at < $2
ORDER BY created_at DESC, position DESC
LIMIT 1`

	var balanceMinor int64
	if err := r.db.QueryRowContext(ctx, query, accountID, before).Scan(&balanceMinor); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("last balance before: %w", err)
	}

	return balanceMinor, true, nil
}

func (r *TransactionRepository) ListBetween(ctx context.Context, accountID string, start, end time.Time) ([]domain.Transaction, error) {
	const query = selectTransaction + `
WHERE account_id = $1 AND created_at >= $2 AND created_at <= $3
ORDER BY created_at, position`

	rows, err := r.db.QueryContext(ctx, query, accountID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list transactions between: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, transactionType *domain.TransactionType, limit, offset int) ([]domain.Transaction, int64, error) {
	countQuery := `SELECT COUNT(1) FROM transactions WHERE account_id = $1`
	listQuery := selectTransaction + ` WHERE account_id = $1`
	args := []any{accountID}

	if transactionType != nil {
		countQuery += ` AND transaction_type = $2`
		listQuery += ` AND transaction_type = $2`
		args = append(args, *transactionType)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	listQuery += fmt.Sprintf(` ORDER BY created_at DESC, position DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	transactions, err := scanTransactions(rows)
	if err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

func scanTransactions(rows *sql.Rows) ([]domain.Transaction, error) {
	transactions := make([]domain.Transaction, 0)
	for rows.Next() {
		var entry domain.Transaction
		var description sql.NullString
		var referenceID sql.NullString
		if err := rows.Scan(
			&entry.ID,
			&entry.AccountID,
			&entry.TransactionType,
			&entry.AmountMinor,
			&entry.BalanceAfterMinor,
			&description,
			&referenceID,
			&entry.Status,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if description.Valid {
			value := description.String
			entry.Description = &value
		}
		if referenceID.Valid {
			value := referenceID.String
			entry.ReferenceID = &value
		}
		transactions = append(transactions, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return transactions, nil
}
