package repo_interfaces

import (
	"context"
	"time"

	"github.com/api-sage/ledger-service/internal/domain"
)

// TransactionRepository is the read side of the append-only log.
type TransactionRepository interface {
	// LastBalanceBefore returns the balance_after snapshot of the most
	// recent transaction strictly before the given instant. ok is false
	// when the account has no transaction before it.
	LastBalanceBefore(ctx context.Context, accountID string, before time.Time) (balanceMinor int64, ok bool, err error)
	// ListBetween returns transactions with created_at in [start, end],
	// ordered ascending by creation time with insertion order as tie-break.
	ListBetween(ctx context.Context, accountID string, start, end time.Time) ([]domain.Transaction, error)
	// ListByAccount pages through an account's history, newest first,
	// optionally filtered by transaction type.
	ListByAccount(ctx context.Context, accountID string, transactionType *domain.TransactionType, limit, offset int) ([]domain.Transaction, int64, error)
}
