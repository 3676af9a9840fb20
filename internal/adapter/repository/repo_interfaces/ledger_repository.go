package repo_interfaces

import (
	"context"

	"github.com/api-sage/ledger-service/internal/domain"
)

// LedgerRepository is the mutation surface of the ledger store. Every method
// runs as one database transaction: balance change and log append commit
// together or not at all.
type LedgerRepository interface {
	// Post applies a single deposit or withdrawal entry to one account,
	// locking the account row, checking status and sufficiency, and
	// appending the transaction with its balance_after snapshot.
	Post(ctx context.Context, accountID string, transactionType domain.TransactionType, amountMinor int64, description *string, referenceID *string) (domain.Transaction, error)

	// PostTransfer creates the transfer row and both legs atomically.
	// Account rows are locked in ascending ID order. When the idempotency
	// key already exists the stored transfer is returned unchanged and
	// created is false.
	PostTransfer(ctx context.Context, transfer domain.Transfer) (result domain.Transfer, created bool, err error)
}
