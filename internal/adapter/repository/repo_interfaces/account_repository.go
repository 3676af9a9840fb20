package repo_interfaces

import (
	"context"

	"github.com/api-sage/ledger-service/internal/domain"
)

type AccountRepository interface {
	// Create inserts the account and, when initialDepositMinor is positive,
	// posts the opening deposit inside the same database transaction.
	Create(ctx context.Context, account domain.Account, initialDepositMinor int64) (domain.Account, error)
	GetByID(ctx context.Context, id string) (domain.Account, error)
	// GetOwnedByUser resolves an account only when it belongs to the given
	// user's holder profile, returning ErrRecordNotFound otherwise.
	GetOwnedByUser(ctx context.Context, accountID string, userID string) (domain.Account, error)
	ListByHolder(ctx context.Context, holderID string) ([]domain.Account, error)
	ListActive(ctx context.Context) ([]domain.Account, error)
	NumberExists(ctx context.Context, accountNumber string) (bool, error)
	// UpdateStatus transitions the account. With requireZeroBalance set the
	// update only applies while the balance is zero and reports
	// ErrNonZeroBalance otherwise.
	UpdateStatus(ctx context.Context, accountID string, status domain.AccountStatus, requireZeroBalance bool) (domain.Account, error)
}
