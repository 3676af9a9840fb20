package repo_interfaces

import (
	"context"

	"github.com/api-sage/ledger-service/internal/domain"
)

type TransferRepository interface {
	GetByIdempotencyKey(ctx context.Context, key string) (domain.Transfer, error)
	// GetOwnedByUser resolves a transfer only when its source account
	// belongs to the given user.
	GetOwnedByUser(ctx context.Context, transferID string, userID string) (domain.Transfer, error)
}
