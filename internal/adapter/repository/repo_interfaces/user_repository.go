package repo_interfaces

import (
	"context"

	"github.com/api-sage/ledger-service/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}

type HolderRepository interface {
	Create(ctx context.Context, holder domain.AccountHolder) (domain.AccountHolder, error)
	GetByUserID(ctx context.Context, userID string) (domain.AccountHolder, error)
	Update(ctx context.Context, holder domain.AccountHolder) (domain.AccountHolder, error)
}
