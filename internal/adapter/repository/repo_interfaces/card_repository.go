package repo_interfaces

import (
	"context"

	"github.com/api-sage/ledger-service/internal/domain"
)

type CardRepository interface {
	Create(ctx context.Context, card domain.Card) (domain.Card, error)
	GetForHolder(ctx context.Context, cardID string, holderID string) (domain.Card, error)
	ListByHolder(ctx context.Context, holderID string) ([]domain.Card, error)
	CountActiveByAccount(ctx context.Context, accountID string) (int, error)
	UpdateStatus(ctx context.Context, cardID string, status domain.CardStatus) (domain.Card, error)
	UpdateDailyLimit(ctx context.Context, cardID string, dailyLimitMinor int64) (domain.Card, error)
}
