package repo_interfaces

import (
	"context"

	"github.com/api-sage/ledger-service/internal/domain"
)

type AuditRepository interface {
	Create(ctx context.Context, entry domain.AuditLog) (domain.AuditLog, error)
}
