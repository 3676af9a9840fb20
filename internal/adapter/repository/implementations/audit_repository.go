package implementations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/ledger-service/internal/domain"
	"github.com/google/uuid"
)

type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, entry domain.AuditLog) (domain.AuditLog, error) {
	const query = `
INSERT INTO audit_logs (id, user_id, action, resource_type, resource_id, details, ip_address)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING created_at`

	entry.ID = uuid.NewString()
	if err := r.db.QueryRowContext(
		ctx,
		query,
		entry.ID,
		entry.UserID,
		entry.Action,
		entry.ResourceType,
		entry.ResourceID,
		entry.Details,
		entry.IPAddress,
	).Scan(&entry.CreatedAt); err != nil {
		return domain.AuditLog{}, fmt.Errorf("create audit log: %w", err)
	}

	return entry, nil
}
