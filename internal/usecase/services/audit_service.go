package services

import (
	"context"
	"strings"

	"github.com/api-sage/ledger-service/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/ledger-service/internal/domain"
	"github.com/api-sage/ledger-service/internal/logger"
)

// AuditService persists audit entries best-effort. A failed write is logged
// and dropped so the operation it describes is never affected.
type AuditService struct {
	auditRepo repo_interfaces.AuditRepository
}

func NewAuditService(auditRepo repo_interfaces.AuditRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

func (s *AuditService) Record(ctx context.Context, userID string, action string, resourceType string, resourceID string, details string, ipAddress string) {
	entry := domain.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   optional(resourceID),
		Details:      optional(details),
		IPAddress:    optional(ipAddress),
	}

	if _, err := s.auditRepo.Create(ctx, entry); err != nil {
		logger.Error("audit service record failed", err, logger.Fields{
			"action":       action,
			"resourceType": resourceType,
		})
	}
}

func optional(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
