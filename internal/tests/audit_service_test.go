package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/api-sage/ledger-service/internal/domain"
	"github.com/api-sage/ledger-service/internal/usecase/services"
)

func TestAuditServiceRecordStoresEntry(t *testing.T) {
	var recorded domain.AuditLog
	svc := services.NewAuditService(auditRepoStub{
		createFn: func(_ context.Context, entry domain.AuditLog) (domain.AuditLog, error) {
			recorded = entry
			return entry, nil
		},
	})

	svc.Record(context.Background(), "user-1", "account.create", "account", "acc-1", "checking", "203.0.113.7")

	if recorded.Action != "account.create" || recorded.UserID != "user-1" {
		t.Fatalf("unexpected audit entry %+v", recorded)
	}
	if recorded.ResourceID == nil || *recorded.ResourceID != "acc-1" {
		t.Fatalf("expected resource ID acc-1, got %v", recorded.ResourceID)
	}
	if recorded.IPAddress == nil || *recorded.IPAddress != "203.0.113.7" {
		t.Fatalf("expected IP address, got %v", recorded.IPAddress)
	}
}

func TestAuditServiceRecordOmitsBlankOptionals(t *testing.T) {
	var recorded domain.AuditLog
	svc := services.NewAuditService(auditRepoStub{
		createFn: func(_ context.Context, entry domain.AuditLog) (domain.AuditLog, error) {
			recorded = entry
			return entry, nil
		},
	})

	svc.Record(context.Background(), "user-1", "user.signup", "user", "", "", "")

	if recorded.ResourceID != nil || recorded.Details != nil || recorded.IPAddress != nil {
		t.Fatalf("expected nil optionals, got %+v", recorded)
	}
}

func TestAuditServiceRecordSwallowsRepoError(t *testing.T) {
	svc := services.NewAuditService(auditRepoStub{
		createFn: func(context.Context, domain.AuditLog) (domain.AuditLog, error) {
			return domain.AuditLog{}, errors.New("insert failed")
		},
	})

	// Must not panic or surface the failure.
	svc.Record(context.Background(), "user-1", "account.create", "account", "acc-1", "", "")
}
