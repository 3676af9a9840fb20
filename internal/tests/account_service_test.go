package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/api-sage/ledger-service/internal/adapter/http/models"
	"github.com/api-sage/ledger-service/internal/config"
	"github.com/api-sage/ledger-service/internal/domain"
	"github.com/api-sage/ledger-service/internal/usecase/services"
)

func testPolicy() config.Policy {
	return config.Policy{
		AllowReopenClosedAccounts: false,
		MaxActiveCards:            3,
		AccountNumberAttempts:     10,
	}
}

func selfHolder() holderRepoStub {
	return holderRepoStub{
		getByUserIDFn: func(_ context.Context, userID string) (domain.AccountHolder, error) {
			return domain.AccountHolder{ID: userID, UserID: userID}, nil
		},
	}
}

func TestAccountServiceCreateAccountValidationError(t *testing.T) {
	svc := services.NewAccountService(accountRepoStub{}, selfHolder(), testPolicy())

	_, err := svc.CreateAccount(context.Background(), "user-1", models.CreateAccountRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty create account request")
	}
}

func TestAccountServiceCreateAccountWithInitialDeposit(t *testing.T) {
	ledger := newFakeLedger()
	svc := services.NewAccountService(ledger, selfHolder(), testPolicy())

	deposit := decimal.NewFromInt(250)
	resp, err := svc.CreateAccount(context.Background(), "user-1", models.CreateAccountRequest{
		AccountType:    "checking",
		Currency:       "usd",
		InitialDeposit: &deposit,
	})
	if err != nil {
		t.Fatalf("create account failed: %v", err)
	}
	account := resp.Data
	if account == nil {
		t.Fatal("expected account data")
	}
	if account.BalanceMinor != 25000 {
		t.Fatalf("expected opening balance 25000, got %d", account.BalanceMinor)
	}
	if account.Currency != "USD" {
		t.Fatalf("expected normalized currency USD, got %s", account.Currency)
	}
	if len(account.AccountNumber) != 10 {
		t.Fatalf("expected 10-digit account number, got %q", account.AccountNumber)
	}
	if got := ledger.transactionCount(account.ID); got != 1 {
		t.Fatalf("expected one opening deposit transaction, got %d", got)
	}
}

func TestAccountServiceCreateAccountMissingHolder(t *testing.T) {
	svc := services.NewAccountService(accountRepoStub{}, holderRepoStub{}, testPolicy())

	_, err := svc.CreateAccount(context.Background(), "user-1", models.CreateAccountRequest{
		AccountType: "savings",
		Currency:    "USD",
	})
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound without holder profile, got %v", err)
	}
}

func TestAccountServiceCreateAccountNumberExhaustion(t *testing.T) {
	repo := accountRepoStub{
		numberExistsFn: func(context.Context, string) (bool, error) {
			return true, nil
		},
	}
	svc := services.NewAccountService(repo, selfHolder(), testPolicy())

	_, err := svc.CreateAccount(context.Background(), "user-1", models.CreateAccountRequest{
		AccountType: "checking",
		Currency:    "USD",
	})
	if !errors.Is(err, domain.ErrNumberGenerationExhausted) {
		t.Fatalf("expected ErrNumberGenerationExhausted, got %v", err)
	}
}

func TestAccountServiceCloseNonZeroBalance(t *testing.T) {
	ledger := newFakeLedger()
	svc := services.NewAccountService(ledger, selfHolder(), testPolicy())
	account := ledger.addAccount("user-1", 500)

	_, err := svc.UpdateStatus(context.Background(), "user-1", account.ID, models.UpdateAccountStatusRequest{
		Status: "closed",
	})
	if !errors.Is(err, domain.ErrNonZeroBalance) {
		t.Fatalf("expected ErrNonZeroBalance, got %v", err)
	}
}

func TestAccountServiceCloseZeroBalance(t *testing.T) {
	ledger := newFakeLedger()
	svc := services.NewAccountService(ledger, selfHolder(), testPolicy())
	account := ledger.addAccount("user-1", 0)

	resp, err := svc.UpdateStatus(context.Background(), "user-1", account.ID, models.UpdateAccountStatusRequest{
		Status: "closed",
	})
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if resp.Data == nil || resp.Data.Status != string(domain.AccountStatusClosed) {
		t.Fatalf("expected closed account, got %+v", resp.Data)
	}
}

func TestAccountServiceReopenClosedAccountDenied(t *testing.T) {
	ledger := newFakeLedger()
	svc := services.NewAccountService(ledger, selfHolder(), testPolicy())
	account := ledger.addAccount("user-1", 0)
	if _, err := ledger.UpdateStatus(context.Background(), account.ID, domain.AccountStatusClosed, false); err != nil {
		t.Fatalf("close account: %v", err)
	}

	_, err := svc.UpdateStatus(context.Background(), "user-1", account.ID, models.UpdateAccountStatusRequest{
		Status: "active",
	})
	if !errors.Is(err, domain.ErrStatusTransitionNotAllowed) {
		t.Fatalf("expected ErrStatusTransitionNotAllowed, got %v", err)
	}
}

func TestAccountServiceReopenClosedAccountAllowedByPolicy(t *testing.T) {
	ledger := newFakeLedger()
	policy := testPolicy()
	policy.AllowReopenClosedAccounts = true
	svc := services.NewAccountService(ledger, selfHolder(), policy)
	account := ledger.addAccount("user-1", 0)
	if _, err := ledger.UpdateStatus(context.Background(), account.ID, domain.AccountStatusClosed, false); err != nil {
		t.Fatalf("close account: %v", err)
	}

	resp, err := svc.UpdateStatus(context.Background(), "user-1", account.ID, models.UpdateAccountStatusRequest{
		Status: "active",
	})
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if resp.Data == nil || resp.Data.Status != string(domain.AccountStatusActive) {
		t.Fatalf("expected reopened account, got %+v", resp.Data)
	}
}

func TestAccountServiceFreezeAndUnfreeze(t *testing.T) {
	ledger := newFakeLedger()
	svc := services.NewAccountService(ledger, selfHolder(), testPolicy())
	account := ledger.addAccount("user-1", 12345)

	resp, err := svc.UpdateStatus(context.Background(), "user-1", account.ID, models.UpdateAccountStatusRequest{
		Status: "frozen",
	})
	if err != nil {
		t.Fatalf("freeze failed: %v", err)
	}
	if resp.Data.Status != string(domain.AccountStatusFrozen) {
		t.Fatalf("expected frozen, got %s", resp.Data.Status)
	}

	resp, err = svc.UpdateStatus(context.Background(), "user-1", account.ID, models.UpdateAccountStatusRequest{
		Status: "active",
	})
	if err != nil {
		t.Fatalf("unfreeze failed: %v", err)
	}
	if resp.Data.Status != string(domain.AccountStatusActive) {
		t.Fatalf("expected active, got %s", resp.Data.Status)
	}
}

func TestAccountServiceGetAccountWrongOwner(t *testing.T) {
	ledger := newFakeLedger()
	svc := services.NewAccountService(ledger, selfHolder(), testPolicy())
	account := ledger.addAccount("user-1", 0)

	_, err := svc.GetAccount(context.Background(), "user-2", account.ID)
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for foreign account, got %v", err)
	}
}
