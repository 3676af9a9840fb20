package models

import (
	"errors"
	"strings"

	"github.com/api-sage/ledger-service/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateAccountRequest struct {
	AccountType    string           `json:"accountType"`
	Currency       string           `json:"currency"`
	InitialDeposit *decimal.Decimal `json:"initialDeposit,omitempty"`
}

func (r CreateAccountRequest) Validate() error {
	var errs []string

	accountType := domain.AccountType(strings.ToLower(strings.TrimSpace(r.AccountType)))
	if accountType != domain.AccountTypeChecking && accountType != domain.AccountTypeSavings {
		errs = append(errs, "accountType must be checking or savings")
	}

	currency := strings.ToUpper(strings.TrimSpace(r.Currency))
	if len(currency) != 3 {
		errs = append(errs, "currency must be 3 characters")
	}

	if r.InitialDeposit != nil && r.InitialDeposit.IsNegative() {
		errs = append(errs, "initialDeposit cannot be negative")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type UpdateAccountStatusRequest struct {
	Status string `json:"status"`
}

func (r UpdateAccountStatusRequest) Validate() error {
	status := domain.AccountStatus(strings.ToLower(strings.TrimSpace(r.Status)))
	switch status {
	case domain.AccountStatusActive, domain.AccountStatusFrozen, domain.AccountStatusClosed:
		return nil
	}
	return errors.New("status must be active, frozen or closed")
}

type AccountResponse struct {
	ID            string `json:"id"`
	HolderID      string `json:"holderId"`
	AccountNumber string `json:"accountNumber"`
	AccountType   string `json:"accountType"`
	Status        string `json:"status"`
	Balance       string `json:"balance"`
	BalanceMinor  int64  `json:"balanceMinor"`
	Currency      string `json:"currency"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}
