package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type CreateTransferRequest struct {
	IdempotencyKey string          `json:"idempotencyKey"`
	FromAccountID  string          `json:"fromAccountId"`
	ToAccountID    string          `json:"toAccountId"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description,omitempty"`
}

func (r CreateTransferRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.IdempotencyKey) == "" {
		errs = append(errs, "idempotencyKey is required")
	}
	fromAccountID := strings.TrimSpace(r.FromAccountID)
	toAccountID := strings.TrimSpace(r.ToAccountID)
	if fromAccountID == "" {
		errs = append(errs, "fromAccountId is required")
	}
	if toAccountID == "" {
		errs = append(errs, "toAccountId is required")
	}
	if fromAccountID != "" && fromAccountID == toAccountID {
		errs = append(errs, "fromAccountId and toAccountId cannot be the same")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TransferResponse struct {
	ID             string  `json:"id"`
	IdempotencyKey string  `json:"idempotencyKey"`
	FromAccountID  string  `json:"fromAccountId"`
	ToAccountID    string  `json:"toAccountId"`
	Amount         string  `json:"amount"`
	AmountMinor    int64   `json:"amountMinor"`
	Description    *string `json:"description,omitempty"`
	Status         string  `json:"status"`
	CompletedAt    *string `json:"completedAt,omitempty"`
	CreatedAt      string  `json:"createdAt"`
}
