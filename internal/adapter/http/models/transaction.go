package models

import (
	"errors"
	"strings"

	"github.com/api-sage/ledger-service/internal/domain"
	"github.com/shopspring/decimal"
)

type DepositRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

func (r DepositRequest) Validate() error {
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("amount must be greater than zero")
	}
	return nil
}

type WithdrawRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

func (r WithdrawRequest) Validate() error {
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("amount must be greater than zero")
	}
	return nil
}

type ListTransactionsQuery struct {
	Page            int
	PageSize        int
	TransactionType *domain.TransactionType
}

func ParseTransactionType(raw string) (*domain.TransactionType, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return nil, nil
	}

	transactionType := domain.TransactionType(trimmed)
	switch transactionType {
	case domain.TransactionTypeDeposit,
		domain.TransactionTypeWithdrawal,
		domain.TransactionTypeTransferIn,
		domain.TransactionTypeTransferOut,
		domain.TransactionTypeFee:
		return &transactionType, nil
	}
	return nil, errors.New("transactionType is not supported")
}

type TransactionResponse struct {
	ID                string  `json:"id"`
	AccountID         string  `json:"accountId"`
	TransactionType   string  `json:"transactionType"`
	Amount            string  `json:"amount"`
	AmountMinor       int64   `json:"amountMinor"`
	BalanceAfter      string  `json:"balanceAfter"`
	BalanceAfterMinor int64   `json:"balanceAfterMinor"`
	Description       *string `json:"description,omitempty"`
	ReferenceID       *string `json:"referenceId,omitempty"`
	Status            string  `json:"status"`
	CreatedAt         string  `json:"createdAt"`
}

type TransactionListResponse struct {
	Items    []TransactionResponse `json:"items"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"pageSize"`
	Total    int64                 `json:"total"`
}
