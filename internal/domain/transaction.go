package domain

import "time"

type TransactionType string

const (
	TransactionTypeDeposit     TransactionType = "deposit"
	TransactionTypeWithdrawal  TransactionType = "withdrawal"
	TransactionTypeTransferIn  TransactionType = "transfer_in"
	TransactionTypeTransferOut TransactionType = "transfer_out"
	TransactionTypeFee         TransactionType = "fee"
)

// IsCredit reports whether the type increases an account balance.
func (t TransactionType) IsCredit() bool {
	return t == TransactionTypeDeposit || t == TransactionTypeTransferIn
}

type TransactionStatus string

const (
	TransactionStatusPosted TransactionStatus = "posted"
	TransactionStatusFailed TransactionStatus = "failed"
)

// Transaction is one row of the append-only log. Rows are immutable once
// written; BalanceAfterMinor snapshots the account balance immediately after
// the posting so statements never re-derive it from the full history.
// ReferenceID links the two legs of a transfer to their transfer record.
type Transaction struct {
	ID                string
	AccountID         string
	TransactionType   TransactionType
	AmountMinor       int64
	BalanceAfterMinor int64
	Description       *string
	ReferenceID       *string
	Status            TransactionStatus
	CreatedAt         time.Time
}
