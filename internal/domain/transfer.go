package domain

import "time"

type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "pending"
	TransferStatusCompleted TransferStatus = "completed"
	TransferStatusFailed    TransferStatus = "failed"
)

// Transfer pairs a transfer_out leg on the source account with a transfer_in
// leg on the destination account, both tagged with the transfer ID. The row
// only ever commits together with both legs; an attempt that fails after
// validation leaves nothing behind, so IdempotencyKey uniqueness covers
// completed transfers only.
type Transfer struct {
	ID             string
	IdempotencyKey string
	FromAccountID  string
	ToAccountID    string
	AmountMinor    int64
	Description    *string
	Status         TransferStatus
	CompletedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
