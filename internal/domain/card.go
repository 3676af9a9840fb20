package domain

import "time"

type CardType string

const (
	CardTypeDebit  CardType = "debit"
	CardTypeCredit CardType = "credit"
)

type CardStatus string

const (
	CardStatusActive    CardStatus = "active"
	CardStatusFrozen    CardStatus = "frozen"
	CardStatusCancelled CardStatus = "cancelled"
)

// Card stores a sha256 fingerprint and the last four digits only; the full
// card number is never persisted.
type Card struct {
	ID              string
	AccountID       string
	LastFour        string
	NumberHash      string
	CardType        CardType
	Status          CardStatus
	ExpiryMonth     int
	ExpiryYear      int
	DailyLimitMinor int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
