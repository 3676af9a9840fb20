package domain

import "time"

type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
)

type AccountStatus string

const (
	AccountStatusActive AccountStatus = "active"
	AccountStatusFrozen AccountStatus = "frozen"
	AccountStatusClosed AccountStatus = "closed"
)

// Account balances are integer minor currency units (cents for USD).
// Balance never goes below zero; the ledger store enforces this in the
// posting path and with a CHECK constraint. Accounts are never hard-deleted.
type Account struct {
	ID            string
	HolderID      string
	AccountNumber string
	AccountType   AccountType
	Status        AccountStatus
	BalanceMinor  int64
	Currency      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
