package services_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/api-sage/ledger-service/internal/domain"
)

// fakeLedger backs the service tests with an in-memory rendition of the
// store: per-call atomic posting, balance_after snapshots and idempotency
// dedup, guarded by one mutex in place of row locks.
type fakeLedger struct {
	mu             sync.Mutex
	accounts       map[string]*domain.Account
	ownerByAccount map[string]string
	transactions   []domain.Transaction
	transfersByKey map[string]domain.Transfer
	transfersByID  map[string]domain.Transfer
	seq            int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		accounts:       make(map[string]*domain.Account),
		ownerByAccount: make(map[string]string),
		transfersByKey: make(map[string]domain.Transfer),
		transfersByID:  make(map[string]domain.Transfer),
	}
}

func (f *fakeLedger) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

// addAccount seeds an active account owned by the given user. The holder ID
// mirrors the user ID, which is all the services need.
func (f *fakeLedger) addAccount(userID string, balanceMinor int64) domain.Account {
	f.mu.Lock()
	defer f.mu.Unlock()

	account := domain.Account{
		ID:            f.nextID("acc"),
		HolderID:      userID,
		AccountNumber: fmt.Sprintf("%010d", f.seq),
		AccountType:   domain.AccountTypeChecking,
		Status:        domain.AccountStatusActive,
		BalanceMinor:  balanceMinor,
		Currency:      "USD",
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	f.accounts[account.ID] = &account
	f.ownerByAccount[account.ID] = userID
	return account
}

// seedTransaction appends a historical log row without touching the balance.
func (f *fakeLedger) seedTransaction(accountID string, transactionType domain.TransactionType, amountMinor, balanceAfterMinor int64, createdAt time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.transactions = append(f.transactions, domain.Transaction{
		ID:                f.nextID("txn"),
		AccountID:         accountID,
		TransactionType:   transactionType,
		AmountMinor:       amountMinor,
		BalanceAfterMinor: balanceAfterMinor,
		Status:            domain.TransactionStatusPosted,
		CreatedAt:         createdAt,
	})
}

func (f *fakeLedger) balance(accountID string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if account, ok := f.accounts[accountID]; ok {
		return account.BalanceMinor
	}
	return 0
}

func (f *fakeLedger) entries(accountID string) []domain.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Transaction
	for _, entry := range f.transactions {
		if entry.AccountID == accountID {
			out = append(out, entry)
		}
	}
	return out
}

func (f *fakeLedger) transactionCount(accountID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, entry := range f.transactions {
		if entry.AccountID == accountID {
			count++
		}
	}
	return count
}

// AccountRepository

func (f *fakeLedger) Create(_ context.Context, account domain.Account, initialDepositMinor int64) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	account.ID = f.nextID("acc")
	account.CreatedAt = time.Now().UTC()
	account.UpdatedAt = account.CreatedAt
	f.accounts[account.ID] = &account
	f.ownerByAccount[account.ID] = account.HolderID

	if initialDepositMinor > 0 {
		if _, err := f.postLocked(account.ID, domain.TransactionTypeDeposit, initialDepositMinor, nil, nil); err != nil {
			delete(f.accounts, account.ID)
			delete(f.ownerByAccount, account.ID)
			return domain.Account{}, err
		}
	}

	return *f.accounts[account.ID], nil
}

func (f *fakeLedger) GetByID(_ context.Context, id string) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if account, ok := f.accounts[id]; ok {
		return *account, nil
	}
	return domain.Account{}, domain.ErrRecordNotFound
}

func (f *fakeLedger) GetOwnedByUser(_ context.Context, accountID string, userID string) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	account, ok := f.accounts[accountID]
	if !ok || f.ownerByAccount[accountID] != userID {
		return domain.Account{}, domain.ErrRecordNotFound
	}
	return *account, nil
}

func (f *fakeLedger) ListByHolder(_ context.Context, holderID string) ([]domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var accounts []domain.Account
	for _, account := range f.accounts {
		if account.HolderID == holderID {
			accounts = append(accounts, *account)
		}
	}
	return accounts, nil
}

func (f *fakeLedger) ListActive(_ context.Context) ([]domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var accounts []domain.Account
	for _, account := range f.accounts {
		if account.Status == domain.AccountStatusActive {
			accounts = append(accounts, *account)
		}
	}
	return accounts, nil
}

func (f *fakeLedger) NumberExists(_ context.Context, accountNumber string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, account := range f.accounts {
		if account.AccountNumber == accountNumber {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLedger) UpdateStatus(_ context.Context, accountID string, status domain.AccountStatus, requireZeroBalance bool) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	account, ok := f.accounts[accountID]
	if !ok {
		return domain.Account{}, domain.ErrRecordNotFound
	}
	if requireZeroBalance && account.BalanceMinor != 0 {
		return domain.Account{}, domain.ErrNonZeroBalance
	}
	account.Status = status
	account.UpdatedAt = time.Now().UTC()
	return *account, nil
}

// TransactionRepository

func (f *fakeLedger) LastBalanceBefore(_ context.Context, accountID string, before time.Time) (int64, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var balance int64
	found := false
	for _, entry := range f.transactions {
		if entry.AccountID == accountID && entry.CreatedAt.Before(before) {
			balance = entry.BalanceAfterMinor
			found = true
		}
	}
	return balance, found, nil
}

func (f *fakeLedger) ListBetween(_ context.Context, accountID string, start, end time.Time) ([]domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var entries []domain.Transaction
	for _, entry := range f.transactions {
		if entry.AccountID != accountID {
			continue
		}
		if entry.CreatedAt.Before(start) || entry.CreatedAt.After(end) {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (f *fakeLedger) ListByAccount(_ context.Context, accountID string, transactionType *domain.TransactionType, limit, offset int) ([]domain.Transaction, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []domain.Transaction
	for i := len(f.transactions) - 1; i >= 0; i-- {
		entry := f.transactions[i]
		if entry.AccountID != accountID {
			continue
		}
		if transactionType != nil && entry.TransactionType != *transactionType {
			continue
		}
		matched = append(matched, entry)
	}

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

// LedgerRepository

func (f *fakeLedger) Post(_ context.Context, accountID string, transactionType domain.TransactionType, amountMinor int64, description *string, referenceID *string) (domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.postLocked(accountID, transactionType, amountMinor, description, referenceID)
}

func (f *fakeLedger) postLocked(accountID string, transactionType domain.TransactionType, amountMinor int64, description *string, referenceID *string) (domain.Transaction, error) {
	account, ok := f.accounts[accountID]
	if !ok {
		return domain.Transaction{}, domain.ErrRecordNotFound
	}
	if account.Status != domain.AccountStatusActive {
		return domain.Transaction{}, domain.ErrAccountNotActive
	}
	if amountMinor <= 0 {
		return domain.Transaction{}, domain.ErrInvalidAmount
	}
	if !transactionType.IsCredit() && account.BalanceMinor < amountMinor {
		return domain.Transaction{}, domain.ErrInsufficientBalance
	}

	if transactionType.IsCredit() {
		account.BalanceMinor += amountMinor
	} else {
		account.BalanceMinor -= amountMinor
	}

	entry := domain.Transaction{
		ID:                f.nextID("txn"),
		AccountID:         accountID,
		TransactionType:   transactionType,
		AmountMinor:       amountMinor,
		BalanceAfterMinor: account.BalanceMinor,
		Description:       description,
		ReferenceID:       referenceID,
		Status:            domain.TransactionStatusPosted,
		CreatedAt:         time.Now().UTC(),
	}
	f.transactions = append(f.transactions, entry)
	return entry, nil
}

func (f *fakeLedger) PostTransfer(_ context.Context, transfer domain.Transfer) (domain.Transfer, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if transfer.FromAccountID == transfer.ToAccountID {
		return domain.Transfer{}, false, domain.ErrInvalidTransfer
	}
	if existing, ok := f.transfersByKey[transfer.IdempotencyKey]; ok {
		return existing, false, nil
	}

	source, ok := f.accounts[transfer.FromAccountID]
	if !ok {
		return domain.Transfer{}, false, domain.ErrRecordNotFound
	}
	destination, ok := f.accounts[transfer.ToAccountID]
	if !ok {
		return domain.Transfer{}, false, domain.ErrRecordNotFound
	}
	if source.Status != domain.AccountStatusActive || destination.Status != domain.AccountStatusActive {
		return domain.Transfer{}, false, domain.ErrAccountNotActive
	}
	if transfer.AmountMinor <= 0 {
		return domain.Transfer{}, false, domain.ErrInvalidAmount
	}
	if source.BalanceMinor < transfer.AmountMinor {
		return domain.Transfer{}, false, domain.ErrInsufficientBalance
	}

	transfer.ID = f.nextID("trf")
	transfer.Status = domain.TransferStatusCompleted
	now := time.Now().UTC()
	transfer.CompletedAt = &now
	transfer.CreatedAt = now
	transfer.UpdatedAt = now

	if _, err := f.postLocked(transfer.FromAccountID, domain.TransactionTypeTransferOut, transfer.AmountMinor, transfer.Description, &transfer.ID); err != nil {
		return domain.Transfer{}, false, err
	}
	if _, err := f.postLocked(transfer.ToAccountID, domain.TransactionTypeTransferIn, transfer.AmountMinor, transfer.Description, &transfer.ID); err != nil {
		return domain.Transfer{}, false, err
	}

	f.transfersByKey[transfer.IdempotencyKey] = transfer
	f.transfersByID[transfer.ID] = transfer
	return transfer, true, nil
}

// fakeTransferRepo exposes the fixture's transfers through the read-side
// interface; a separate type because its lookup signatures collide with the
// account ones.
type fakeTransferRepo struct {
	ledger *fakeLedger
}

func (r fakeTransferRepo) GetByIdempotencyKey(_ context.Context, key string) (domain.Transfer, error) {
	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()
	if transfer, ok := r.ledger.transfersByKey[key]; ok {
		return transfer, nil
	}
	return domain.Transfer{}, domain.ErrRecordNotFound
}

func (r fakeTransferRepo) GetOwnedByUser(_ context.Context, transferID string, userID string) (domain.Transfer, error) {
	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()
	transfer, ok := r.ledger.transfersByID[transferID]
	if !ok || r.ledger.ownerByAccount[transfer.FromAccountID] != userID {
		return domain.Transfer{}, domain.ErrRecordNotFound
	}
	return transfer, nil
}
