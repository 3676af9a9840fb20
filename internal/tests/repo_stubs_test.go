package services_test

import (
	"context"

	"github.com/api-sage/ledger-service/internal/domain"
)

type userRepoStub struct {
	createFn     func(ctx context.Context, user domain.User) (domain.User, error)
	getByIDFn    func(ctx context.Context, id string) (domain.User, error)
	getByEmailFn func(ctx context.Context, email string) (domain.User, error)
}

func (s userRepoStub) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	return user, nil
}

func (s userRepoStub) GetByID(ctx context.Context, id string) (domain.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return domain.User{}, domain.ErrRecordNotFound
}

func (s userRepoStub) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return domain.User{}, domain.ErrRecordNotFound
}

type holderRepoStub struct {
	createFn      func(ctx context.Context, holder domain.AccountHolder) (domain.AccountHolder, error)
	getByUserIDFn func(ctx context.Context, userID string) (domain.AccountHolder, error)
	updateFn      func(ctx context.Context, holder domain.AccountHolder) (domain.AccountHolder, error)
}

func (s holderRepoStub) Create(ctx context.Context, holder domain.AccountHolder) (domain.AccountHolder, error) {
	if s.createFn != nil {
		return s.createFn(ctx, holder)
	}
	holder.ID = "holder-1"
	return holder, nil
}

func (s holderRepoStub) GetByUserID(ctx context.Context, userID string) (domain.AccountHolder, error) {
	if s.getByUserIDFn != nil {
		return s.getByUserIDFn(ctx, userID)
	}
	return domain.AccountHolder{}, domain.ErrRecordNotFound
}

func (s holderRepoStub) Update(ctx context.Context, holder domain.AccountHolder) (domain.AccountHolder, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, holder)
	}
	return holder, nil
}

type accountRepoStub struct {
	createFn         func(ctx context.Context, account domain.Account, initialDepositMinor int64) (domain.Account, error)
	getByIDFn        func(ctx context.Context, id string) (domain.Account, error)
	getOwnedByUserFn func(ctx context.Context, accountID string, userID string) (domain.Account, error)
	listByHolderFn   func(ctx context.Context, holderID string) ([]domain.Account, error)
	listActiveFn     func(ctx context.Context) ([]domain.Account, error)
	numberExistsFn   func(ctx context.Context, accountNumber string) (bool, error)
	updateStatusFn   func(ctx context.Context, accountID string, status domain.AccountStatus, requireZeroBalance bool) (domain.Account, error)
}

func (s accountRepoStub) Create(ctx context.Context, account domain.Account, initialDepositMinor int64) (domain.Account, error) {
	if s.createFn != nil {
		return s.createFn(ctx, account, initialDepositMinor)
	}
	account.ID = "acc-1"
	return account, nil
}

func (s accountRepoStub) GetByID(ctx context.Context, id string) (domain.Account, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return domain.Account{}, domain.ErrRecordNotFound
}

func (s accountRepoStub) GetOwnedByUser(ctx context.Context, accountID string, userID string) (domain.Account, error) {
	if s.getOwnedByUserFn != nil {
		return s.getOwnedByUserFn(ctx, accountID, userID)
	}
	return domain.Account{}, domain.ErrRecordNotFound
}

func (s accountRepoStub) ListByHolder(ctx context.Context, holderID string) ([]domain.Account, error) {
	if s.listByHolderFn != nil {
		return s.listByHolderFn(ctx, holderID)
	}
	return nil, nil
}

func (s accountRepoStub) ListActive(ctx context.Context) ([]domain.Account, error) {
	if s.listActiveFn != nil {
		return s.listActiveFn(ctx)
	}
	return nil, nil
}

func (s accountRepoStub) NumberExists(ctx context.Context, accountNumber string) (bool, error) {
	if s.numberExistsFn != nil {
		return s.numberExistsFn(ctx, accountNumber)
	}
	return false, nil
}

func (s accountRepoStub) UpdateStatus(ctx context.Context, accountID string, status domain.AccountStatus, requireZeroBalance bool) (domain.Account, error) {
	if s.updateStatusFn != nil {
		return s.updateStatusFn(ctx, accountID, status, requireZeroBalance)
	}
	return domain.Account{}, domain.ErrRecordNotFound
}

type cardRepoStub struct {
	createFn               func(ctx context.Context, card domain.Card) (domain.Card, error)
	getForHolderFn         func(ctx context.Context, cardID string, holderID string) (domain.Card, error)
	listByHolderFn         func(ctx context.Context, holderID string) ([]domain.Card, error)
	countActiveByAccountFn func(ctx context.Context, accountID string) (int, error)
	updateStatusFn         func(ctx context.Context, cardID string, status domain.CardStatus) (domain.Card, error)
	updateDailyLimitFn     func(ctx context.Context, cardID string, dailyLimitMinor int64) (domain.Card, error)
}

func (s cardRepoStub) Create(ctx context.Context, card domain.Card) (domain.Card, error) {
	if s.createFn != nil {
		return s.createFn(ctx, card)
	}
	card.ID = "card-1"
	return card, nil
}

func (s cardRepoStub) GetForHolder(ctx context.Context, cardID string, holderID string) (domain.Card, error) {
	if s.getForHolderFn != nil {
		return s.getForHolderFn(ctx, cardID, holderID)
	}
	return domain.Card{}, domain.ErrRecordNotFound
}

func (s cardRepoStub) ListByHolder(ctx context.Context, holderID string) ([]domain.Card, error) {
	if s.listByHolderFn != nil {
		return s.listByHolderFn(ctx, holderID)
	}
	return nil, nil
}

func (s cardRepoStub) CountActiveByAccount(ctx context.Context, accountID string) (int, error) {
	if s.countActiveByAccountFn != nil {
		return s.countActiveByAccountFn(ctx, accountID)
	}
	return 0, nil
}

func (s cardRepoStub) UpdateStatus(ctx context.Context, cardID string, status domain.CardStatus) (domain.Card, error) {
	if s.updateStatusFn != nil {
		return s.updateStatusFn(ctx, cardID, status)
	}
	return domain.Card{ID: cardID, Status: status}, nil
}

func (s cardRepoStub) UpdateDailyLimit(ctx context.Context, cardID string, dailyLimitMinor int64) (domain.Card, error) {
	if s.updateDailyLimitFn != nil {
		return s.updateDailyLimitFn(ctx, cardID, dailyLimitMinor)
	}
	return domain.Card{ID: cardID, DailyLimitMinor: dailyLimitMinor}, nil
}

type auditRepoStub struct {
	createFn func(ctx context.Context, entry domain.AuditLog) (domain.AuditLog, error)
}

func (s auditRepoStub) Create(ctx context.Context, entry domain.AuditLog) (domain.AuditLog, error) {
	if s.createFn != nil {
		return s.createFn(ctx, entry)
	}
	entry.ID = "audit-1"
	return entry, nil
}
