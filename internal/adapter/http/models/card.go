package models

import (
	"errors"
	"strings"
	"time"

	"github.com/api-sage/ledger-service/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateCardRequest struct {
	AccountID   string          `json:"accountId"`
	CardNumber  string          `json:"cardNumber"`
	CardType    string          `json:"cardType"`
	ExpiryMonth int             `json:"expiryMonth"`
	ExpiryYear  int             `json:"expiryYear"`
	DailyLimit  decimal.Decimal `json:"dailyLimit"`
}

func (r CreateCardRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.AccountID) == "" {
		errs = append(errs, "accountId is required")
	}

	cardNumber := strings.TrimSpace(r.CardNumber)
	if len(cardNumber) < 12 || len(cardNumber) > 19 || !digitsOnly(cardNumber) {
		errs = append(errs, "cardNumber must be 12-19 digits")
	}

	cardType := domain.CardType(strings.ToLower(strings.TrimSpace(r.CardType)))
	if cardType != domain.CardTypeDebit && cardType != domain.CardTypeCredit {
		errs = append(errs, "cardType must be debit or credit")
	}

	if r.ExpiryMonth < 1 || r.ExpiryMonth > 12 {
		errs = append(errs, "expiryMonth must be between 1 and 12")
	}
	if r.ExpiryYear < time.Now().UTC().Year() {
		errs = append(errs, "expiryYear must be current year or later")
	}
	if r.DailyLimit.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "dailyLimit must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type UpdateCardStatusRequest struct {
	Status string `json:"status"`
}

func (r UpdateCardStatusRequest) Validate() error {
	status := domain.CardStatus(strings.ToLower(strings.TrimSpace(r.Status)))
	switch status {
	case domain.CardStatusActive, domain.CardStatusFrozen, domain.CardStatusCancelled:
		return nil
	}
	return errors.New("status must be active, frozen or cancelled")
}

type UpdateCardLimitRequest struct {
	DailyLimit decimal.Decimal `json:"dailyLimit"`
}

func (r UpdateCardLimitRequest) Validate() error {
	if r.DailyLimit.LessThanOrEqual(decimal.Zero) {
		return errors.New("dailyLimit must be greater than zero")
	}
	return nil
}

type CardResponse struct {
	ID              string `json:"id"`
	AccountID       string `json:"accountId"`
	MaskedNumber    string `json:"maskedNumber"`
	LastFour        string `json:"lastFour"`
	CardType        string `json:"cardType"`
	Status          string `json:"status"`
	ExpiryMonth     int    `json:"expiryMonth"`
	ExpiryYear      int    `json:"expiryYear"`
	DailyLimit      string `json:"dailyLimit"`
	DailyLimitMinor int64  `json:"dailyLimitMinor"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

func digitsOnly(value string) bool {
	for _, ch := range value {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
