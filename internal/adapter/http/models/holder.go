package models

import (
	"errors"
	"strings"

	"github.com/api-sage/ledger-service/internal/domain"
)

type CreateHolderRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	SSNLastFour string `json:"ssnLastFour"`
}

func (r CreateHolderRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.FirstName) == "" {
		errs = append(errs, "firstName is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		errs = append(errs, "lastName is required")
	}
	if strings.TrimSpace(r.DateOfBirth) == "" {
		errs = append(errs, "dateOfBirth is required")
	}
	if strings.TrimSpace(r.Phone) == "" {
		errs = append(errs, "phone is required")
	}
	if strings.TrimSpace(r.Address) == "" {
		errs = append(errs, "address is required")
	}
	ssn := strings.TrimSpace(r.SSNLastFour)
	if len(ssn) != 4 || !digitsOnly(ssn) {
		errs = append(errs, "ssnLastFour must be exactly 4 digits")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// UpdateHolderRequest is a partial update: only non-nil fields are applied.
type UpdateHolderRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
}

func (r UpdateHolderRequest) Validate() error {
	var errs []string

	if r.FirstName != nil && strings.TrimSpace(*r.FirstName) == "" {
		errs = append(errs, "firstName must not be blank")
	}
	if r.LastName != nil && strings.TrimSpace(*r.LastName) == "" {
		errs = append(errs, "lastName must not be blank")
	}
	if r.Phone != nil && strings.TrimSpace(*r.Phone) == "" {
		errs = append(errs, "phone must not be blank")
	}
	if r.Address != nil && strings.TrimSpace(*r.Address) == "" {
		errs = append(errs, "address must not be blank")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func (r UpdateHolderRequest) ToPatch() domain.HolderPatch {
	return domain.HolderPatch{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Address:   r.Address,
	}
}

type HolderResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	SSNLastFour string `json:"ssnLastFour"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}
