package models

import (
	"errors"
	"strings"
	"unicode"
)

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r SignupRequest) Validate() error {
	var errs []string

	email := strings.TrimSpace(r.Email)
	if email == "" || !strings.Contains(email, "@") {
		errs = append(errs, "email must be a valid email address")
	}
	errs = append(errs, passwordPolicyErrors(r.Password)...)

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email is required")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (r RefreshRequest) Validate() error {
	if strings.TrimSpace(r.RefreshToken) == "" {
		return errors.New("refreshToken is required")
	}
	return nil
}

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
}

type MeResponse struct {
	User   UserResponse    `json:"user"`
	Holder *HolderResponse `json:"holder,omitempty"`
}

func passwordPolicyErrors(password string) []string {
	var errs []string

	if len(password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	if !hasUpper {
		errs = append(errs, "password must include an uppercase letter")
	}
	if !hasLower {
		errs = append(errs, "password must include a lowercase letter")
	}
	if !hasDigit {
		errs = append(errs, "password must include a digit")
	}
	if !hasSpecial {
		errs = append(errs, "password must include a special character")
	}

	return errs
}
