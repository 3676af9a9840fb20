package domain

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
var ErrInvalidAmount = errors.New("Amount must be greater than zero")
var ErrAccountNotActive = errors.New("Account is not active")
var ErrInsufficientBalance = errors.New("Insufficient balance")
var ErrInvalidTransfer = errors.New("Invalid transfer")
var ErrNonZeroBalance = errors.New("Cannot close account with non-zero balance")
var ErrInvalidRange = errors.New("Start date must not be after end date")
var ErrNumberGenerationExhausted = errors.New("Could not generate account number")
var ErrDuplicateEmail = errors.New("Email already registered")
var ErrInvalidCredentials = errors.New("Invalid credentials")
var ErrInvalidToken = errors.New("Invalid token")
var ErrCardLimitReached = errors.New("Maximum number of active cards reached")
var ErrStatusTransitionNotAllowed = errors.New("Status transition not allowed")
