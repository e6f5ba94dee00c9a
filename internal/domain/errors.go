package domain

import "errors"

// Domain errors translated to HTTP responses at the API boundary.
var (
	ErrInvalidChoice      = errors.New("choice must be heads or tails")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInsufficientFunds  = errors.New("insufficient wallet balance")
	ErrAccountNotFound    = errors.New("account not found")
	ErrDuplicateIdentity  = errors.New("username or email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is deactivated")
)
