// Package common contains shared sentinel errors and small byte helpers used
// across the ATM and Bank components. Callers should use errors.Is to match
// the sentinel values.
package common

import "errors"

var (
	// Envelope / codec errors.
	ErrAuthFailed = errors.New("authentication failed")
	ErrBadFormat  = errors.New("malformed message")

	// Transport errors.
	ErrTimeout = errors.New("receive timeout")

	// Credential errors.
	ErrCredentialAccess   = errors.New("credential access error")
	ErrAlreadyProvisioned = errors.New("already provisioned")

	// Ledger errors.
	ErrNoSuchUser        = errors.New("no such user")
	ErrUserExists        = errors.New("user already exists")
	ErrBalanceOverflow   = errors.New("balance overflow")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Local input validation errors.
	ErrValidation = errors.New("validation error")
)
