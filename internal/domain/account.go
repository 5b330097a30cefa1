// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountBusy indicates that the account row lock could not be acquired in time.
	ErrAccountBusy = errors.New("account busy")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Account holds the wallet balance in minor units (cents).
type Account struct {
	ID        string    `json:"id"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}
