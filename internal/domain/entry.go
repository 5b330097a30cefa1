package domain

import (
	"errors"
	"time"
)

var (
	// ErrEntryNotFound indicates that the ledger entry is not found.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrDuplicateReference indicates that the account already has an entry
	// with the given reference id.
	ErrDuplicateReference = errors.New("duplicate reference id")
)

// Entry is the immutable audit record of one committed balance mutation.
// All monetary fields are minor units.
type Entry struct {
	ID            int64           `json:"id"`
	AccountID     string          `json:"account_id"`
	Kind          TransactionKind `json:"kind"`
	Amount        int64           `json:"amount"`
	BalanceBefore int64           `json:"balance_before"`
	BalanceAfter  int64           `json:"balance_after"`
	Description   string          `json:"description"`
	ReferenceID   string          `json:"reference_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreateEntryParams is the input data for appending a ledger entry.
type CreateEntryParams struct {
	AccountID     string
	Kind          TransactionKind
	Amount        int64
	BalanceBefore int64
	BalanceAfter  int64
	Description   string
	ReferenceID   string
}

// ListEntriesParams is the input data to get entries for an account.
type ListEntriesParams struct {
	AccountID string
	Limit     int32
	Offset    int32
}
