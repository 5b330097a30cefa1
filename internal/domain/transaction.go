package domain

import "errors"

var (
	// ErrInvalidAmount indicates invalid amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeAmount indicates non-positive amount.
	ErrNegativeAmount = errors.New("negative amount")
	// ErrInvalidKind indicates an unknown transaction kind.
	ErrInvalidKind = errors.New("invalid transaction kind")
)

// TransactionKind is the direction of a balance mutation.
type TransactionKind string

const (
	// Debit decreases the account balance.
	Debit TransactionKind = "DEBIT"
	// Credit increases the account balance.
	Credit TransactionKind = "CREDIT"
)

// Valid reports whether the kind is one of the known directions.
func (k TransactionKind) Valid() bool {
	return k == Debit || k == Credit
}

// CreateTransactionParams is the input data for the wallet transaction.
// Amount is a positive magnitude in minor units.
type CreateTransactionParams struct {
	AccountID   string          `json:"account_id"`
	Kind        TransactionKind `json:"kind"`
	Amount      int64           `json:"amount"`
	Description string          `json:"description"`
	ReferenceID string          `json:"reference_id"`
}

// TransactionCompletedEvent is published after a transaction commits.
type TransactionCompletedEvent struct {
	EntryID      int64           `json:"entry_id"`
	AccountID    string          `json:"account_id"`
	Kind         TransactionKind `json:"kind"`
	Amount       int64           `json:"amount"`
	BalanceAfter int64           `json:"balance_after"`
	ReferenceID  string          `json:"reference_id"`
	CompletedAt  string          `json:"completed_at"`
}
