// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/go-wallet/ledger-engine/internal/domain"
	"github.com/go-wallet/ledger-engine/pkg/dbpkg"
	"github.com/go-wallet/ledger-engine/pkg/errorspkg"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// Postgres error code returned when lock_timeout expires before the
// row lock is granted.
const pqLockNotAvailable = "55P03"

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    accounts (id, balance)
VALUES
    ($1, $2)
RETURNING id, balance, created_at
`

// Create creates the account with the given starting balance and then returns it.
func (r *RepoPGS) Create(ctx context.Context, balance int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, uuid.NewString(), balance)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInsufficientBalance
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT 
	id, balance, created_at 
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getForUpdateQuery = `
SELECT 
	id, balance, created_at 
FROM accounts
WHERE id = $1
FOR UPDATE
`

// GetForUpdate acquires the row lock on the account within the ambient
// transaction and returns its current state. Concurrent callers targeting
// the same account block here until the holder commits or rolls back.
func (r *RepoPGS) GetForUpdate(ctx context.Context, id string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getForUpdateQuery, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if string(pqErr.Code) == pqLockNotAvailable {
				return a, domain.ErrAccountBusy
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const setBalanceQuery = `
UPDATE accounts
SET balance = $1
WHERE id = $2
RETURNING id, balance, created_at
`

// SetBalance writes the new balance within the ambient transaction and
// returns the changed account. The write has no durability until the
// transaction commits.
func (r *RepoPGS) SetBalance(ctx context.Context, id string, balance int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, setBalanceQuery, balance, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInsufficientBalance
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}
