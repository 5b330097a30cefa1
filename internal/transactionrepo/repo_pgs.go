// Package transactionrepo manages the atomic wallet transaction.
package transactionrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-wallet/ledger-engine/internal/accountrepo"
	"github.com/go-wallet/ledger-engine/internal/domain"
	"github.com/go-wallet/ledger-engine/internal/entryrepo"
	"github.com/go-wallet/ledger-engine/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS coordinates the atomic balance mutation sequence:
// begin, lock, validate, mutate, record, commit.
type RepoPGS struct {
	conn        *sql.DB
	lockTimeout time.Duration
}

// NewRepoPGS returns transaction RepoPGS with connection to start transactions.
// A zero lockTimeout means the lock wait is unbounded.
func NewRepoPGS(db *sql.DB, lockTimeout time.Duration) *RepoPGS {
	return &RepoPGS{
		conn:        db,
		lockTimeout: lockTimeout,
	}
}

// Process runs one wallet transaction against the account.
//
// It locks the account row, validates sufficient funds for debits, writes
// the new balance, and appends the ledger entry, all within a single
// database transaction. Any failure rolls back the whole transaction so
// no partial effects are ever visible.
func (r *RepoPGS) Process(ctx context.Context, arg domain.CreateTransactionParams) (domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	var entry domain.Entry

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return entry, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			l.Error().Err(err).Send()
		}
	}()

	if r.lockTimeout > 0 {
		// SET LOCAL scopes the timeout to this transaction only.
		setTimeout := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
		if _, err := tx.ExecContext(ctx, setTimeout); err != nil {
			l.Error().Err(err).Send()
			return entry, errorspkg.ErrInternal
		}
	}

	accountRepo := accountrepo.NewRepoPGS(tx)
	entryRepo := entryrepo.NewRepoPGS(tx)

	account, err := accountRepo.GetForUpdate(ctx, arg.AccountID)
	if err != nil {
		return entry, err
	}

	var newBalance int64

	switch arg.Kind {
	case domain.Debit:
		newBalance = account.Balance - arg.Amount
		if newBalance < 0 {
			l.Info().
				Str("account_id", arg.AccountID).
				Int64("balance", account.Balance).
				Int64("amount", arg.Amount).
				Msg("debit rejected")

			return entry, domain.ErrInsufficientBalance
		}
	case domain.Credit:
		newBalance = account.Balance + arg.Amount
	default:
		return entry, domain.ErrInvalidKind
	}

	if _, err := accountRepo.SetBalance(ctx, arg.AccountID, newBalance); err != nil {
		return entry, err
	}

	entry, err = entryRepo.Create(ctx, domain.CreateEntryParams{
		AccountID:     arg.AccountID,
		Kind:          arg.Kind,
		Amount:        arg.Amount,
		BalanceBefore: account.Balance,
		BalanceAfter:  newBalance,
		Description:   arg.Description,
		ReferenceID:   arg.ReferenceID,
	})
	if err != nil {
		return entry, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.Entry{}, errorspkg.ErrInternal
	}

	return entry, nil
}
