// Package entryrepo manages repository layer of ledger entries.
//
// Entries are append-only: the repository exposes no update or delete.
package entryrepo

import (
	"context"
	"database/sql"

	"github.com/go-wallet/ledger-engine/internal/domain"
	"github.com/go-wallet/ledger-engine/pkg/dbpkg"
	"github.com/go-wallet/ledger-engine/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates entry repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns entry RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    entries (account_id, kind, amount, balance_before, balance_after, description, reference_id)
VALUES
    ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, account_id, kind, amount, balance_before, balance_after, description, reference_id, created_at
`

// Create appends the entry within the ambient transaction and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateEntryParams) (domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.AccountID,
		arg.Kind,
		arg.Amount,
		arg.BalanceBefore,
		arg.BalanceAfter,
		arg.Description,
		arg.ReferenceID,
	)

	var e domain.Entry

	err := row.Scan(
		&e.ID,
		&e.AccountID,
		&e.Kind,
		&e.Amount,
		&e.BalanceBefore,
		&e.BalanceAfter,
		&e.Description,
		&e.ReferenceID,
		&e.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx context.Context, %+v)", arg)

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "entries_account_id_fkey":
				return e, domain.ErrAccountNotFound
			case "entries_amount_check":
				return e, domain.ErrInvalidAmount
			case "entries_account_id_reference_id_key":
				return e, domain.ErrDuplicateReference
			}
		}

		return e, errorspkg.ErrInternal
	}

	return e, nil
}

const getQuery = `
SELECT 
	id, account_id, kind, amount, balance_before, balance_after, description, reference_id, created_at 
FROM entries
WHERE id = $1
`

// Get returns the entry with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var e domain.Entry

	err := row.Scan(
		&e.ID,
		&e.AccountID,
		&e.Kind,
		&e.Amount,
		&e.BalanceBefore,
		&e.BalanceAfter,
		&e.Description,
		&e.ReferenceID,
		&e.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return e, domain.ErrEntryNotFound
		}

		return e, errorspkg.ErrInternal
	}

	return e, nil
}

const listQuery = `
SELECT 
	id, account_id, kind, amount, balance_before, balance_after, description, reference_id, created_at 
FROM entries
WHERE account_id = $1
ORDER BY id
LIMIT $2 OFFSET $3
`

// List returns the specified number of entries for the given account in
// commit order.
func (r *RepoPGS) List(ctx context.Context, arg domain.ListEntriesParams) ([]domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, arg.AccountID, arg.Limit, arg.Offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Entry{}

	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(
			&e.ID,
			&e.AccountID,
			&e.Kind,
			&e.Amount,
			&e.BalanceBefore,
			&e.BalanceAfter,
			&e.Description,
			&e.ReferenceID,
			&e.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, e)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
