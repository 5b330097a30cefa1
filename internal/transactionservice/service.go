// Package transactionservice manages business logic layer of wallet transactions.
package transactionservice

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-wallet/ledger-engine/internal/domain"
	"github.com/go-wallet/ledger-engine/pkg/moneypkg"
)

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	Process(ctx context.Context, arg domain.CreateTransactionParams) (domain.Entry, error)
}

// EventPublisher publishes completed transaction events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.TransactionCompletedEvent) error
}

// Service facilitates transaction service layer logic.
type Service struct {
	repo      Repo
	publisher EventPublisher
}

// New returns transaction service struct to manage transaction business logic.
func New(tr Repo, pub EventPublisher) *Service {
	return &Service{
		repo:      tr,
		publisher: pub,
	}
}

// ProcessParams is the boundary input for one wallet transaction.
// Amount is a positive decimal string; Kind defaults to Debit when empty.
type ProcessParams struct {
	AccountID   string
	Amount      string
	Kind        domain.TransactionKind
	Description string
	ReferenceID string
}

// Process validates the request, executes the atomic wallet transaction,
// and returns the committed ledger entry.
func (s *Service) Process(ctx context.Context, arg ProcessParams) (domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	amount, err := moneypkg.ToMinorUnits(arg.Amount)
	if err != nil {
		l.Info().Err(err).Str("amount", arg.Amount).Send()
		return domain.Entry{}, err
	}

	kind := arg.Kind
	if kind == "" {
		kind = domain.Debit
	}

	if !kind.Valid() {
		l.Info().Str("kind", string(kind)).Send()
		return domain.Entry{}, domain.ErrInvalidKind
	}

	entry, err := s.repo.Process(ctx, domain.CreateTransactionParams{
		AccountID:   arg.AccountID,
		Kind:        kind,
		Amount:      amount,
		Description: arg.Description,
		ReferenceID: arg.ReferenceID,
	})
	if err != nil {
		return domain.Entry{}, err
	}

	s.publish(ctx, entry)

	return entry, nil
}

// publish emits the completion event. Delivery is best effort: the
// transaction has already committed, so a publish failure is logged and
// never surfaced to the caller.
func (s *Service) publish(ctx context.Context, entry domain.Entry) {
	if s.publisher == nil {
		return
	}

	l := zerolog.Ctx(ctx)

	event := domain.TransactionCompletedEvent{
		EntryID:      entry.ID,
		AccountID:    entry.AccountID,
		Kind:         entry.Kind,
		Amount:       entry.Amount,
		BalanceAfter: entry.BalanceAfter,
		ReferenceID:  entry.ReferenceID,
		CompletedAt:  entry.CreatedAt.Format(time.RFC3339Nano),
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		l.Error().Err(err).Int64("entry_id", entry.ID).Msg("publish transaction completed event")
	}
}
