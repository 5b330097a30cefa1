// Package entryservice manages business logic layer of ledger entries.
package entryservice

import (
	"context"

	"github.com/go-wallet/ledger-engine/internal/domain"
)

// Repo provides data access layer interface needed by entry service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package entryservice
type Repo interface {
	Get(ctx context.Context, id int64) (domain.Entry, error)
	List(ctx context.Context, arg domain.ListEntriesParams) ([]domain.Entry, error)
}

// Service facilitates entry service layer logic.
type Service struct {
	repo Repo
}

// New returns entry service struct to manage entry business logic.
func New(er Repo) *Service {
	return &Service{repo: er}
}

// Get returns the entry with the given id.
func (s *Service) Get(ctx context.Context, id int64) (domain.Entry, error) {
	entry, err := s.repo.Get(ctx, id)
	if err != nil {
		return entry, err
	}

	return entry, nil
}

// List returns the account statement page for the given account.
func (s *Service) List(ctx context.Context, accountID string, pageSize, pageID int32) ([]domain.Entry, error) {
	arg := domain.ListEntriesParams{
		AccountID: accountID,
		Limit:     pageSize,
		Offset:    (pageID - 1) * pageSize,
	}

	entries, err := s.repo.List(ctx, arg)
	if err != nil {
		return nil, err
	}

	return entries, nil
}
