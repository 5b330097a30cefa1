// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/go-wallet/ledger-engine/internal/domain"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, balance int64) (domain.Account, error)
	Get(ctx context.Context, id string) (domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account business logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Create creates and returns an account with the given starting balance
// in minor units.
func (s *Service) Create(ctx context.Context, balance int64) (domain.Account, error) {
	account, err := s.repo.Create(ctx, balance)
	if err != nil {
		return account, err
	}

	return account, nil
}

// Get returns the account for the given account ID.
func (s *Service) Get(ctx context.Context, id string) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return account, err
	}

	return account, nil
}
