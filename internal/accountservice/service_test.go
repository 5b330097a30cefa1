package accountservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/go-wallet/ledger-engine/internal/domain"
	"github.com/go-wallet/ledger-engine/pkg/errorspkg"
)

func testAccount(balance int64) domain.Account {
	return domain.Account{
		ID:        "9df2ae37-a5a2-4a0e-a33e-ce4e51897cc8",
		Balance:   balance,
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

func TestCreate(t *testing.T) {
	account := testAccount(10_000)

	testCases := []struct {
		name          string
		balance       int64
		buildStubs    func(repo *MockRepo)
		checkResponse func(res domain.Account, err error)
	}{
		{
			name:    "OK",
			balance: 10_000,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), int64(10_000)).
					Times(1).
					Return(account, nil)
			},
			checkResponse: func(res domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, account, res)
			},
		},
		{
			name:    "StoreError",
			balance: 10_000,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, errorspkg.ErrInternal.Error())
			},
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			service := New(repo)

			res, err := service.Create(context.Background(), tc.balance)
			tc.checkResponse(res, err)
		})
	}
}

func TestGet(t *testing.T) {
	account := testAccount(5_000)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	repo.EXPECT().Get(gomock.Any(), account.ID).Times(1).Return(account, nil)

	service := New(repo)

	res, err := service.Get(context.Background(), account.ID)
	require.NoError(t, err)
	require.Equal(t, account, res)
}

func TestGetNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	repo.EXPECT().
		Get(gomock.Any(), "does-not-exist").
		Times(1).
		Return(domain.Account{}, domain.ErrAccountNotFound)

	service := New(repo)

	res, err := service.Get(context.Background(), "does-not-exist")
	require.EqualError(t, err, domain.ErrAccountNotFound.Error())
	require.Empty(t, res)
}
