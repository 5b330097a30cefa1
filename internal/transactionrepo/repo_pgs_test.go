package transactionrepo

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/go-wallet/ledger-engine/internal/accountrepo"
	"github.com/go-wallet/ledger-engine/internal/domain"
	"github.com/go-wallet/ledger-engine/internal/entryrepo"
	"github.com/go-wallet/ledger-engine/pkg/configpkg"
	"github.com/go-wallet/ledger-engine/pkg/dbpkg"
	"github.com/go-wallet/ledger-engine/pkg/randompkg"

	_ "github.com/lib/pq"
)

var (
	testDB          *sql.DB
	testRepo        *RepoPGS
	testAccountRepo *accountrepo.RepoPGS
	testEntryRepo   *entryrepo.RepoPGS
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	testDB, err = dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		log.Fatal("cannot connect to db:", err)
	}

	testRepo = NewRepoPGS(testDB, config.LockTimeout)
	testAccountRepo = accountrepo.NewRepoPGS(testDB)
	testEntryRepo = entryrepo.NewRepoPGS(testDB)

	os.Exit(m.Run())
}

func createAccountWithBalance(t *testing.T, balance int64) domain.Account {
	t.Helper()

	account, err := testAccountRepo.Create(context.Background(), balance)
	require.NoError(t, err)
	require.NotEmpty(t, account)

	return account
}

func listAllEntries(t *testing.T, accountID string) []domain.Entry {
	t.Helper()

	entries, err := testEntryRepo.List(context.Background(), domain.ListEntriesParams{
		AccountID: accountID,
		Limit:     1_000,
		Offset:    0,
	})
	require.NoError(t, err)

	return entries
}

func TestProcessDebit(t *testing.T) {
	testAccount := createAccountWithBalance(t, 10_000)

	arg := domain.CreateTransactionParams{
		AccountID:   testAccount.ID,
		Kind:        domain.Debit,
		Amount:      3_000,
		Description: "Order #12",
		ReferenceID: randompkg.ReferenceID(),
	}

	entry, err := testRepo.Process(context.Background(), arg)
	require.NoError(t, err)

	want := domain.Entry{
		AccountID:     testAccount.ID,
		Kind:          domain.Debit,
		Amount:        3_000,
		BalanceBefore: 10_000,
		BalanceAfter:  7_000,
		Description:   "Order #12",
		ReferenceID:   arg.ReferenceID,
	}

	ignore := cmpopts.IgnoreFields(domain.Entry{}, "ID", "CreatedAt")
	if diff := cmp.Diff(want, entry, ignore); diff != "" {
		t.Errorf("entry mismatch (-want +got):\n%s", diff)
	}

	require.NotZero(t, entry.ID)
	require.NotZero(t, entry.CreatedAt)

	account, err := testAccountRepo.Get(context.Background(), testAccount.ID)
	require.NoError(t, err)
	require.Equal(t, int64(7_000), account.Balance)
}

func TestProcessCredit(t *testing.T) {
	testAccount := createAccountWithBalance(t, 2_000)

	arg := domain.CreateTransactionParams{
		AccountID:   testAccount.ID,
		Kind:        domain.Credit,
		Amount:      500,
		Description: "refund",
	}

	entry, err := testRepo.Process(context.Background(), arg)
	require.NoError(t, err)

	require.Equal(t, domain.Credit, entry.Kind)
	require.Equal(t, int64(2_000), entry.BalanceBefore)
	require.Equal(t, int64(2_500), entry.BalanceAfter)

	account, err := testAccountRepo.Get(context.Background(), testAccount.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2_500), account.Balance)
}

func TestProcessInsufficientBalance(t *testing.T) {
	testAccount := createAccountWithBalance(t, 5_000)

	arg := domain.CreateTransactionParams{
		AccountID:   testAccount.ID,
		Kind:        domain.Debit,
		Amount:      7_500,
		Description: "too large",
	}

	entry, err := testRepo.Process(context.Background(), arg)
	require.EqualError(t, err, domain.ErrInsufficientBalance.Error())
	require.Empty(t, entry)

	// Balance and ledger are untouched.
	account, err := testAccountRepo.Get(context.Background(), testAccount.ID)
	require.NoError(t, err)
	require.Equal(t, int64(5_000), account.Balance)

	require.Empty(t, listAllEntries(t, testAccount.ID))
}

func TestProcessAccountNotFound(t *testing.T) {
	arg := domain.CreateTransactionParams{
		AccountID:   "does-not-exist",
		Kind:        domain.Debit,
		Amount:      1_000,
		Description: "void",
	}

	entry, err := testRepo.Process(context.Background(), arg)
	require.EqualError(t, err, domain.ErrAccountNotFound.Error())
	require.Empty(t, entry)
}

func TestProcessDuplicateReferenceRollsBack(t *testing.T) {
	testAccount := createAccountWithBalance(t, 10_000)
	referenceID := randompkg.ReferenceID()

	arg := domain.CreateTransactionParams{
		AccountID:   testAccount.ID,
		Kind:        domain.Debit,
		Amount:      1_000,
		Description: "payment",
		ReferenceID: referenceID,
	}

	_, err := testRepo.Process(context.Background(), arg)
	require.NoError(t, err)

	// The replay fails and must not double-apply the balance change.
	entry, err := testRepo.Process(context.Background(), arg)
	require.EqualError(t, err, domain.ErrDuplicateReference.Error())
	require.Empty(t, entry)

	account, err := testAccountRepo.Get(context.Background(), testAccount.ID)
	require.NoError(t, err)
	require.Equal(t, int64(9_000), account.Balance)

	require.Len(t, listAllEntries(t, testAccount.ID), 1)
}

func TestProcessConcurrentDebits(t *testing.T) {
	const (
		n      = 10
		amount = int64(1_000)
	)

	testAccount := createAccountWithBalance(t, n*amount)

	errs := make(chan error, n)
	results := make(chan domain.Entry, n)

	for i := 0; i < n; i++ {
		go func() {
			entry, err := testRepo.Process(context.Background(), domain.CreateTransactionParams{
				AccountID:   testAccount.ID,
				Kind:        domain.Debit,
				Amount:      amount,
				Description: "concurrent debit",
			})

			errs <- err
			results <- entry
		}()
	}

	for i := 0; i < n; i++ {
		require.NoError(t, <-errs)

		entry := <-results
		require.Equal(t, amount, entry.Amount)
		require.Equal(t, entry.BalanceBefore-amount, entry.BalanceAfter)
	}

	account, err := testAccountRepo.Get(context.Background(), testAccount.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), account.Balance)

	// No lost or duplicated updates: exactly n entries forming a chain.
	entries := listAllEntries(t, testAccount.ID)
	require.Len(t, entries, n)

	for i := 1; i < len(entries); i++ {
		require.Equal(t, entries[i-1].BalanceAfter, entries[i].BalanceBefore)
	}
}

func TestProcessConcurrentDebitsContended(t *testing.T) {
	// Balance covers only one of the two debits.
	testAccount := createAccountWithBalance(t, 10_000)

	errs := make(chan error, 2)

	for i := 0; i < 2; i++ {
		go func() {
			_, err := testRepo.Process(context.Background(), domain.CreateTransactionParams{
				AccountID:   testAccount.ID,
				Kind:        domain.Debit,
				Amount:      6_000,
				Description: "contended debit",
			})

			errs <- err
		}()
	}

	var failed int

	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			require.EqualError(t, err, domain.ErrInsufficientBalance.Error())
			failed++
		}
	}

	require.Equal(t, 1, failed)

	account, err := testAccountRepo.Get(context.Background(), testAccount.ID)
	require.NoError(t, err)
	require.Equal(t, int64(4_000), account.Balance)

	require.Len(t, listAllEntries(t, testAccount.ID), 1)
}

func TestProcessLockTimeout(t *testing.T) {
	testAccount := createAccountWithBalance(t, 10_000)

	// Hold the row lock in a separate transaction.
	holder, err := testDB.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	defer func() {
		require.NoError(t, holder.Rollback())
	}()

	_, err = accountrepo.NewRepoPGS(holder).GetForUpdate(context.Background(), testAccount.ID)
	require.NoError(t, err)

	boundedRepo := NewRepoPGS(testDB, 100*time.Millisecond)

	entry, err := boundedRepo.Process(context.Background(), domain.CreateTransactionParams{
		AccountID:   testAccount.ID,
		Kind:        domain.Debit,
		Amount:      1_000,
		Description: "blocked",
	})
	require.EqualError(t, err, domain.ErrAccountBusy.Error())
	require.Empty(t, entry)
}
