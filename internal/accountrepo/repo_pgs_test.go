package accountrepo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/bank-ledger/internal/domain"
	"github.com/go-petr/bank-ledger/pkg/configpkg"
	"github.com/go-petr/bank-ledger/pkg/dbpkg"
	"github.com/go-petr/bank-ledger/pkg/randompkg"
)

func newTestRepo(t *testing.T) *RepoPGS {
	t.Helper()

	config, err := configpkg.Load("../../configs")
	require.NoError(t, err)

	return NewRepoPGS(dbpkg.SetupTX(t, config.DBDriver, config.DBSource))
}

func createTestAccount(t *testing.T, testRepo *RepoPGS) domain.Account {
	t.Helper()

	account := domain.NewAccount(randompkg.AccountNumber(), uuid.New(), randompkg.Category())

	created, err := testRepo.Create(context.Background(), account)
	require.NoError(t, err)
	require.NotEmpty(t, created)

	require.Equal(t, account.ID, created.ID)
	require.Equal(t, account.Number, created.Number)
	require.Equal(t, account.OwnerID, created.OwnerID)
	require.Equal(t, account.Category, created.Category)
	require.True(t, created.Balance.IsZero())
	require.True(t, created.Active)
	require.WithinDuration(t, account.CreatedAt, created.CreatedAt, time.Second)
	require.Equal(t, int64(1), created.Version)

	return created
}

func TestCreate(t *testing.T) {
	testRepo := newTestRepo(t)

	createTestAccount(t, testRepo)
}

func TestCreateNumberCollision(t *testing.T) {
	testRepo := newTestRepo(t)
	testAccount := createTestAccount(t, testRepo)

	duplicate := domain.NewAccount(testAccount.Number, uuid.New(), randompkg.Category())

	response, err := testRepo.Create(context.Background(), duplicate)
	require.ErrorIs(t, err, domain.ErrAccountNumberAlreadyExists)
	require.Empty(t, response)
}

func TestGet(t *testing.T) {
	testRepo := newTestRepo(t)
	testAccount := createTestAccount(t, testRepo)

	account, err := testRepo.Get(context.Background(), testAccount.ID)
	require.NoError(t, err)

	require.Equal(t, testAccount.ID, account.ID)
	require.Equal(t, testAccount.Number, account.Number)
	require.Equal(t, testAccount.OwnerID, account.OwnerID)
	require.True(t, account.Balance.Equal(testAccount.Balance))
	require.WithinDuration(t, testAccount.CreatedAt, account.CreatedAt, time.Second)

	_, err = testRepo.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestGetByNumber(t *testing.T) {
	testRepo := newTestRepo(t)
	testAccount := createTestAccount(t, testRepo)

	account, err := testRepo.GetByNumber(context.Background(), testAccount.Number)
	require.NoError(t, err)
	require.Equal(t, testAccount.ID, account.ID)

	_, err = testRepo.GetByNumber(context.Background(), randompkg.AccountNumber())
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestListByOwner(t *testing.T) {
	testRepo := newTestRepo(t)
	ownerID := uuid.New()

	for i := 0; i < 3; i++ {
		account := domain.NewAccount(randompkg.AccountNumber(), ownerID, randompkg.Category())

		_, err := testRepo.Create(context.Background(), account)
		require.NoError(t, err)
	}

	accounts, err := testRepo.ListByOwner(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, accounts, 3)

	for _, account := range accounts {
		require.Equal(t, ownerID, account.OwnerID)
	}

	accounts, err = testRepo.ListByOwner(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Empty(t, accounts)
}

func TestUpdate(t *testing.T) {
	testRepo := newTestRepo(t)
	testAccount := createTestAccount(t, testRepo)

	funded, err := testRepo.AddBalance(context.Background(), testAccount.ID,
		randompkg.MoneyAmountBetween(1_000, 10_000))
	require.NoError(t, err)
	require.Equal(t, testAccount.Version+1, funded.Version)

	funded.Balance = funded.Balance.Sub(decimal.RequireFromString("100"))

	updated, err := testRepo.Update(context.Background(), funded)
	require.NoError(t, err)
	require.True(t, updated.Balance.Equal(funded.Balance))
	require.Equal(t, funded.Version+1, updated.Version)
}

func TestUpdateStaleVersion(t *testing.T) {
	testRepo := newTestRepo(t)
	testAccount := createTestAccount(t, testRepo)

	// Concurrent writer bumps the version after our read.
	_, err := testRepo.AddBalance(context.Background(), testAccount.ID,
		randompkg.MoneyAmountBetween(100, 1_000))
	require.NoError(t, err)

	response, err := testRepo.Update(context.Background(), testAccount)
	require.ErrorIs(t, err, domain.ErrVersionConflict)
	require.Empty(t, response)
}

func TestUpdateAccountNotFound(t *testing.T) {
	testRepo := newTestRepo(t)
	testAccount := createTestAccount(t, testRepo)

	testAccount.ID = uuid.New()

	response, err := testRepo.Update(context.Background(), testAccount)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	require.Empty(t, response)
}

func TestAddBalance(t *testing.T) {
	testRepo := newTestRepo(t)
	testAccount := createTestAccount(t, testRepo)
	delta := randompkg.MoneyAmountBetween(100, 1_000)

	funded, err := testRepo.AddBalance(context.Background(), testAccount.ID, delta)
	require.NoError(t, err)
	require.True(t, funded.Balance.Equal(testAccount.Balance.Add(delta)))
	require.Equal(t, testAccount.Version+1, funded.Version)

	// Negative deltas undo postings regardless of category.
	restored, err := testRepo.AddBalance(context.Background(), testAccount.ID, delta.Neg())
	require.NoError(t, err)
	require.True(t, restored.Balance.Equal(testAccount.Balance))

	_, err = testRepo.AddBalance(context.Background(), uuid.New(), delta)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestDeactivate(t *testing.T) {
	testRepo := newTestRepo(t)
	testAccount := createTestAccount(t, testRepo)

	account, err := testRepo.Deactivate(context.Background(), testAccount.ID)
	require.NoError(t, err)
	require.False(t, account.Active)
	require.Equal(t, testAccount.Version+1, account.Version)

	_, err = testRepo.Deactivate(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}
