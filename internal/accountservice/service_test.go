package accountservice

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/bank-ledger/internal/domain"
)

func TestCreate(t *testing.T) {
	ownerID := uuid.New()

	t.Run("OK", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := NewMockRepo(ctrl)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			Times(1).
			DoAndReturn(func(_ context.Context, account domain.Account) (domain.Account, error) {
				require.Equal(t, ownerID, account.OwnerID)
				require.Equal(t, domain.Liability, account.Category)
				require.Len(t, account.Number, 10)
				require.True(t, account.Balance.IsZero())
				require.True(t, account.Active)

				return account, nil
			})

		service := New(repo)

		account, err := service.Create(context.Background(), ownerID, domain.Liability)
		require.NoError(t, err)
		require.Equal(t, ownerID, account.OwnerID)
	})

	t.Run("NumberCollision", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := NewMockRepo(ctrl)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			Times(1).
			Return(domain.Account{}, domain.ErrAccountNumberAlreadyExists)

		service := New(repo)

		_, err := service.Create(context.Background(), ownerID, domain.Asset)
		require.ErrorIs(t, err, domain.ErrAccountNumberAlreadyExists)
	})
}

func TestVerifyOwnership(t *testing.T) {
	userID := uuid.New()
	accountID := uuid.New()

	testCases := []struct {
		name       string
		buildStubs func(repo *MockRepo)
		wantErr    error
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return(domain.Account{ID: accountID, OwnerID: userID}, nil)
			},
		},
		{
			name: "NotFound",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name: "NotOwner",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return(domain.Account{ID: accountID, OwnerID: uuid.New()}, nil)
			},
			wantErr: domain.ErrAccountAccessDenied,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			service := New(repo)

			err := service.VerifyOwnership(context.Background(), userID, accountID)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestDeactivate(t *testing.T) {
	userID := uuid.New()
	accountID := uuid.New()

	t.Run("OK", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := NewMockRepo(ctrl)
		repo.EXPECT().Get(gomock.Any(), gomock.Eq(accountID)).
			Times(1).
			Return(domain.Account{ID: accountID, OwnerID: userID, Active: true}, nil)
		repo.EXPECT().Deactivate(gomock.Any(), gomock.Eq(accountID)).
			Times(1).
			Return(domain.Account{ID: accountID, OwnerID: userID, Active: false}, nil)

		service := New(repo)

		account, err := service.Deactivate(context.Background(), userID, accountID)
		require.NoError(t, err)
		require.False(t, account.Active)
	})

	t.Run("NotOwner", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := NewMockRepo(ctrl)
		repo.EXPECT().Get(gomock.Any(), gomock.Eq(accountID)).
			Times(1).
			Return(domain.Account{ID: accountID, OwnerID: uuid.New()}, nil)
		repo.EXPECT().Deactivate(gomock.Any(), gomock.Any()).Times(0)

		service := New(repo)

		_, err := service.Deactivate(context.Background(), userID, accountID)
		require.ErrorIs(t, err, domain.ErrAccountAccessDenied)
	})
}

func TestGetByNumber(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	repo.EXPECT().GetByNumber(gomock.Any(), gomock.Eq("1234567890")).
		Times(1).
		Return(domain.Account{Number: "1234567890"}, nil)
	repo.EXPECT().GetByNumber(gomock.Any(), gomock.Eq("0000000000")).
		Times(1).
		Return(domain.Account{}, domain.ErrAccountNotFound)

	service := New(repo)

	account, err := service.GetByNumber(context.Background(), "1234567890")
	require.NoError(t, err)
	require.Equal(t, "1234567890", account.Number)

	_, err = service.GetByNumber(context.Background(), "0000000000")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestList(t *testing.T) {
	ownerID := uuid.New()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	repo.EXPECT().ListByOwner(gomock.Any(), gomock.Eq(ownerID)).
		Times(1).
		Return([]domain.Account{{OwnerID: ownerID}, {OwnerID: ownerID}}, nil)

	service := New(repo)

	accounts, err := service.List(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
}
