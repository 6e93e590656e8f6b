package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testAccount(category Category, balance string) Account {
	return Account{
		ID:       uuid.New(),
		Number:   "1234567890",
		OwnerID:  uuid.New(),
		Category: category,
		Balance:  decimal.RequireFromString(balance),
		Active:   true,
		Version:  1,
	}
}

func TestNewAccount(t *testing.T) {
	ownerID := uuid.New()

	account := NewAccount("1234567890", ownerID, Liability)

	require.NotEqual(t, uuid.Nil, account.ID)
	require.Equal(t, "1234567890", account.Number)
	require.Equal(t, ownerID, account.OwnerID)
	require.Equal(t, Liability, account.Category)
	require.True(t, account.Balance.IsZero())
	require.True(t, account.Active)
	require.NotZero(t, account.CreatedAt)
}

func TestDebit(t *testing.T) {
	testCases := []struct {
		name        string
		account     Account
		amount      string
		wantBalance string
		wantErr     error
	}{
		{
			name:        "LiabilityDecreases",
			account:     testAccount(Liability, "1000"),
			amount:      "200",
			wantBalance: "800",
		},
		{
			name:        "LiabilityExactBalance",
			account:     testAccount(Liability, "200"),
			amount:      "200",
			wantBalance: "0",
		},
		{
			name:    "LiabilityInsufficientBalance",
			account: testAccount(Liability, "100"),
			amount:  "100.01",
			wantErr: ErrInsufficientBalance,
		},
		{
			name:        "AssetIncreases",
			account:     testAccount(Asset, "1000"),
			amount:      "200",
			wantBalance: "1200",
		},
		{
			name:        "ExpenseIncreases",
			account:     testAccount(Expense, "0"),
			amount:      "50",
			wantBalance: "50",
		},
		{
			name:    "ZeroAmount",
			account: testAccount(Liability, "1000"),
			amount:  "0",
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "NegativeAmount",
			account: testAccount(Asset, "1000"),
			amount:  "-10",
			wantErr: ErrInvalidAmount,
		},
		{
			name: "InactiveAccount",
			account: func() Account {
				a := testAccount(Liability, "1000")
				a.Active = false
				return a
			}(),
			amount:  "10",
			wantErr: ErrAccountInactive,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			before := tc.account.Balance

			got, err := tc.account.Debit(decimal.RequireFromString(tc.amount))

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.True(t, got.Balance.Equal(before), "failed debit must not change balance")

				return
			}

			require.NoError(t, err)
			require.True(t, got.Balance.Equal(decimal.RequireFromString(tc.wantBalance)),
				"got balance %s, want %s", got.Balance, tc.wantBalance)
			require.True(t, tc.account.Balance.Equal(before), "receiver must stay unchanged")
		})
	}
}

func TestCredit(t *testing.T) {
	testCases := []struct {
		name        string
		account     Account
		amount      string
		wantBalance string
		wantErr     error
	}{
		{
			name:        "LiabilityIncreases",
			account:     testAccount(Liability, "500"),
			amount:      "200",
			wantBalance: "700",
		},
		{
			name:        "AssetDecreases",
			account:     testAccount(Asset, "1000"),
			amount:      "200",
			wantBalance: "800",
		},
		{
			name:        "AssetMayGoNegative",
			account:     testAccount(Asset, "100"),
			amount:      "150",
			wantBalance: "-50",
		},
		{
			name:    "ZeroAmount",
			account: testAccount(Liability, "1000"),
			amount:  "0",
			wantErr: ErrInvalidAmount,
		},
		{
			name: "InactiveAccount",
			account: func() Account {
				a := testAccount(Liability, "1000")
				a.Active = false
				return a
			}(),
			amount:  "10",
			wantErr: ErrAccountInactive,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.account.Credit(decimal.RequireFromString(tc.amount))

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
			require.True(t, got.Balance.Equal(decimal.RequireFromString(tc.wantBalance)),
				"got balance %s, want %s", got.Balance, tc.wantBalance)
		})
	}
}

func TestDebitCreditRoundTrip(t *testing.T) {
	account := testAccount(Liability, "1000")
	amount := decimal.RequireFromString("123.45")

	debited, err := account.Debit(amount)
	require.NoError(t, err)

	credited, err := debited.Credit(amount)
	require.NoError(t, err)

	require.True(t, credited.Balance.Equal(account.Balance))
}
