package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewTransactionLine(t *testing.T) {
	accountID := uuid.New()

	line, err := NewTransactionLine(accountID, decimal.RequireFromString("10.50"), Debit)
	require.NoError(t, err)
	require.Equal(t, accountID, line.AccountID)
	require.Equal(t, Debit, line.Type)

	_, err = NewTransactionLine(accountID, decimal.Zero, Credit)
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewTransactionLine(accountID, decimal.RequireFromString("-1"), Debit)
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestOperationTypeInverse(t *testing.T) {
	require.Equal(t, Credit, Debit.Inverse())
	require.Equal(t, Debit, Credit.Inverse())
}

func TestNewTransaction(t *testing.T) {
	transaction := NewTransaction("rent", "key1")

	require.NotEqual(t, uuid.Nil, transaction.ID)
	require.Equal(t, "rent", transaction.Description)
	require.Equal(t, "key1", transaction.IdempotencyKey)
	require.Empty(t, transaction.Lines)
	require.False(t, transaction.IsReversal())
	require.NotZero(t, transaction.CreatedAt)
}

func TestNewReversal(t *testing.T) {
	parentID := uuid.New()
	metadata := map[string]string{"reversal_reason": "fraud"}

	reversal := NewReversal("REVERSAL: rent", "REV-key1", parentID, metadata)

	require.True(t, reversal.IsReversal())
	require.Equal(t, parentID, reversal.ParentTransactionID.UUID)
	require.Equal(t, metadata, reversal.Metadata)
}

func TestValidate(t *testing.T) {
	accountA, accountB := uuid.New(), uuid.New()

	buildTransaction := func(lines ...TransactionLine) LedgerTransaction {
		transaction := NewTransaction("test", "key")
		transaction.Lines = lines

		return transaction
	}

	amount := decimal.RequireFromString("200")

	testCases := []struct {
		name        string
		transaction LedgerTransaction
		wantErr     error
	}{
		{
			name: "Balanced",
			transaction: buildTransaction(
				TransactionLine{AccountID: accountA, Amount: amount, Type: Debit},
				TransactionLine{AccountID: accountB, Amount: amount, Type: Credit},
			),
		},
		{
			name: "BalancedMultiplePairs",
			transaction: buildTransaction(
				TransactionLine{AccountID: accountA, Amount: decimal.RequireFromString("50"), Type: Debit},
				TransactionLine{AccountID: accountA, Amount: decimal.RequireFromString("150"), Type: Debit},
				TransactionLine{AccountID: accountB, Amount: amount, Type: Credit},
			),
		},
		{
			name: "Unbalanced",
			transaction: buildTransaction(
				TransactionLine{AccountID: accountA, Amount: amount, Type: Debit},
				TransactionLine{AccountID: accountB, Amount: decimal.RequireFromString("199.99"), Type: Credit},
			),
			wantErr: ErrUnbalancedEntry,
		},
		{
			name:        "Empty",
			transaction: buildTransaction(),
			wantErr:     ErrEmptyTransaction,
		},
		{
			name: "SingleLine",
			transaction: buildTransaction(
				TransactionLine{AccountID: accountA, Amount: amount, Type: Debit},
			),
			wantErr: ErrEmptyTransaction,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			err := tc.transaction.Validate()

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestAddLine(t *testing.T) {
	transaction := NewTransaction("test", "key")

	require.NoError(t, transaction.AddLine(uuid.New(), decimal.RequireFromString("10"), Debit))
	require.NoError(t, transaction.AddLine(uuid.New(), decimal.RequireFromString("10"), Credit))
	require.Len(t, transaction.Lines, 2)

	err := transaction.AddLine(uuid.New(), decimal.Zero, Debit)
	require.ErrorIs(t, err, ErrInvalidAmount)
	require.Len(t, transaction.Lines, 2)
}
