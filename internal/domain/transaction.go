package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrDuplicateTransaction indicates that a transaction with the same idempotency key is already committed.
	ErrDuplicateTransaction = errors.New("transaction idempotency key already exists")
	// ErrUnbalancedEntry indicates that debit lines do not sum up to credit lines.
	ErrUnbalancedEntry = errors.New("debits do not equal credits")
	// ErrEmptyTransaction indicates that the transaction has fewer than two lines.
	ErrEmptyTransaction = errors.New("transaction must have at least two lines")
)

// OperationType indicates whether a transaction line is a debit or a credit.
type OperationType string

// Supported operation types.
const (
	Debit  OperationType = "DEBIT"
	Credit OperationType = "CREDIT"
)

// Inverse returns the opposite operation type.
func (t OperationType) Inverse() OperationType {
	if t == Debit {
		return Credit
	}

	return Debit
}

// TransactionLine is a single posting within a transaction. It
// references an account by ID only and carries a positive amount.
type TransactionLine struct {
	AccountID uuid.UUID       `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
	Type      OperationType   `json:"type"`
}

// NewTransactionLine returns a line for the given account. The amount
// must be strictly positive regardless of transaction-level balancing.
func NewTransactionLine(accountID uuid.UUID, amount decimal.Decimal, opType OperationType) (TransactionLine, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return TransactionLine{}, ErrInvalidAmount
	}

	return TransactionLine{AccountID: accountID, Amount: amount, Type: opType}, nil
}

// LedgerTransaction is an immutable record of a balanced set of
// transaction lines. It is built through a factory, filled with lines,
// validated exactly once, and then persisted. It is never mutated or
// deleted afterwards.
type LedgerTransaction struct {
	ID                  uuid.UUID         `json:"id"`
	CreatedAt           time.Time         `json:"created_at"`
	Description         string            `json:"description"`
	IdempotencyKey      string            `json:"idempotency_key"`
	Lines               []TransactionLine `json:"lines"`
	ParentTransactionID uuid.NullUUID     `json:"parent_transaction_id,omitempty"`
	Metadata            map[string]string `json:"metadata,omitempty"`
}

// NewTransaction returns an empty transaction for a plain transfer.
func NewTransaction(description, idempotencyKey string) LedgerTransaction {
	return LedgerTransaction{
		ID:             uuid.New(),
		CreatedAt:      time.Now().UTC(),
		Description:    description,
		IdempotencyKey: idempotencyKey,
	}
}

// NewReversal returns an empty reversal transaction referencing its
// parent transaction.
func NewReversal(description, idempotencyKey string, parentID uuid.UUID, metadata map[string]string) LedgerTransaction {
	t := NewTransaction(description, idempotencyKey)
	t.ParentTransactionID = uuid.NullUUID{UUID: parentID, Valid: true}
	t.Metadata = metadata

	return t
}

// AddLine appends a line to the transaction.
func (t *LedgerTransaction) AddLine(accountID uuid.UUID, amount decimal.Decimal, opType OperationType) error {
	line, err := NewTransactionLine(accountID, amount, opType)
	if err != nil {
		return err
	}

	t.Lines = append(t.Lines, line)

	return nil
}

// Validate enforces the double-entry invariant. It must succeed before
// the transaction is considered committable.
func (t *LedgerTransaction) Validate() error {
	if len(t.Lines) < 2 {
		return ErrEmptyTransaction
	}

	totalDebit, totalCredit := decimal.Zero, decimal.Zero

	for _, line := range t.Lines {
		switch line.Type {
		case Debit:
			totalDebit = totalDebit.Add(line.Amount)
		case Credit:
			totalCredit = totalCredit.Add(line.Amount)
		}
	}

	if !totalDebit.Equal(totalCredit) {
		return ErrUnbalancedEntry
	}

	return nil
}

// IsReversal returns true if the transaction reverses another one.
func (t *LedgerTransaction) IsReversal() bool {
	return t.ParentTransactionID.Valid
}

// BalanceAdjustment is a raw signed balance delta applied during a
// reversal. It bypasses the category-aware debit/credit rules to
// reproduce the exact numeric effect of undoing the original posting.
type BalanceAdjustment struct {
	AccountID uuid.UUID
	Delta     decimal.Decimal
}

// Entry is the projection of a transaction onto a single account: the
// one line of the transaction that touches the account, paired with the
// transaction header. It backs per-account statements.
type Entry struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Type          OperationType   `json:"type"`
	CreatedAt     time.Time       `json:"created_at"`
}
