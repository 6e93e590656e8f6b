package domain

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrSameAccount indicates a transfer where source and target are the same account.
	ErrSameAccount = errors.New("cannot transfer to the same account")
	// ErrBlankDescription indicates a transfer request without a description.
	ErrBlankDescription = errors.New("description must not be blank")
	// ErrBlankIdempotencyKey indicates a transfer request without an idempotency key.
	ErrBlankIdempotencyKey = errors.New("idempotency key must not be blank")
	// ErrTransferConflict indicates that the transfer kept losing against
	// concurrent updates and ran out of retry attempts.
	ErrTransferConflict = errors.New("transfer aborted after repeated concurrent updates")
)

// CreateTransferParams is the input data for the transfer operation.
// Amount arrives as a string from the edge and is parsed into an exact
// decimal before orchestration begins.
type CreateTransferParams struct {
	SourceAccountID uuid.UUID `json:"source_account_id"`
	TargetAccountID uuid.UUID `json:"target_account_id"`
	Amount          string    `json:"amount"` // must be positive
	IdempotencyKey  string    `json:"idempotency_key"`
	Description     string    `json:"description"`
}

// TransferResult is the outcome of the transfer operation.
//
// Replayed is true when the idempotency key was seen before; in that
// case the rest of the struct is zero and no state was touched.
type TransferResult struct {
	Transaction   LedgerTransaction `json:"transaction"`
	SourceAccount Account           `json:"source_account"`
	TargetAccount Account           `json:"target_account"`
	Replayed      bool              `json:"replayed"`
}

// ReversalResult is the outcome of the reversal operation.
type ReversalResult struct {
	Transaction LedgerTransaction `json:"transaction"`
	Replayed    bool              `json:"replayed"`
}
