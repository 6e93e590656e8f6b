// Package transactionrepo manages repository layer of ledger transactions.
package transactionrepo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/go-petr/bank-ledger/internal/domain"
	"github.com/go-petr/bank-ledger/pkg/dbpkg"
	"github.com/go-petr/bank-ledger/pkg/errorspkg"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transaction RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const saveTransactionQuery = `
INSERT INTO
    transactions (id, created_at, description, idempotency_key, parent_transaction_id, metadata)
VALUES
    ($1, $2, $3, $4, $5, $6)
`

const saveLineQuery = `
INSERT INTO
    transaction_lines (transaction_id, account_id, amount, type)
VALUES
    ($1, $2, $3, $4)
`

// Save persists the transaction together with its lines. Transactions
// are immutable once saved.
func (r *RepoPGS) Save(ctx context.Context, transaction domain.LedgerTransaction) error {
	l := zerolog.Ctx(ctx)

	var metadata []byte

	if transaction.Metadata != nil {
		var err error

		metadata, err = json.Marshal(transaction.Metadata)
		if err != nil {
			l.Error().Err(err).Send()
			return errorspkg.ErrInternal
		}
	}

	_, err := r.db.ExecContext(ctx, saveTransactionQuery,
		transaction.ID,
		transaction.CreatedAt,
		transaction.Description,
		transaction.IdempotencyKey,
		transaction.ParentTransactionID,
		metadata,
	)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "transactions_idempotency_key_key" {
				return domain.ErrDuplicateTransaction
			}
		}

		return errorspkg.ErrInternal
	}

	for _, line := range transaction.Lines {
		_, err := r.db.ExecContext(ctx, saveLineQuery,
			transaction.ID,
			line.AccountID,
			line.Amount,
			line.Type,
		)
		if err != nil {
			l.Error().Err(err).Send()

			if pqErr, ok := err.(*pq.Error); ok {
				if pqErr.Constraint == "transaction_lines_account_id_fkey" {
					return domain.ErrAccountNotFound
				}
			}

			return errorspkg.ErrInternal
		}
	}

	return nil
}

const getQuery = `
SELECT
	id, created_at, description, idempotency_key, parent_transaction_id, metadata
FROM transactions
WHERE id = $1
`

// Get returns the transaction with the given id including its lines.
func (r *RepoPGS) Get(ctx context.Context, id uuid.UUID) (domain.LedgerTransaction, error) {
	l := zerolog.Ctx(ctx)

	var (
		t        domain.LedgerTransaction
		metadata []byte
	)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	err := row.Scan(
		&t.ID,
		&t.CreatedAt,
		&t.Description,
		&t.IdempotencyKey,
		&t.ParentTransactionID,
		&metadata,
	)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionNotFound
		}

		return t, errorspkg.ErrInternal
	}

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &t.Metadata); err != nil {
			l.Error().Err(err).Send()
			return t, errorspkg.ErrInternal
		}
	}

	lines, err := r.listLines(ctx, []uuid.UUID{t.ID})
	if err != nil {
		return t, err
	}

	t.Lines = lines[t.ID]

	return t, nil
}

const existsQuery = `
SELECT EXISTS (SELECT 1 FROM transactions WHERE idempotency_key = $1)
`

// ExistsByIdempotencyKey reports whether a transaction with the given
// idempotency key is already committed.
func (r *RepoPGS) ExistsByIdempotencyKey(ctx context.Context, key string) (bool, error) {
	l := zerolog.Ctx(ctx)

	var exists bool

	if err := r.db.QueryRowContext(ctx, existsQuery, key).Scan(&exists); err != nil {
		l.Error().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	return exists, nil
}

const listByAccountQuery = `
SELECT
	id, created_at, description, idempotency_key, parent_transaction_id, metadata
FROM transactions
WHERE id IN (SELECT transaction_id FROM transaction_lines WHERE account_id = $1)
ORDER BY created_at DESC
`

// ListByAccount returns all transactions touching the given account,
// most recent first, including their lines.
func (r *RepoPGS) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.LedgerTransaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByAccountQuery, accountID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.LedgerTransaction{}
	ids := []uuid.UUID{}

	for rows.Next() {
		var (
			t        domain.LedgerTransaction
			metadata []byte
		)

		if err := rows.Scan(&t.ID, &t.CreatedAt, &t.Description, &t.IdempotencyKey, &t.ParentTransactionID, &metadata); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &t.Metadata); err != nil {
				l.Error().Err(err).Send()
				return nil, errorspkg.ErrInternal
			}
		}

		items = append(items, t)
		ids = append(ids, t.ID)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if len(items) == 0 {
		return items, nil
	}

	lines, err := r.listLines(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].Lines = lines[items[i].ID]
	}

	return items, nil
}

const listLinesQuery = `
SELECT
	transaction_id, account_id, amount, type
FROM transaction_lines
WHERE transaction_id = ANY($1)
ORDER BY id
`

func (r *RepoPGS) listLines(ctx context.Context, transactionIDs []uuid.UUID) (map[uuid.UUID][]domain.TransactionLine, error) {
	l := zerolog.Ctx(ctx)

	ids := make([]string, len(transactionIDs))
	for i, id := range transactionIDs {
		ids[i] = id.String()
	}

	rows, err := r.db.QueryContext(ctx, listLinesQuery, pq.Array(ids))
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	lines := map[uuid.UUID][]domain.TransactionLine{}

	for rows.Next() {
		var (
			transactionID uuid.UUID
			line          domain.TransactionLine
		)

		if err := rows.Scan(&transactionID, &line.AccountID, &line.Amount, &line.Type); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		lines[transactionID] = append(lines[transactionID], line)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return lines, nil
}
