// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/bank-ledger/internal/domain"
	"github.com/go-petr/bank-ledger/pkg/dbpkg"
	"github.com/go-petr/bank-ledger/pkg/errorspkg"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

func scanAccount(row *sql.Row) (domain.Account, error) {
	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Number,
		&a.OwnerID,
		&a.Category,
		&a.Balance,
		&a.Active,
		&a.CreatedAt,
		&a.Version,
	)

	return a, err
}

const createQuery = `
INSERT INTO
    accounts (id, number, owner_id, category, balance, active, created_at)
VALUES
    ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, number, owner_id, category, balance, active, created_at, version
`

// Create persists a new account and returns it with its initial version.
func (r *RepoPGS) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		account.ID,
		account.Number,
		account.OwnerID,
		account.Category,
		account.Balance,
		account.Active,
		account.CreatedAt,
	)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_number_key" {
				return a, domain.ErrAccountNumberAlreadyExists
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT
	id, number, owner_id, category, balance, active, created_at, version
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id uuid.UUID) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getByNumberQuery = `
SELECT
	id, number, owner_id, category, balance, active, created_at, version
FROM accounts
WHERE number = $1
`

// GetByNumber returns the account with the given account number.
func (r *RepoPGS) GetByNumber(ctx context.Context, number string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, getByNumberQuery, number))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listByOwnerQuery = `
SELECT
	id, number, owner_id, category, balance, active, created_at, version
FROM accounts
WHERE owner_id = $1
ORDER BY created_at
`

// ListByOwner returns all accounts of the given owner.
func (r *RepoPGS) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByOwnerQuery, ownerID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Number, &a.OwnerID, &a.Category, &a.Balance, &a.Active, &a.CreatedAt, &a.Version); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const updateQuery = `
UPDATE accounts
SET balance = $1, active = $2, version = version + 1
WHERE id = $3 AND version = $4
RETURNING id, number, owner_id, category, balance, active, created_at, version
`

// Update persists the mutable account state using compare-and-swap on
// the version the account was read at. A concurrent update since the
// read yields domain.ErrVersionConflict.
func (r *RepoPGS) Update(ctx context.Context, account domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updateQuery,
		account.Balance,
		account.Active,
		account.ID,
		account.Version,
	)

	a, err := scanAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			// Zero rows means either a stale version or a missing account.
			if _, getErr := r.Get(ctx, account.ID); getErr != nil {
				return a, getErr
			}

			l.Info().Str("account_id", account.ID.String()).Msg("account version conflict")

			return a, domain.ErrVersionConflict
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const addBalanceQuery = `
UPDATE accounts
SET balance = balance + $1, version = version + 1
WHERE id = $2
RETURNING id, number, owner_id, category, balance, active, created_at, version
`

// AddBalance applies a raw signed delta to the account's balance.
// Reversals use it to undo postings regardless of account category.
func (r *RepoPGS) AddBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, addBalanceQuery, delta, id))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const deactivateQuery = `
UPDATE accounts
SET active = FALSE, version = version + 1
WHERE id = $1
RETURNING id, number, owner_id, category, balance, active, created_at, version
`

// Deactivate soft-disables the account. Accounts are never deleted.
func (r *RepoPGS) Deactivate(ctx context.Context, id uuid.UUID) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, deactivateQuery, id))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}
