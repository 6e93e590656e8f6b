// Package transferrepo provides the ledger store consumed by the
// transfer orchestrator: reads plus the two units of work that commit a
// transfer or a reversal atomically.
package transferrepo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-petr/bank-ledger/internal/accountrepo"
	"github.com/go-petr/bank-ledger/internal/domain"
	"github.com/go-petr/bank-ledger/internal/transactionrepo"
	"github.com/go-petr/bank-ledger/pkg/errorspkg"
)

// RepoPGS facilitates transfer repository layer logic. It owns the db
// connection so it can open transactions spanning the account and
// transaction repositories.
type RepoPGS struct {
	conn         *sql.DB
	accounts     *accountrepo.RepoPGS
	transactions *transactionrepo.RepoPGS
}

// NewRepoPGS returns transfer RepoPGS with a connection to start transactions.
func NewRepoPGS(conn *sql.DB) *RepoPGS {
	return &RepoPGS{
		conn:         conn,
		accounts:     accountrepo.NewRepoPGS(conn),
		transactions: transactionrepo.NewRepoPGS(conn),
	}
}

// GetAccount returns the account with the given id.
func (r *RepoPGS) GetAccount(ctx context.Context, id uuid.UUID) (domain.Account, error) {
	return r.accounts.Get(ctx, id)
}

// GetAccountByNumber returns the account with the given account number.
func (r *RepoPGS) GetAccountByNumber(ctx context.Context, number string) (domain.Account, error) {
	return r.accounts.GetByNumber(ctx, number)
}

// TransactionExists reports whether a transaction with the given
// idempotency key is already committed.
func (r *RepoPGS) TransactionExists(ctx context.Context, idempotencyKey string) (bool, error) {
	return r.transactions.ExistsByIdempotencyKey(ctx, idempotencyKey)
}

// GetTransaction returns the transaction with the given id.
func (r *RepoPGS) GetTransaction(ctx context.Context, id uuid.UUID) (domain.LedgerTransaction, error) {
	return r.transactions.Get(ctx, id)
}

// execTx executes a function within a database transaction.
func (r *RepoPGS) execTx(ctx context.Context, fn func(accounts *accountrepo.RepoPGS, transactions *transactionrepo.RepoPGS) error) error {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if err := fn(accountrepo.NewRepoPGS(tx), transactionrepo.NewRepoPGS(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			l.Error().Err(fmt.Errorf("tx err: %v, rb err: %v", err, rbErr)).Send()
			return errorspkg.ErrInternal
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}

// CommitTransfer persists the transaction and both updated accounts as
// a single unit of work. Account updates are compare-and-swap on the
// version each account was read at.
func (r *RepoPGS) CommitTransfer(ctx context.Context, transaction domain.LedgerTransaction, source, target domain.Account) error {
	return r.execTx(ctx, func(accounts *accountrepo.RepoPGS, transactions *transactionrepo.RepoPGS) error {
		if err := transactions.Save(ctx, transaction); err != nil {
			return err
		}

		// To avoid deadlocks execute statements in consistent id order.
		first, second := source, target
		if target.ID.String() < source.ID.String() {
			first, second = target, source
		}

		if _, err := accounts.Update(ctx, first); err != nil {
			return err
		}

		if _, err := accounts.Update(ctx, second); err != nil {
			return err
		}

		return nil
	})
}

// CommitReversal persists the reversal transaction and applies the raw
// balance adjustments as a single unit of work.
func (r *RepoPGS) CommitReversal(ctx context.Context, reversal domain.LedgerTransaction, adjustments []domain.BalanceAdjustment) error {
	return r.execTx(ctx, func(accounts *accountrepo.RepoPGS, transactions *transactionrepo.RepoPGS) error {
		if err := transactions.Save(ctx, reversal); err != nil {
			return err
		}

		for _, adjustment := range adjustments {
			if _, err := accounts.AddBalance(ctx, adjustment.AccountID, adjustment.Delta); err != nil {
				return err
			}
		}

		return nil
	})
}
