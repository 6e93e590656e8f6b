// Package transactionservice manages business logic layer of
// transaction reads and per-account statements.
package transactionservice

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-petr/bank-ledger/internal/domain"
	"github.com/go-petr/bank-ledger/pkg/errorspkg"
)

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	Get(ctx context.Context, id uuid.UUID) (domain.LedgerTransaction, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.LedgerTransaction, error)
}

// Service facilitates transaction service layer logic.
type Service struct {
	repo Repo
}

// New returns transaction service struct to manage transaction business logic.
func New(tr Repo) *Service {
	return &Service{repo: tr}
}

// Get returns the transaction with the given id including its lines.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.LedgerTransaction, error) {
	return s.repo.Get(ctx, id)
}

// StatementByAccount projects every transaction touching the account
// onto the single line that touches it, most recent first.
func (s *Service) StatementByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	transactions, err := s.repo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.Entry, 0, len(transactions))

	for _, t := range transactions {
		found := false

		for _, line := range t.Lines {
			if line.AccountID != accountID {
				continue
			}

			entries = append(entries, domain.Entry{
				TransactionID: t.ID,
				Description:   t.Description,
				Amount:        line.Amount,
				Type:          line.Type,
				CreatedAt:     t.CreatedAt,
			})
			found = true

			break
		}

		if !found {
			l.Error().
				Str("transaction_id", t.ID.String()).
				Str("account_id", accountID.String()).
				Msg("transaction line not found for account")

			return nil, errorspkg.ErrInternal
		}
	}

	return entries, nil
}
