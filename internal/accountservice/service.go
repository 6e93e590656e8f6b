// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-petr/bank-ledger/internal/domain"
	"github.com/go-petr/bank-ledger/pkg/randompkg"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Account, error)
	GetByNumber(ctx context.Context, number string) (domain.Account, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Account, error)
	Deactivate(ctx context.Context, id uuid.UUID) (domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account business logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Create creates a zero-balance account with a generated account number
// for the given owner and category.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, category domain.Category) (domain.Account, error) {
	account := domain.NewAccount(randompkg.AccountNumber(), ownerID, category)

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return created, err
	}

	return created, nil
}

// Get returns the account with the given account ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Account, error) {
	return s.repo.Get(ctx, id)
}

// GetByNumber returns the account with the given account number.
func (s *Service) GetByNumber(ctx context.Context, number string) (domain.Account, error) {
	return s.repo.GetByNumber(ctx, number)
}

// List returns accounts that are owned by the given user.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Account, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// VerifyOwnership checks that the account is owned by the acting user.
func (s *Service) VerifyOwnership(ctx context.Context, userID, accountID uuid.UUID) error {
	l := zerolog.Ctx(ctx)

	account, err := s.repo.Get(ctx, accountID)
	if err != nil {
		return err
	}

	if account.OwnerID != userID {
		l.Info().
			Str("account_id", accountID.String()).
			Str("user_id", userID.String()).
			Msg("account access denied")

		return domain.ErrAccountAccessDenied
	}

	return nil
}

// Deactivate soft-disables the acting user's account. Accounts are
// never deleted.
func (s *Service) Deactivate(ctx context.Context, userID, accountID uuid.UUID) (domain.Account, error) {
	if err := s.VerifyOwnership(ctx, userID, accountID); err != nil {
		return domain.Account{}, err
	}

	return s.repo.Deactivate(ctx, accountID)
}
