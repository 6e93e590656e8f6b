// Package transferservice manages business logic layer of transfers
// and reversals.
package transferservice

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/bank-ledger/internal/domain"
)

// reversalKeyPrefix derives the reversal idempotency key from the
// original one, so reversing the same transaction twice is idempotent.
const reversalKeyPrefix = "REV-"

// Store provides the data access layer interface needed by the
// transfer service layer. CommitTransfer and CommitReversal must
// persist their arguments as one atomic unit, reject stale account
// versions with domain.ErrVersionConflict, and reject duplicate
// idempotency keys with domain.ErrDuplicateTransaction.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type Store interface {
	GetAccount(ctx context.Context, id uuid.UUID) (domain.Account, error)
	GetAccountByNumber(ctx context.Context, number string) (domain.Account, error)
	TransactionExists(ctx context.Context, idempotencyKey string) (bool, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (domain.LedgerTransaction, error)
	CommitTransfer(ctx context.Context, transaction domain.LedgerTransaction, source, target domain.Account) error
	CommitReversal(ctx context.Context, reversal domain.LedgerTransaction, adjustments []domain.BalanceAdjustment) error
}

// Service facilitates transfer service layer logic.
type Service struct {
	store      Store
	maxRetries int
}

// New returns transfer service struct to manage transfer business logic.
// maxRetries bounds how many times a transfer is retried after losing
// against a concurrent account update.
func New(store Store, maxRetries int) *Service {
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &Service{
		store:      store,
		maxRetries: maxRetries,
	}
}

func validParams(ctx context.Context, arg domain.CreateTransferParams) (decimal.Decimal, error) {
	l := zerolog.Ctx(ctx)

	amount, err := decimal.NewFromString(arg.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		return amount, domain.ErrInvalidAmount
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return amount, domain.ErrInvalidAmount
	}

	if arg.SourceAccountID == arg.TargetAccountID {
		return amount, domain.ErrSameAccount
	}

	if strings.TrimSpace(arg.Description) == "" {
		return amount, domain.ErrBlankDescription
	}

	if strings.TrimSpace(arg.IdempotencyKey) == "" {
		return amount, domain.ErrBlankIdempotencyKey
	}

	return amount, nil
}

// Transfer moves amount from the source to the target account.
//
// A request whose idempotency key was already committed is a replay and
// short-circuits without side effects. A version conflict on commit
// means another transfer touched one of the accounts first; the whole
// sequence is retried from account load, which is safe because the
// idempotency check short-circuits once the first attempt's transaction
// becomes visible.
func (s *Service) Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferResult, error) {
	l := zerolog.Ctx(ctx)

	amount, err := validParams(ctx, arg)
	if err != nil {
		return domain.TransferResult{}, err
	}

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		result, err := s.tryTransfer(ctx, arg, amount)
		if err == domain.ErrVersionConflict {
			l.Info().
				Int("attempt", attempt+1).
				Str("idempotency_key", arg.IdempotencyKey).
				Msg("retrying transfer after version conflict")

			continue
		}

		return result, err
	}

	return domain.TransferResult{}, domain.ErrTransferConflict
}

func (s *Service) tryTransfer(ctx context.Context, arg domain.CreateTransferParams, amount decimal.Decimal) (domain.TransferResult, error) {
	l := zerolog.Ctx(ctx)

	exists, err := s.store.TransactionExists(ctx, arg.IdempotencyKey)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.TransferResult{}, err
	}

	if exists {
		return domain.TransferResult{Replayed: true}, nil
	}

	source, err := s.store.GetAccount(ctx, arg.SourceAccountID)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.TransferResult{}, err
	}

	target, err := s.store.GetAccount(ctx, arg.TargetAccountID)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.TransferResult{}, err
	}

	transaction := domain.NewTransaction(arg.Description, arg.IdempotencyKey)

	if err := transaction.AddLine(source.ID, amount, domain.Debit); err != nil {
		return domain.TransferResult{}, err
	}

	if err := transaction.AddLine(target.ID, amount, domain.Credit); err != nil {
		return domain.TransferResult{}, err
	}

	// Consistency guard: two equal lines can never be unbalanced.
	if err := transaction.Validate(); err != nil {
		l.Error().Err(err).Send()
		return domain.TransferResult{}, err
	}

	source, err = source.Debit(amount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.TransferResult{}, err
	}

	target, err = target.Credit(amount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.TransferResult{}, err
	}

	if err := s.store.CommitTransfer(ctx, transaction, source, target); err != nil {
		if err == domain.ErrDuplicateTransaction {
			// Lost an idempotency race against a concurrent duplicate
			// submission; the other request committed the transfer.
			return domain.TransferResult{Replayed: true}, nil
		}

		return domain.TransferResult{}, err
	}

	// Commit bumped both versions.
	source.Version++
	target.Version++

	return domain.TransferResult{
		Transaction:   transaction,
		SourceAccount: source,
		TargetAccount: target,
	}, nil
}

// TransferByNumber resolves the target account by its account number
// and then runs the normal transfer.
func (s *Service) TransferByNumber(ctx context.Context, sourceAccountID uuid.UUID, targetNumber, amount, idempotencyKey, description string) (domain.TransferResult, error) {
	l := zerolog.Ctx(ctx)

	target, err := s.store.GetAccountByNumber(ctx, targetNumber)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.TransferResult{}, err
	}

	return s.Transfer(ctx, domain.CreateTransferParams{
		SourceAccountID: sourceAccountID,
		TargetAccountID: target.ID,
		Amount:          amount,
		IdempotencyKey:  idempotencyKey,
		Description:     description,
	})
}

// Reverse creates a transaction that inverts the effect of the origin
// transaction without deleting it. Each inverse line is applied as a
// raw signed balance delta, bypassing the category-aware debit/credit
// rules, so the original posting is undone exactly.
//
// The acting user must own at least one account posted in the origin
// transaction.
func (s *Service) Reverse(ctx context.Context, userID, originTransactionID uuid.UUID, reason string) (domain.ReversalResult, error) {
	l := zerolog.Ctx(ctx)

	origin, err := s.store.GetTransaction(ctx, originTransactionID)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.ReversalResult{}, err
	}

	owned := false

	for _, line := range origin.Lines {
		account, err := s.store.GetAccount(ctx, line.AccountID)
		if err != nil {
			l.Error().Err(err).Send()
			return domain.ReversalResult{}, err
		}

		if account.OwnerID == userID {
			owned = true

			break
		}
	}

	if !owned {
		l.Info().
			Str("transaction_id", origin.ID.String()).
			Str("user_id", userID.String()).
			Msg("reversal access denied")

		return domain.ReversalResult{}, domain.ErrAccountAccessDenied
	}

	reversalKey := reversalKeyPrefix + origin.IdempotencyKey

	exists, err := s.store.TransactionExists(ctx, reversalKey)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.ReversalResult{}, err
	}

	if exists {
		return domain.ReversalResult{Replayed: true}, nil
	}

	reversal := domain.NewReversal(
		"REVERSAL: "+origin.Description,
		reversalKey,
		origin.ID,
		map[string]string{
			"reversal_reason": reason,
			"reversal_at":     time.Now().UTC().Format(time.RFC3339),
		},
	)

	adjustments := make([]domain.BalanceAdjustment, 0, len(origin.Lines))

	for _, line := range origin.Lines {
		inverse := line.Type.Inverse()

		if err := reversal.AddLine(line.AccountID, line.Amount, inverse); err != nil {
			return domain.ReversalResult{}, err
		}

		delta := line.Amount
		if inverse == domain.Debit {
			delta = delta.Neg()
		}

		adjustments = append(adjustments, domain.BalanceAdjustment{
			AccountID: line.AccountID,
			Delta:     delta,
		})
	}

	if err := reversal.Validate(); err != nil {
		l.Error().Err(err).Send()
		return domain.ReversalResult{}, err
	}

	if err := s.store.CommitReversal(ctx, reversal, adjustments); err != nil {
		if err == domain.ErrDuplicateTransaction {
			return domain.ReversalResult{Replayed: true}, nil
		}

		return domain.ReversalResult{}, err
	}

	return domain.ReversalResult{Transaction: reversal}, nil
}
