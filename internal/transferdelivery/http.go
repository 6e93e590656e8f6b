// Package transferdelivery manages delivery layer of transfers and reversals.
package transferdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-petr/bank-ledger/internal/domain"
	"github.com/go-petr/bank-ledger/internal/middleware"
	"github.com/go-petr/bank-ledger/pkg/errorspkg"
	"github.com/go-petr/bank-ledger/pkg/web"
)

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferResult, error)
	TransferByNumber(ctx context.Context, sourceAccountID uuid.UUID, targetNumber, amount, idempotencyKey, description string) (domain.TransferResult, error)
	Reverse(ctx context.Context, userID, originTransactionID uuid.UUID, reason string) (domain.ReversalResult, error)
}

// AccountService provides the account ownership check needed before a
// transfer is accepted.
type AccountService interface {
	VerifyOwnership(ctx context.Context, userID, accountID uuid.UUID) error
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service        Service
	accountService AccountService
}

// NewHandler returns transfer handler.
func NewHandler(ts Service, as AccountService) *Handler {
	return &Handler{
		service:        ts,
		accountService: as,
	}
}

type data struct {
	Transfer domain.TransferResult `json:"transfer"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

func transferStatus(err error) int {
	switch err {
	case domain.ErrInvalidAmount,
		domain.ErrSameAccount,
		domain.ErrBlankDescription,
		domain.ErrBlankIdempotencyKey:
		return http.StatusBadRequest
	case domain.ErrAccountNotFound,
		domain.ErrTransactionNotFound:
		return http.StatusNotFound
	case domain.ErrAccountAccessDenied:
		return http.StatusForbidden
	case domain.ErrAccountInactive,
		domain.ErrInsufficientBalance,
		domain.ErrUnbalancedEntry,
		domain.ErrEmptyTransaction:
		return http.StatusConflict
	case domain.ErrTransferConflict:
		return http.StatusServiceUnavailable
	}

	return http.StatusInternalServerError
}

func writeError(gctx *gin.Context, err error) {
	status := transferStatus(err)
	if status == http.StatusInternalServerError {
		err = errorspkg.ErrInternal
	}

	gctx.JSON(status, web.Error(err))
}

type createRequest struct {
	SourceAccountID string `json:"source_account_id" binding:"required,uuid"`
	TargetAccountID string `json:"target_account_id" binding:"required,uuid"`
	Amount          string `json:"amount" binding:"required"`
	Description     string `json:"description" binding:"required"`
	IdempotencyKey  string `json:"idempotency_key" binding:"required"`
}

// Create handles http request to transfer money between two accounts.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	sourceAccountID := uuid.MustParse(req.SourceAccountID)

	if err := h.accountService.VerifyOwnership(ctx, middleware.UserID(gctx), sourceAccountID); err != nil {
		l.Info().Err(err).Send()
		writeError(gctx, err)

		return
	}

	result, err := h.service.Transfer(ctx, domain.CreateTransferParams{
		SourceAccountID: sourceAccountID,
		TargetAccountID: uuid.MustParse(req.TargetAccountID),
		Amount:          req.Amount,
		IdempotencyKey:  req.IdempotencyKey,
		Description:     req.Description,
	})
	if err != nil {
		l.Info().Err(err).Send()
		writeError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{result}})
}

type createByNumberRequest struct {
	SourceAccountID     string `json:"source_account_id" binding:"required,uuid"`
	TargetAccountNumber string `json:"target_account_number" binding:"required"`
	Amount              string `json:"amount" binding:"required"`
	Description         string `json:"description" binding:"required"`
	IdempotencyKey      string `json:"idempotency_key" binding:"required"`
}

// CreateByNumber handles http request to transfer money to an account
// identified by its account number.
func (h *Handler) CreateByNumber(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createByNumberRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	sourceAccountID := uuid.MustParse(req.SourceAccountID)

	if err := h.accountService.VerifyOwnership(ctx, middleware.UserID(gctx), sourceAccountID); err != nil {
		l.Info().Err(err).Send()
		writeError(gctx, err)

		return
	}

	result, err := h.service.TransferByNumber(ctx,
		sourceAccountID,
		req.TargetAccountNumber,
		req.Amount,
		req.IdempotencyKey,
		req.Description,
	)
	if err != nil {
		l.Info().Err(err).Send()
		writeError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{result}})
}

type reverseURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type reverseRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type reversalData struct {
	Reversal domain.ReversalResult `json:"reversal"`
}

// Reverse handles http request to reverse a committed transaction.
func (h *Handler) Reverse(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri reverseURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	var req reverseRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	result, err := h.service.Reverse(ctx, middleware.UserID(gctx), uuid.MustParse(uri.ID), req.Reason)
	if err != nil {
		l.Info().Err(err).Send()
		writeError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, struct {
		Data reversalData `json:"data,omitempty"`
	}{reversalData{result}})
}
