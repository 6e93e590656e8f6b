// Package transactiondelivery manages delivery layer of transaction reads.
package transactiondelivery

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

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (domain.LedgerTransaction, error)
	StatementByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Entry, error)
}

// AccountService provides the account ownership check needed before a
// statement is served.
type AccountService interface {
	VerifyOwnership(ctx context.Context, userID, accountID uuid.UUID) error
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service        Service
	accountService AccountService
}

// NewHandler returns transaction handler.
func NewHandler(ts Service, as AccountService) *Handler {
	return &Handler{
		service:        ts,
		accountService: as,
	}
}

type uriRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// Get handles http request to get a transaction by id.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	transaction, err := h.service.Get(ctx, uuid.MustParse(req.ID))
	if err != nil {
		l.Info().Err(err).Send()

		if err == domain.ErrTransactionNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	type data struct {
		Transaction domain.LedgerTransaction `json:"transaction"`
	}

	gctx.JSON(http.StatusOK, struct {
		Data data `json:"data,omitempty"`
	}{data{transaction}})
}

// ListByAccount handles http request to get the statement of the acting
// user's account, most recent first.
func (h *Handler) ListByAccount(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	accountID := uuid.MustParse(req.ID)

	if err := h.accountService.VerifyOwnership(ctx, middleware.UserID(gctx), accountID); err != nil {
		l.Info().Err(err).Send()

		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrAccountAccessDenied:
			gctx.JSON(http.StatusForbidden, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	entries, err := h.service.StatementByAccount(ctx, accountID)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	type data struct {
		Entries []domain.Entry `json:"entries"`
	}

	gctx.JSON(http.StatusOK, struct {
		Data data `json:"data,omitempty"`
	}{data{entries}})
}
