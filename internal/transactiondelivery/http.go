// Package transactiondelivery manages delivery layer of wallet transactions.
package transactiondelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-wallet/ledger-engine/internal/domain"
	"github.com/go-wallet/ledger-engine/internal/entrydelivery"
	"github.com/go-wallet/ledger-engine/internal/transactionservice"
	"github.com/go-wallet/ledger-engine/pkg/errorspkg"
	"github.com/go-wallet/ledger-engine/pkg/web"
)

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Process(ctx context.Context, arg transactionservice.ProcessParams) (domain.Entry, error)
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(ts Service) Handler {
	return Handler{service: ts}
}

type createRequest struct {
	AccountID   string `json:"account_id" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Kind        string `json:"kind" binding:"omitempty,kind"`
	Description string `json:"description" binding:"required"`
	ReferenceID string `json:"reference_id"`
}

type data struct {
	Entry entrydelivery.EntryResponse `json:"entry"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

// Create handles http request to process a wallet transaction.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	entry, err := h.service.Process(ctx, transactionservice.ProcessParams{
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		Kind:        domain.TransactionKind(req.Kind),
		Description: req.Description,
		ReferenceID: req.ReferenceID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case errors.Is(err, domain.ErrInsufficientBalance):
			gctx.JSON(http.StatusUnprocessableEntity, web.Error(err))
		case errors.Is(err, domain.ErrAccountBusy):
			gctx.JSON(http.StatusConflict, web.Error(err))
		case errors.Is(err, domain.ErrDuplicateReference):
			gctx.JSON(http.StatusConflict, web.Error(err))
		case errors.Is(err, domain.ErrInvalidAmount),
			errors.Is(err, domain.ErrNegativeAmount),
			errors.Is(err, domain.ErrInvalidKind):
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	res := response{
		Data: data{entrydelivery.NewEntryResponse(entry)},
	}

	gctx.JSON(http.StatusOK, res)
}
