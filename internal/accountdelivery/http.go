// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-wallet/ledger-engine/internal/domain"
	"github.com/go-wallet/ledger-engine/pkg/errorspkg"
	"github.com/go-wallet/ledger-engine/pkg/moneypkg"
	"github.com/go-wallet/ledger-engine/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, balance int64) (domain.Account, error)
	Get(ctx context.Context, id string) (domain.Account, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) Handler {
	return Handler{service: as}
}

type accountResponse struct {
	ID        string `json:"id"`
	Balance   string `json:"balance"`
	CreatedAt string `json:"created_at"`
}

func toAccountResponse(a domain.Account) accountResponse {
	return accountResponse{
		ID:        a.ID,
		Balance:   moneypkg.FromMinorUnits(a.Balance),
		CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

type data struct {
	Account accountResponse `json:"account"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

type createRequest struct {
	Balance string `json:"balance"`
}

// Create handles http request to create account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	var balance int64
	if req.Balance != "" {
		var err error

		balance, err = moneypkg.ToMinorUnits(req.Balance)
		if err != nil {
			l.Info().Err(err).Send()
			gctx.JSON(http.StatusBadRequest, web.Error(err))

			return
		}
	}

	createdAccount, err := h.service.Create(ctx, balance)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	res := response{
		Data: data{toAccountResponse(createdAccount)},
	}

	gctx.JSON(http.StatusOK, res)
}

type getRequest struct {
	ID string `uri:"id" binding:"required"`
}

// Get handles http request to get account.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
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

	acc, err := h.service.Get(ctx, req.ID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{toAccountResponse(acc)},
	}

	gctx.JSON(http.StatusOK, res)
}
