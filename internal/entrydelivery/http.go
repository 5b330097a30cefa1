// Package entrydelivery manages delivery layer of ledger entries.
package entrydelivery

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

// Service provides service layer interface needed by entry delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package entrydelivery
type Service interface {
	List(ctx context.Context, accountID string, pageSize, pageID int32) ([]domain.Entry, error)
}

// EntryResponse is the transaction receipt serialized to callers.
// Monetary fields are fixed-point decimal strings.
type EntryResponse struct {
	ID            int64  `json:"id"`
	AccountID     string `json:"account_id"`
	Kind          string `json:"kind"`
	Amount        string `json:"amount"`
	BalanceBefore string `json:"balance_before"`
	BalanceAfter  string `json:"balance_after"`
	Description   string `json:"description"`
	ReferenceID   string `json:"reference_id"`
	CreatedAt     string `json:"created_at"`
}

// NewEntryResponse renders the domain entry as a receipt.
func NewEntryResponse(e domain.Entry) EntryResponse {
	return EntryResponse{
		ID:            e.ID,
		AccountID:     e.AccountID,
		Kind:          string(e.Kind),
		Amount:        moneypkg.FromMinorUnits(e.Amount),
		BalanceBefore: moneypkg.FromMinorUnits(e.BalanceBefore),
		BalanceAfter:  moneypkg.FromMinorUnits(e.BalanceAfter),
		Description:   e.Description,
		ReferenceID:   e.ReferenceID,
		CreatedAt:     e.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// Handler facilitates entry delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns entry handler.
func NewHandler(es Service) Handler {
	return Handler{service: es}
}

type listUriRequest struct {
	AccountID string `uri:"id" binding:"required"`
}

type listRequest struct {
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"required,min=1,max=100"`
}

type dataEntries struct {
	Entries []EntryResponse `json:"entries"`
}
type responseEntries struct {
	Data dataEntries `json:"data,omitempty"`
}

// List handles http request to list entries of an account.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uriReq listUriRequest
	if err := gctx.ShouldBindUri(&uriReq); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
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

	entries, err := h.service.List(ctx, uriReq.AccountID, req.PageSize, req.PageID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	items := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, NewEntryResponse(e))
	}

	res := responseEntries{
		Data: dataEntries{items},
	}

	gctx.JSON(http.StatusOK, res)
}
