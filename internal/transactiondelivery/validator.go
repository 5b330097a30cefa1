package transactiondelivery

import (
	"github.com/go-playground/validator/v10"

	"github.com/go-wallet/ledger-engine/internal/domain"
)

// ValidKind validates whether the transaction kind is supported.
var ValidKind validator.Func = func(fl validator.FieldLevel) bool {
	if k, ok := fl.Field().Interface().(string); ok {
		return domain.TransactionKind(k).Valid()
	}
	return false
}
