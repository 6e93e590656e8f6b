package accountdelivery

import (
	"github.com/go-playground/validator/v10"

	"github.com/go-petr/bank-ledger/internal/domain"
)

// ValidCategory validates whether the account category is supported.
var ValidCategory validator.Func = func(fl validator.FieldLevel) bool {
	if c, ok := fl.Field().Interface().(string); ok {
		return domain.IsSupportedCategory(c)
	}
	return false
}
