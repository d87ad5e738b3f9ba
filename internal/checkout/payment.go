package checkout

import (
	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/maksvovk/store-management/pkg/errors"
)

// PaymentCard is the simulated payment instrument. Only its shape is
// checked; no processor is ever contacted.
type PaymentCard struct {
	Number   string `validate:"required,numeric,min=13"`
	ExpMonth int    `validate:"required,min=1,max=12"`
	ExpYear  int    `validate:"required,min=2000"`
	CVV      string `validate:"required,numeric,len=3"`
}

var cardValidator = validator.New(validator.WithRequiredStructEnabled())

func validateCard(card PaymentCard) error {
	err := cardValidator.Struct(card)
	if err == nil {
		return nil
	}
	if fields, ok := err.(validator.ValidationErrors); ok && len(fields) > 0 {
		return pkgerrors.Newf(pkgerrors.CodeValue, "invalid payment card: %s failed %s", fields[0].Field(), fields[0].Tag()).
			WithDetails(fieldTags(fields))
	}
	return pkgerrors.Wrap(pkgerrors.CodeValue, err, "invalid payment card")
}

func fieldTags(fields validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(fields))
	for _, field := range fields {
		out[field.Field()] = field.Tag()
	}
	return out
}
