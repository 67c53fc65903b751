package commission

import (
	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/vendora-backend/pkg/errors"
)

var one = decimal.NewFromInt(1)

// Settlement is the two-way split of an order total.
type Settlement struct {
	Commission   decimal.Decimal
	SellerAmount decimal.Decimal
}

// Split divides an order total between the platform and the seller. Commission
// is rounded to cents and the seller amount is the exact remainder, so the two
// always sum back to the total.
func Split(total, rate decimal.Decimal) (Settlement, error) {
	if total.IsNegative() {
		return Settlement{}, pkgerrors.New(pkgerrors.CodeValidation, "order total cannot be negative")
	}
	if rate.IsNegative() || rate.GreaterThan(one) {
		return Settlement{}, pkgerrors.New(pkgerrors.CodeValidation, "commission rate must be between 0 and 1")
	}

	commission := total.Mul(rate).Round(2)
	return Settlement{
		Commission:   commission,
		SellerAmount: total.Sub(commission),
	}, nil
}
