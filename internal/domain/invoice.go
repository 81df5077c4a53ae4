package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one priced entry in a cart. Exactly one of Quantity/Weight is
// set, matching the line's Resource. UnitPrice is a snapshot taken when the
// line was added and is not re-read later.
type CartLine struct {
	ProductCode string              `json:"product_code"`
	ProductName string              `json:"product_name"`
	UnitPrice   decimal.Decimal     `json:"unit_price"`
	Resource    Resource            `json:"resource"`
	Quantity    int64               `json:"quantity,omitempty"`
	Weight      decimal.NullDecimal `json:"weight,omitempty"`
	LineTotal   decimal.Decimal     `json:"line_total"`
}

// Amount returns the stock amount this line consumes.
func (l CartLine) Amount() Amount {
	if l.Resource == ResourceQuantity {
		return Units(l.Quantity)
	}
	return Kilograms(l.Weight.Decimal)
}

// Invoice is a committed sale. Instances are created only by a successful
// commit and are immutable afterwards.
type Invoice struct {
	ID          string          `json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	CustomerRef string          `json:"customer_ref,omitempty"`
	CashierRef  string          `json:"cashier_ref"`
	Lines       []CartLine      `json:"lines"`
	Total       decimal.Decimal `json:"total"`
	Discount    decimal.Decimal `json:"discount"`
	NetTotal    decimal.Decimal `json:"net_total"`
}
