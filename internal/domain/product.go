package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SellMode says which stock resource a product is sold by.
type SellMode string

const (
	SellByQuantity SellMode = "quantity"
	SellByWeight   SellMode = "weight"
	SellByBoth     SellMode = "both"
)

// Supports reports whether the given resource can be sold under this mode.
func (m SellMode) Supports(r Resource) bool {
	switch m {
	case SellByQuantity:
		return r == ResourceQuantity
	case SellByWeight:
		return r == ResourceWeight
	case SellByBoth:
		return r == ResourceQuantity || r == ResourceWeight
	}
	return false
}

// Valid reports whether m is one of the known sell modes.
func (m SellMode) Valid() bool {
	return m == SellByQuantity || m == SellByWeight || m == SellByBoth
}

type Product struct {
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Quantity      int64           `json:"quantity"`
	Weight        decimal.Decimal `json:"weight"`
	SellMode      SellMode        `json:"sell_mode"`
	SafeLimit     decimal.Decimal `json:"safe_limit"`
	CreatedAt     time.Time       `json:"created_at"`
}
