package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Resource is the stock pool an amount draws from.
type Resource string

const (
	ResourceQuantity Resource = "quantity"
	ResourceWeight   Resource = "weight"
)

// Amount is a tagged request for stock: either a unit count or a weight
// in kilograms, never both.
type Amount struct {
	Resource Resource
	Quantity int64
	Weight   decimal.Decimal
}

// Units builds a quantity amount.
func Units(n int64) Amount {
	return Amount{Resource: ResourceQuantity, Quantity: n}
}

// Kilograms builds a weight amount.
func Kilograms(kg decimal.Decimal) Amount {
	return Amount{Resource: ResourceWeight, Weight: kg}
}

// Positive reports whether the amount is strictly greater than zero.
func (a Amount) Positive() bool {
	switch a.Resource {
	case ResourceQuantity:
		return a.Quantity > 0
	case ResourceWeight:
		return a.Weight.IsPositive()
	}
	return false
}

// Decimal returns the requested amount as a decimal regardless of resource.
func (a Amount) Decimal() decimal.Decimal {
	if a.Resource == ResourceQuantity {
		return decimal.NewFromInt(a.Quantity)
	}
	return a.Weight
}

func (a Amount) String() string {
	if a.Resource == ResourceQuantity {
		return fmt.Sprintf("%d pcs", a.Quantity)
	}
	return fmt.Sprintf("%s kg", a.Weight.StringFixed(3))
}
