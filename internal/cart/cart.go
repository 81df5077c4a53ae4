package cart

import (
	"errors"
	"fmt"

	"github.com/10-mohamedmagdy/sameh-pos/internal/domain"
	"github.com/shopspring/decimal"
)

// Common errors returned by the cart.
var (
	ErrInvalidLine   = errors.New("invalid cart line")
	ErrCartCommitted = errors.New("cart is already committed")
)

// Cart accumulates priced lines for one checkout at one station. It is not
// shared between stations, so it carries no locking; all persistence happens
// at commit time through the transaction coordinator.
type Cart struct {
	lines     []domain.CartLine
	discount  decimal.Decimal
	committed bool
}

func New() *Cart {
	return &Cart{}
}

// AddLine prices amt against the product's current unit price and appends a
// line. The price is a snapshot: later catalog edits do not reprice the
// line. A "both" product may appear as two lines, one per resource, but a
// single line never consumes both.
func (c *Cart) AddLine(product *domain.Product, amt domain.Amount) (domain.CartLine, error) {
	if c.committed {
		return domain.CartLine{}, ErrCartCommitted
	}
	if !amt.Positive() {
		return domain.CartLine{}, fmt.Errorf("%w: amount must be positive", ErrInvalidLine)
	}
	if !product.SellMode.Supports(amt.Resource) {
		return domain.CartLine{}, fmt.Errorf("%w: product %s sells by %s, requested %s",
			ErrInvalidLine, product.Code, product.SellMode, amt.Resource)
	}

	line := domain.CartLine{
		ProductCode: product.Code,
		ProductName: product.Name,
		UnitPrice:   product.UnitPrice,
		Resource:    amt.Resource,
		LineTotal:   product.UnitPrice.Mul(amt.Decimal()).Round(2),
	}
	switch amt.Resource {
	case domain.ResourceQuantity:
		line.Quantity = amt.Quantity
	case domain.ResourceWeight:
		line.Weight = decimal.NewNullDecimal(amt.Weight)
	}

	c.lines = append(c.lines, line)
	return line, nil
}

// RemoveAll clears every line and the discount.
func (c *Cart) RemoveAll() error {
	if c.committed {
		return ErrCartCommitted
	}
	c.lines = nil
	c.discount = decimal.Zero
	return nil
}

// SetDiscount sets a whole-cart discount. It may not be negative or exceed
// the current total.
func (c *Cart) SetDiscount(d decimal.Decimal) error {
	if c.committed {
		return ErrCartCommitted
	}
	if d.IsNegative() {
		return fmt.Errorf("%w: discount must not be negative", ErrInvalidLine)
	}
	total, _, _ := c.Totals()
	if d.GreaterThan(total) {
		return fmt.Errorf("%w: discount %s exceeds total %s", ErrInvalidLine, d, total)
	}
	c.discount = d
	return nil
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Committed() bool {
	return c.committed
}

// Totals recomputes from the current lines: total, discount, net.
func (c *Cart) Totals() (decimal.Decimal, decimal.Decimal, decimal.Decimal) {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.LineTotal)
	}
	return total, c.discount, total.Sub(c.discount)
}

// MarkCommitted freezes the cart. Called by the transaction coordinator
// after its unit of work commits; every mutating method fails afterwards.
func (c *Cart) MarkCommitted() {
	c.committed = true
}
