package cart

import (
	"testing"

	"github.com/10-mohamedmagdy/sameh-pos/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func quantityProduct(code string, price string) *domain.Product {
	return &domain.Product{
		Code:      code,
		Name:      "product " + code,
		UnitPrice: dec(price),
		SellMode:  domain.SellByQuantity,
	}
}

func TestCart_AddLine_Quantity(t *testing.T) {
	c := New()

	line, err := c.AddLine(quantityProduct("P001", "10.50"), domain.Units(3))
	require.NoError(t, err)

	assert.Equal(t, "P001", line.ProductCode)
	assert.Equal(t, domain.ResourceQuantity, line.Resource)
	assert.Equal(t, int64(3), line.Quantity)
	assert.Equal(t, "31.50", line.LineTotal.StringFixed(2))
}

func TestCart_AddLine_Weight(t *testing.T) {
	c := New()
	p := &domain.Product{
		Code:      "W001",
		Name:      "loose rice",
		UnitPrice: dec("8.00"),
		SellMode:  domain.SellByWeight,
	}

	line, err := c.AddLine(p, domain.Kilograms(dec("1.250")))
	require.NoError(t, err)

	assert.Equal(t, domain.ResourceWeight, line.Resource)
	require.True(t, line.Weight.Valid)
	assert.Equal(t, "1.250", line.Weight.Decimal.StringFixed(3))
	assert.Equal(t, "10.00", line.LineTotal.StringFixed(2))
}

func TestCart_AddLine_RejectsNonPositiveAmount(t *testing.T) {
	c := New()
	p := quantityProduct("P001", "10.00")

	_, err := c.AddLine(p, domain.Units(0))
	assert.ErrorIs(t, err, ErrInvalidLine)

	_, err = c.AddLine(p, domain.Units(-2))
	assert.ErrorIs(t, err, ErrInvalidLine)

	_, err = c.AddLine(p, domain.Kilograms(dec("-0.5")))
	assert.ErrorIs(t, err, ErrInvalidLine)

	assert.True(t, c.Empty())
}

func TestCart_AddLine_RejectsUnsupportedResource(t *testing.T) {
	c := New()

	_, err := c.AddLine(quantityProduct("P001", "10.00"), domain.Kilograms(dec("1.0")))
	assert.ErrorIs(t, err, ErrInvalidLine)
	assert.True(t, c.Empty())
}

func TestCart_AddLine_BothModeAsTwoLines(t *testing.T) {
	c := New()
	p := &domain.Product{
		Code:      "B001",
		Name:      "cheese",
		UnitPrice: dec("20.00"),
		SellMode:  domain.SellByBoth,
	}

	_, err := c.AddLine(p, domain.Units(2))
	require.NoError(t, err)
	_, err = c.AddLine(p, domain.Kilograms(dec("0.500")))
	require.NoError(t, err)

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, domain.ResourceQuantity, lines[0].Resource)
	assert.Equal(t, domain.ResourceWeight, lines[1].Resource)

	total, _, _ := c.Totals()
	assert.Equal(t, "50.00", total.StringFixed(2))
}

func TestCart_PriceIsSnapshot(t *testing.T) {
	c := New()
	p := quantityProduct("P001", "10.00")

	_, err := c.AddLine(p, domain.Units(1))
	require.NoError(t, err)

	// A later catalog edit must not reprice the line.
	p.UnitPrice = dec("99.00")

	total, _, _ := c.Totals()
	assert.Equal(t, "10.00", total.StringFixed(2))
}

func TestCart_Totals_WithDiscount(t *testing.T) {
	c := New()
	require.NoError(t, errOnly(c.AddLine(quantityProduct("P001", "15.00"), domain.Units(2))))
	require.NoError(t, errOnly(c.AddLine(quantityProduct("P002", "4.75"), domain.Units(4))))

	require.NoError(t, c.SetDiscount(dec("9.00")))

	total, discount, net := c.Totals()
	assert.Equal(t, "49.00", total.StringFixed(2))
	assert.Equal(t, "9.00", discount.StringFixed(2))
	assert.Equal(t, "40.00", net.StringFixed(2))
}

func TestCart_SetDiscount_Bounds(t *testing.T) {
	c := New()
	require.NoError(t, errOnly(c.AddLine(quantityProduct("P001", "10.00"), domain.Units(1))))

	assert.ErrorIs(t, c.SetDiscount(dec("-1")), ErrInvalidLine)
	assert.ErrorIs(t, c.SetDiscount(dec("10.01")), ErrInvalidLine)
	assert.NoError(t, c.SetDiscount(dec("10.00")))
}

func TestCart_RemoveAll(t *testing.T) {
	c := New()
	require.NoError(t, errOnly(c.AddLine(quantityProduct("P001", "10.00"), domain.Units(1))))
	require.NoError(t, c.SetDiscount(dec("5.00")))

	require.NoError(t, c.RemoveAll())

	assert.True(t, c.Empty())
	total, discount, net := c.Totals()
	assert.True(t, total.IsZero())
	assert.True(t, discount.IsZero())
	assert.True(t, net.IsZero())
}

func TestCart_FrozenAfterCommit(t *testing.T) {
	c := New()
	require.NoError(t, errOnly(c.AddLine(quantityProduct("P001", "10.00"), domain.Units(1))))

	c.MarkCommitted()

	_, err := c.AddLine(quantityProduct("P002", "5.00"), domain.Units(1))
	assert.ErrorIs(t, err, ErrCartCommitted)
	assert.ErrorIs(t, c.RemoveAll(), ErrCartCommitted)
	assert.ErrorIs(t, c.SetDiscount(dec("1.00")), ErrCartCommitted)

	// The committed lines stay readable.
	assert.Len(t, c.Lines(), 1)
}

func errOnly(_ domain.CartLine, err error) error {
	return err
}
