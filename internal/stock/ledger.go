package stock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/10-mohamedmagdy/sameh-pos/internal/domain"
	"github.com/10-mohamedmagdy/sameh-pos/internal/repository"
	"github.com/shopspring/decimal"
)

// Common errors returned by the ledger.
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidRequest    = errors.New("resource not supported by product sell mode")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// AvailabilityStatus classifies an advisory stock check.
type AvailabilityStatus string

const (
	StatusSufficient     AvailabilityStatus = "sufficient"
	StatusInsufficient   AvailabilityStatus = "insufficient"
	StatusBelowSafeLimit AvailabilityStatus = "below_safe_limit"
)

// Availability is the answer to an advisory check. Remaining is the on-hand
// amount left after the requested sale and is only meaningful for the
// Sufficient and BelowSafeLimit statuses.
type Availability struct {
	Status    AvailabilityStatus
	Remaining decimal.Decimal
	SafeLimit decimal.Decimal
}

// Ledger owns on-hand quantity and weight per product. Reads go through the
// shared handle; decrements run inside a caller-supplied transaction.
type Ledger struct {
	db *sql.DB
}

func NewLedger(store *repository.Store) *Ledger {
	return &Ledger{db: store.DB()}
}

// CheckAvailability is a non-locking advisory read: it tells the cashier
// whether a requested amount fits current on-hand and whether the sale would
// leave stock at or under the safe limit. Stock can change between this
// check and a later commit; Decrement re-validates.
func (l *Ledger) CheckAvailability(ctx context.Context, code string, amt domain.Amount) (Availability, error) {
	if !amt.Positive() {
		return Availability{}, fmt.Errorf("%w: amount must be positive", ErrInvalidRequest)
	}

	var (
		quantity  int64
		weight    decimal.Decimal
		sellMode  domain.SellMode
		safeLimit decimal.Decimal
	)
	query := "SELECT quantity, weight, sell_by, safe_limit FROM products WHERE code = ?"
	err := l.db.QueryRowContext(ctx, query, code).Scan(&quantity, &weight, &sellMode, &safeLimit)
	if errors.Is(err, sql.ErrNoRows) {
		return Availability{}, ErrProductNotFound
	}
	if err != nil {
		return Availability{}, fmt.Errorf("query stock for %s: %w", code, err)
	}

	if !sellMode.Supports(amt.Resource) {
		return Availability{}, fmt.Errorf("%w: product %s sells by %s, requested %s", ErrInvalidRequest, code, sellMode, amt.Resource)
	}

	onHand := decimal.NewFromInt(quantity)
	if amt.Resource == domain.ResourceWeight {
		onHand = weight
	}

	requested := amt.Decimal()
	if requested.GreaterThan(onHand) {
		return Availability{Status: StatusInsufficient, SafeLimit: safeLimit}, nil
	}

	remaining := onHand.Sub(requested)
	status := StatusSufficient
	if remaining.Cmp(safeLimit) <= 0 {
		status = StatusBelowSafeLimit
	}
	return Availability{Status: status, Remaining: remaining, SafeLimit: safeLimit}, nil
}

// Decrement atomically takes amt out of the product's on-hand pool inside
// tx. The guard and the mutation are one conditional UPDATE, so concurrent
// commits on the same product cannot both pass a stale check: whoever runs
// second sees the reduced on-hand and gets ErrInsufficientStock when it no
// longer covers the request.
func (l *Ledger) Decrement(ctx context.Context, tx *sql.Tx, code string, amt domain.Amount) error {
	if !amt.Positive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidRequest)
	}

	var query string
	var args []any
	switch amt.Resource {
	case domain.ResourceQuantity:
		query = `UPDATE products SET quantity = quantity - ?
		         WHERE code = ? AND sell_by IN ('quantity', 'both') AND quantity >= ?`
		args = []any{amt.Quantity, code, amt.Quantity}
	case domain.ResourceWeight:
		query = `UPDATE products SET weight = weight - ?
		         WHERE code = ? AND sell_by IN ('weight', 'both') AND weight >= ?`
		args = []any{amt.Weight, code, amt.Weight}
	default:
		return fmt.Errorf("%w: unknown resource %q", ErrInvalidRequest, amt.Resource)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("decrement %s for %s: %w", amt.Resource, code, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("decrement rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: product %s, requested %s", ErrInsufficientStock, code, amt)
	}
	return nil
}
