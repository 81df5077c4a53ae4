package sale

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/10-mohamedmagdy/sameh-pos/internal/cart"
	"github.com/10-mohamedmagdy/sameh-pos/internal/domain"
	"github.com/10-mohamedmagdy/sameh-pos/internal/metrics"
	"github.com/10-mohamedmagdy/sameh-pos/internal/repository"
	"github.com/10-mohamedmagdy/sameh-pos/internal/stock"
)

// Common errors returned by the coordinator.
var (
	ErrEmptyCart      = fmt.Errorf("%w: cart is empty, nothing to commit", cart.ErrInvalidLine)
	ErrCartCommitted  = fmt.Errorf("%w: cart was already committed", cart.ErrInvalidLine)
	ErrCommitConflict = errors.New("store is busy, retry the commit")
)

// Coordinator turns an open cart into a persisted invoice plus stock
// decrements, all inside one transaction.
type Coordinator struct {
	db       *sql.DB
	ledger   *stock.Ledger
	invoices *repository.InvoiceRepository
	ids      IDGenerator
	now      func() time.Time
}

func NewCoordinator(store *repository.Store, ledger *stock.Ledger, invoices *repository.InvoiceRepository, ids IDGenerator) *Coordinator {
	return &Coordinator{
		db:       store.DB(),
		ledger:   ledger,
		invoices: invoices,
		ids:      ids,
		now:      time.Now,
	}
}

// Commit persists crt as an invoice and decrements stock for every line, in
// insertion order, as one unit of work. Any line whose decrement cannot be
// covered fails the whole sale: the header, earlier lines and earlier
// decrements are rolled back and no partial state stays visible. Lock
// contention surfaces as ErrCommitConflict after the store's bounded wait.
func (c *Coordinator) Commit(ctx context.Context, crt *cart.Cart, cashierRef, customerRef string) (*domain.Invoice, error) {
	if crt.Committed() {
		return nil, ErrCartCommitted
	}
	if crt.Empty() {
		return nil, ErrEmptyCart
	}

	total, discount, netTotal := crt.Totals()
	inv := &domain.Invoice{
		ID:          c.ids.Generate(),
		CreatedAt:   c.now().UTC(),
		CustomerRef: customerRef,
		CashierRef:  cashierRef,
		Lines:       crt.Lines(),
		Total:       total,
		Discount:    discount,
		NetTotal:    netTotal,
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, c.mapStoreError("begin commit", err)
	}
	defer tx.Rollback()

	if err := c.invoices.InsertHeader(ctx, tx, inv); err != nil {
		return nil, c.mapStoreError("persist invoice header", err)
	}

	for i, line := range inv.Lines {
		if err := c.invoices.InsertLine(ctx, tx, inv.ID, i+1, line); err != nil {
			return nil, c.mapStoreError("persist invoice line", err)
		}
		if err := c.ledger.Decrement(ctx, tx, line.ProductCode, line.Amount()); err != nil {
			if errors.Is(err, stock.ErrInsufficientStock) {
				metrics.CommitsTotal.WithLabelValues(metrics.OutcomeInsufficient).Inc()
				return nil, err
			}
			return nil, c.mapStoreError("decrement stock", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, c.mapStoreError("commit transaction", err)
	}

	crt.MarkCommitted()
	metrics.CommitsTotal.WithLabelValues(metrics.OutcomeCommitted).Inc()
	return inv, nil
}

func (c *Coordinator) mapStoreError(op string, err error) error {
	if repository.IsBusy(err) {
		metrics.CommitsTotal.WithLabelValues(metrics.OutcomeConflict).Inc()
		return fmt.Errorf("%w: %s: %v", ErrCommitConflict, op, err)
	}
	metrics.CommitsTotal.WithLabelValues(metrics.OutcomeError).Inc()
	return fmt.Errorf("%s: %w", op, err)
}
