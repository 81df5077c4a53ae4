package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/10-mohamedmagdy/sameh-pos/internal/domain"
	"github.com/shopspring/decimal"
)

// InvoiceRepository persists committed sales. The insert methods take the
// caller's transaction so a sale's header, lines and stock decrements share
// one unit of work.
type InvoiceRepository struct {
	db *sql.DB
}

func NewInvoiceRepository(store *Store) *InvoiceRepository {
	return &InvoiceRepository{db: store.DB()}
}

func (r *InvoiceRepository) InsertHeader(ctx context.Context, tx *sql.Tx, inv *domain.Invoice) error {
	query := `INSERT INTO invoices (id, created_at, customer_ref, cashier_ref, total, discount, net_total)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`

	customer := sql.NullString{String: inv.CustomerRef, Valid: inv.CustomerRef != ""}
	_, err := tx.ExecContext(ctx, query,
		inv.ID,
		inv.CreatedAt,
		customer,
		inv.CashierRef,
		inv.Total,
		inv.Discount,
		inv.NetTotal)
	if err != nil {
		return fmt.Errorf("insert invoice header: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) InsertLine(ctx context.Context, tx *sql.Tx, invoiceID string, lineNo int, line domain.CartLine) error {
	query := `INSERT INTO invoice_lines (invoice_id, line_no, product_code, product_name, unit_price, quantity, weight, line_total)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	quantity := sql.NullInt64{Int64: line.Quantity, Valid: line.Resource == domain.ResourceQuantity}
	_, err := tx.ExecContext(ctx, query,
		invoiceID,
		lineNo,
		line.ProductCode,
		line.ProductName,
		line.UnitPrice,
		quantity,
		line.Weight,
		line.LineTotal)
	if err != nil {
		return fmt.Errorf("insert invoice line %d: %w", lineNo, err)
	}
	return nil
}

// GetInvoice loads a committed invoice with its lines in insertion order.
// Receipt rendering and reporting read through this; they never touch stock.
func (r *InvoiceRepository) GetInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	query := `SELECT id, created_at, customer_ref, cashier_ref, total, discount, net_total
	          FROM invoices WHERE id = ?`

	var inv domain.Invoice
	var customer sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&inv.ID,
		&inv.CreatedAt,
		&customer,
		&inv.CashierRef,
		&inv.Total,
		&inv.Discount,
		&inv.NetTotal,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query invoice: %w", err)
	}
	inv.CustomerRef = customer.String

	lineQuery := `SELECT product_code, product_name, unit_price, quantity, weight, line_total
	              FROM invoice_lines WHERE invoice_id = ? ORDER BY line_no`

	rows, err := r.db.QueryContext(ctx, lineQuery, id)
	if err != nil {
		return nil, fmt.Errorf("query invoice lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.CartLine
		var quantity sql.NullInt64
		var weight decimal.NullDecimal
		if err := rows.Scan(
			&line.ProductCode,
			&line.ProductName,
			&line.UnitPrice,
			&quantity,
			&weight,
			&line.LineTotal,
		); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		if quantity.Valid {
			line.Resource = domain.ResourceQuantity
			line.Quantity = quantity.Int64
		} else {
			line.Resource = domain.ResourceWeight
			line.Weight = weight
		}
		inv.Lines = append(inv.Lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return &inv, nil
}
