package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/10-mohamedmagdy/sameh-pos/internal/domain"
)

// ProductRepository reads and writes catalog records. On-hand columns are
// written only at creation; later stock movement goes through the ledger.
type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{db: store.DB()}
}

const productColumns = "code, name, price, purchase_price, quantity, weight, sell_by, safe_limit, created_at"

func scanProduct(row *sql.Row) (*domain.Product, error) {
	p := &domain.Product{}
	err := row.Scan(
		&p.Code,
		&p.Name,
		&p.UnitPrice,
		&p.PurchasePrice,
		&p.Quantity,
		&p.Weight,
		&p.SellMode,
		&p.SafeLimit,
		&p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) GetProduct(ctx context.Context, code string) (*domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE code = ?", productColumns)
	return scanProduct(r.db.QueryRowContext(ctx, query, code))
}

func (r *ProductRepository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products ORDER BY name", productColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p := &domain.Product{}
		err := rows.Scan(
			&p.Code,
			&p.Name,
			&p.UnitPrice,
			&p.PurchasePrice,
			&p.Quantity,
			&p.Weight,
			&p.SellMode,
			&p.SafeLimit,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) CreateProduct(ctx context.Context, p *domain.Product) error {
	if !p.SellMode.Valid() {
		return fmt.Errorf("unknown sell mode %q", p.SellMode)
	}

	query := `INSERT INTO products (code, name, price, purchase_price, quantity, weight, sell_by, safe_limit)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		p.Code,
		p.Name,
		p.UnitPrice,
		p.PurchasePrice,
		p.Quantity,
		p.Weight,
		p.SellMode,
		p.SafeLimit)
	if err != nil {
		if IsConstraint(err) {
			return ErrProductExists
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// UpdateProduct updates catalog fields. Quantity and weight are deliberately
// not part of the statement: on-hand mutates only through the stock ledger.
func (r *ProductRepository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	if !p.SellMode.Valid() {
		return fmt.Errorf("unknown sell mode %q", p.SellMode)
	}

	query := `UPDATE products
	          SET name = ?, price = ?, purchase_price = ?, sell_by = ?, safe_limit = ?
	          WHERE code = ?`

	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.UnitPrice,
		p.PurchasePrice,
		p.SellMode,
		p.SafeLimit,
		p.Code)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update product rows affected: %w", err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, code string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE code = ?", code)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product rows affected: %w", err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
