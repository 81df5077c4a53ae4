package stock

import (
	"context"
	"fmt"

	"github.com/10-mohamedmagdy/sameh-pos/internal/domain"
	"github.com/shopspring/decimal"
)

// LowStockItem is one row of the below-safe-limit report.
type LowStockItem struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	SellMode  domain.SellMode `json:"sell_mode"`
	Quantity  int64           `json:"quantity"`
	Weight    decimal.Decimal `json:"weight"`
	SafeLimit decimal.Decimal `json:"safe_limit"`
}

// ListBelowSafeLimit returns products whose on-hand for a resource their
// sell mode uses is at or under the safe limit. Advisory, read-only.
func (l *Ledger) ListBelowSafeLimit(ctx context.Context) ([]LowStockItem, error) {
	query := `SELECT code, name, sell_by, quantity, weight, safe_limit
	          FROM products
	          WHERE (sell_by IN ('quantity', 'both') AND quantity <= safe_limit)
	             OR (sell_by IN ('weight', 'both') AND weight <= safe_limit)
	          ORDER BY name`

	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query low stock: %w", err)
	}
	defer rows.Close()

	var items []LowStockItem
	for rows.Next() {
		var item LowStockItem
		if err := rows.Scan(
			&item.Code,
			&item.Name,
			&item.SellMode,
			&item.Quantity,
			&item.Weight,
			&item.SafeLimit,
		); err != nil {
			return nil, fmt.Errorf("scan low stock row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}
