package sales

import (
	"context"
	"database/sql"
	"errors"

	"github.com/openretail/pos/internal/domain"
)

var ErrSaleNotFound = errors.New("sale not found")

type SaleRepository struct {
	db *sql.DB
}

func NewSaleRepository(db *sql.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

// List returns sales newest first with the cashier's username joined in.
// Items are left out; ItemsBySale serves them per sale.
func (r *SaleRepository) List(ctx context.Context) ([]domain.Sale, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT sales.id, sales.cashier_id, users.username, sales.total, sales.created_at
		FROM sales
		JOIN users ON sales.cashier_id = users.id
		ORDER BY sales.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	salesList := []domain.Sale{}
	for rows.Next() {
		var s domain.Sale
		if err := rows.Scan(&s.ID, &s.CashierID, &s.Cashier, &s.Total, &s.CreatedAt); err != nil {
			return nil, err
		}
		salesList = append(salesList, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return salesList, nil
}

// ItemsBySale returns the recorded line items in checkout order. The name and
// unit price come from the snapshot columns, never from the product table.
func (r *SaleRepository) ItemsBySale(ctx context.Context, saleID string) ([]domain.SaleItem, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM sales WHERE id = $1)
	`, saleID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrSaleNotFound
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, name, quantity, unit_price
		FROM sale_items
		WHERE sale_id = $1
		ORDER BY line_no
	`, saleID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []domain.SaleItem{}
	for rows.Next() {
		var item domain.SaleItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
