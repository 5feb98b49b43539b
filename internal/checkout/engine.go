package checkout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/openretail/pos/internal/domain"
)

// totalTolerance absorbs client-side rounding of the displayed total.
var totalTolerance = decimal.NewFromFloat(0.01)

type LineRequest struct {
	ProductID string `json:"id"`
	Quantity  int    `json:"quantity"`
	// Price and Name are what the client observed at cart-build time. They
	// are accepted for wire compatibility but the persisted snapshot always
	// comes from the product row read inside the transaction.
	Price decimal.Decimal `json:"price"`
	Name  string          `json:"name,omitempty"`
}

type Request struct {
	CashierID string          `json:"cashier_id"`
	Items     []LineRequest   `json:"items"`
	Total     decimal.Decimal `json:"total"`
}

// Engine records sales. Each checkout runs as a single transaction: the sale
// header, every line item, and every stock decrement commit together or not
// at all.
type Engine struct {
	db *sql.DB
}

func NewEngine(db *sql.DB) *Engine {
	return &Engine{db: db}
}

// Checkout validates the request, decrements stock, and persists the sale.
// The per-line decrement is a conditional update: concurrent checkouts of the
// same product serialize on the row lock, and the loser fails the
// quantity >= n predicate instead of observing stale stock.
func (e *Engine) Checkout(ctx context.Context, req Request) (*domain.Sale, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin checkout transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	sale := &domain.Sale{
		ID:        uuid.New().String(),
		CashierID: req.CashierID,
		Total:     req.Total,
		CreatedAt: time.Now().UTC(),
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sales (id, cashier_id, total, created_at)
		VALUES ($1, $2, $3, $4)
	`, sale.ID, sale.CashierID, sale.Total, sale.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return nil, fmt.Errorf("%w: unknown cashier %s", ErrInvalidRequest, req.CashierID)
		}
		return nil, fmt.Errorf("insert sale: %w", err)
	}

	computed := decimal.Zero

	for i, line := range req.Items {
		var name string
		var price decimal.Decimal

		err := tx.QueryRowContext(ctx, `
			UPDATE products
			SET quantity = quantity - $2
			WHERE id = $1 AND quantity >= $2
			RETURNING name, price
		`, line.ProductID, line.Quantity).Scan(&name, &price)
		if err == sql.ErrNoRows {
			return nil, e.stockFailure(ctx, tx, line)
		}
		if err != nil {
			return nil, fmt.Errorf("decrement stock for product %s: %w", line.ProductID, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO sale_items (id, sale_id, product_id, line_no, name, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, uuid.New().String(), sale.ID, line.ProductID, i+1, name, line.Quantity, price)
		if err != nil {
			return nil, fmt.Errorf("insert sale item: %w", err)
		}

		sale.Items = append(sale.Items, domain.SaleItem{
			ProductID: line.ProductID,
			Name:      name,
			Quantity:  line.Quantity,
			UnitPrice: price,
		})
		computed = computed.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	if computed.Sub(req.Total).Abs().GreaterThan(totalTolerance) {
		return nil, &TotalMismatchError{Declared: req.Total, Computed: computed}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit checkout: %w", err)
	}

	return sale, nil
}

// stockFailure distinguishes a missing product from an out-of-stock one after
// the conditional update matched no row. Read within the same transaction so
// the answer is consistent with what the update saw.
func (e *Engine) stockFailure(ctx context.Context, tx *sql.Tx, line LineRequest) error {
	var name string
	var available int

	err := tx.QueryRowContext(ctx, `
		SELECT name, quantity FROM products WHERE id = $1
	`, line.ProductID).Scan(&name, &available)
	if err == sql.ErrNoRows {
		return &ProductNotFoundError{ProductID: line.ProductID}
	}
	if err != nil {
		return fmt.Errorf("inspect stock for product %s: %w", line.ProductID, err)
	}

	return &InsufficientStockError{
		ProductID: line.ProductID,
		Name:      name,
		Requested: line.Quantity,
		Available: available,
	}
}

func validate(req Request) error {
	if _, err := uuid.Parse(req.CashierID); err != nil {
		return fmt.Errorf("%w: malformed cashier id", ErrInvalidRequest)
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: empty item list", ErrInvalidRequest)
	}
	if req.Total.IsNegative() {
		return fmt.Errorf("%w: negative total", ErrInvalidRequest)
	}
	for _, line := range req.Items {
		if _, err := uuid.Parse(line.ProductID); err != nil {
			return fmt.Errorf("%w: malformed product id %q", ErrInvalidRequest, line.ProductID)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be positive for product %s", ErrInvalidRequest, line.ProductID)
		}
	}
	return nil
}
