package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItem snapshots the product's name and price at sale time, so later
// product edits never alter historical receipts.
type SaleItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Sale is immutable once recorded. Cashier is the username joined in for
// listings; only CashierID is persisted on the row itself.
type Sale struct {
	ID        string          `json:"id"`
	CashierID string          `json:"cashier_id"`
	Cashier   string          `json:"cashier,omitempty"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	Items     []SaleItem      `json:"items,omitempty"`
}
