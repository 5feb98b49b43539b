package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type SaleRecordedEvent struct {
	SaleID    string          `json:"sale_id"`
	CashierID string          `json:"cashier_id"`
	Total     decimal.Decimal `json:"total"`
	Items     []SaleItem      `json:"items"`
	Timestamp time.Time       `json:"timestamp"`
}
