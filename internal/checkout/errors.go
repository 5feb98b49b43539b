package checkout

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidRequest marks caller mistakes: empty carts, non-positive
// quantities, malformed identifiers. Wrapped with the specific reason.
var ErrInvalidRequest = errors.New("invalid checkout request")

type InsufficientStockError struct {
	ProductID string
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", e.Name, e.Requested, e.Available)
}

type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

type TotalMismatchError struct {
	Declared decimal.Decimal
	Computed decimal.Decimal
}

func (e *TotalMismatchError) Error() string {
	return fmt.Sprintf("declared total %s does not match computed total %s", e.Declared, e.Computed)
}
