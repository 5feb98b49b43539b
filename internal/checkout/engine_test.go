package checkout

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() Request {
	return Request{
		CashierID: uuid.New().String(),
		Items: []LineRequest{
			{ProductID: uuid.New().String(), Quantity: 2, Price: decimal.NewFromFloat(0.50)},
		},
		Total: decimal.NewFromFloat(1.00),
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validate(validRequest()))
}

func TestValidate_EmptyItems(t *testing.T) {
	req := validRequest()
	req.Items = nil

	err := validate(req)

	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.Contains(t, err.Error(), "empty item list")
}

func TestValidate_NonPositiveQuantity(t *testing.T) {
	for _, qty := range []int{0, -1} {
		req := validRequest()
		req.Items[0].Quantity = qty

		err := validate(req)

		require.ErrorIs(t, err, ErrInvalidRequest)
		assert.Contains(t, err.Error(), "quantity must be positive")
	}
}

func TestValidate_MalformedCashierID(t *testing.T) {
	req := validRequest()
	req.CashierID = "not-a-uuid"

	require.ErrorIs(t, validate(req), ErrInvalidRequest)
}

func TestValidate_MalformedProductID(t *testing.T) {
	req := validRequest()
	req.Items[0].ProductID = "42"

	require.ErrorIs(t, validate(req), ErrInvalidRequest)
}

func TestValidate_NegativeTotal(t *testing.T) {
	req := validRequest()
	req.Total = decimal.NewFromFloat(-0.01)

	err := validate(req)

	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.Contains(t, err.Error(), "negative total")
}

func TestInsufficientStockError_NamesProduct(t *testing.T) {
	err := &InsufficientStockError{ProductID: "p1", Name: "Milk", Requested: 3, Available: 1}

	assert.Contains(t, err.Error(), "Milk")
	assert.Contains(t, err.Error(), "requested 3")
	assert.Contains(t, err.Error(), "available 1")
}

func TestTotalMismatchError_ShowsBothTotals(t *testing.T) {
	err := &TotalMismatchError{
		Declared: decimal.NewFromFloat(5.00),
		Computed: decimal.NewFromFloat(4.50),
	}

	assert.Contains(t, err.Error(), "5")
	assert.Contains(t, err.Error(), "4.5")
}
