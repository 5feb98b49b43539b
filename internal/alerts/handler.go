package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/openretail/pos/internal/domain"
)

// StockReader is satisfied by products.ProductRepository.
type StockReader interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

// Handler watches recorded sales and flags products whose stock fell to or
// below the threshold, so restocking can happen before the shelf is empty.
type Handler struct {
	store     StockReader
	threshold int
	logger    *slog.Logger
}

func NewHandler(store StockReader, threshold int, logger *slog.Logger) *Handler {
	return &Handler{
		store:     store,
		threshold: threshold,
		logger:    logger,
	}
}

func (h *Handler) Handle(ctx context.Context, payload []byte) error {
	var event domain.SaleRecordedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("unmarshal sale recorded event: %w", err)
	}

	h.logger.Info("processing sale recorded event", "sale_id", event.SaleID, "items", len(event.Items))

	for _, item := range event.Items {
		product, err := h.store.GetByID(ctx, item.ProductID)
		if err != nil {
			return fmt.Errorf("load product %s: %w", item.ProductID, err)
		}
		if product == nil {
			// Deleted since the sale; nothing to restock.
			continue
		}

		if product.Quantity <= h.threshold {
			h.logger.Warn("low stock",
				"product_id", product.ID,
				"name", product.Name,
				"quantity", product.Quantity,
				"threshold", h.threshold,
			)
		}
	}

	return nil
}
