package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/openretail/pos/internal/domain"
	"github.com/openretail/pos/internal/messaging"
)

// Service is implemented by *Engine.
type Service interface {
	Checkout(ctx context.Context, req Request) (*domain.Sale, error)
}

type Handler struct {
	svc      Service
	producer *messaging.Producer
	logger   *slog.Logger

	salesRecorded metric.Int64Counter
	rejected      metric.Int64Counter
}

func NewHandler(svc Service, producer *messaging.Producer, logger *slog.Logger) (*Handler, error) {
	meter := otel.Meter("pos/checkout")

	salesRecorded, err := meter.Int64Counter("pos.checkout.sales_recorded",
		metric.WithDescription("Number of successfully recorded sales"))
	if err != nil {
		return nil, err
	}

	rejected, err := meter.Int64Counter("pos.checkout.rejected",
		metric.WithDescription("Number of checkouts rejected by validation or stock rules"))
	if err != nil {
		return nil, err
	}

	return &Handler{
		svc:           svc,
		producer:      producer,
		logger:        logger,
		salesRecorded: salesRecorded,
		rejected:      rejected,
	}, nil
}

type checkoutResponse struct {
	Success bool   `json:"success"`
	SaleID  string `json:"sale_id,omitempty"`
	Message string `json:"message,omitempty"`
}

func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sale, err := h.svc.Checkout(r.Context(), req)
	if err != nil {
		h.handleCheckoutError(w, r, err)
		return
	}

	h.salesRecorded.Add(r.Context(), 1)

	if h.producer != nil {
		event := domain.SaleRecordedEvent{
			SaleID:    sale.ID,
			CashierID: sale.CashierID,
			Total:     sale.Total,
			Items:     sale.Items,
			Timestamp: sale.CreatedAt,
		}
		if err := h.producer.Publish(r.Context(), sale.ID, event); err != nil {
			h.logger.Error("failed to publish sale recorded event", "error", err, "sale_id", sale.ID)
		}
	}

	h.logger.Info("sale recorded", "sale_id", sale.ID, "cashier_id", sale.CashierID, "items", len(sale.Items))
	h.writeJSON(w, http.StatusOK, checkoutResponse{Success: true, SaleID: sale.ID})
}

func (h *Handler) handleCheckoutError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		stockErr    *InsufficientStockError
		notFoundErr *ProductNotFoundError
		totalErr    *TotalMismatchError
	)

	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.As(err, &stockErr),
		errors.As(err, &notFoundErr),
		errors.As(err, &totalErr):
		h.rejected.Add(r.Context(), 1)
		h.logger.Info("checkout rejected", "reason", err.Error())
		h.writeFailure(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("checkout failed", "error", err)
		h.writeFailure(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) writeFailure(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, checkoutResponse{Success: false, Message: message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
