package sales

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/openretail/pos/internal/domain"
)

type Store interface {
	List(ctx context.Context) ([]domain.Sale, error)
	ItemsBySale(ctx context.Context, saleID string) ([]domain.SaleItem, error)
}

type Handler struct {
	store  Store
	logger *slog.Logger
}

func NewHandler(store Store, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	salesList, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list sales", "error", err)
		h.writeFailure(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, salesList)
}

func (h *Handler) HandleItems(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		h.writeFailure(w, http.StatusNotFound, ErrSaleNotFound.Error())
		return
	}

	items, err := h.store.ItemsBySale(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrSaleNotFound) {
			h.writeFailure(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("failed to list sale items", "error", err, "sale_id", id)
		h.writeFailure(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, items)
}

func (h *Handler) writeFailure(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]any{"success": false, "message": message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
