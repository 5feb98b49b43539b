package products

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
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, id string, p *domain.Product) error
	Delete(ctx context.Context, id string) error
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

type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list products", "error", err)
		h.writeFailure(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, products)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var p domain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		h.writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msg, ok := invalidProduct(&p); ok {
		h.writeFailure(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.store.Create(r.Context(), &p); err != nil {
		if errors.Is(err, ErrBarcodeTaken) {
			h.writeFailure(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to create product", "error", err)
		h.writeFailure(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("product created", "product_id", p.ID, "barcode", p.Barcode)
	h.writeJSON(w, http.StatusOK, statusResponse{Success: true})
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		h.writeFailure(w, http.StatusBadRequest, "malformed product id")
		return
	}

	var p domain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		h.writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msg, ok := invalidProduct(&p); ok {
		h.writeFailure(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.store.Update(r.Context(), id, &p); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			h.writeFailure(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrBarcodeTaken):
			h.writeFailure(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("failed to update product", "error", err, "product_id", id)
			h.writeFailure(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.logger.Info("product updated", "product_id", id)
	h.writeJSON(w, http.StatusOK, statusResponse{Success: true})
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		h.writeFailure(w, http.StatusBadRequest, "malformed product id")
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			h.writeFailure(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrProductInUse):
			h.writeFailure(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("failed to delete product", "error", err, "product_id", id)
			h.writeFailure(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.logger.Info("product deleted", "product_id", id)
	h.writeJSON(w, http.StatusOK, statusResponse{Success: true})
}

func invalidProduct(p *domain.Product) (string, bool) {
	switch {
	case p.Name == "":
		return "name is required", true
	case p.Barcode == "":
		return "barcode is required", true
	case p.Price.IsNegative():
		return "price must not be negative", true
	case p.Quantity < 0:
		return "quantity must not be negative", true
	}
	return "", false
}

func (h *Handler) writeFailure(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, statusResponse{Success: false, Message: message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
