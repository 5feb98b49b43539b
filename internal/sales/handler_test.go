package sales

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openretail/pos/internal/domain"
)

type fakeStore struct {
	sales []domain.Sale
	items map[string][]domain.SaleItem
}

func (f *fakeStore) List(context.Context) ([]domain.Sale, error) {
	return f.sales, nil
}

func (f *fakeStore) ItemsBySale(_ context.Context, saleID string) ([]domain.SaleItem, error) {
	items, ok := f.items[saleID]
	if !ok {
		return nil, ErrSaleNotFound
	}
	return items, nil
}

func newMux(store Store) *http.ServeMux {
	handler := NewHandler(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	mux := http.NewServeMux()
	mux.HandleFunc("GET /sales", handler.HandleList)
	mux.HandleFunc("GET /sales/{id}", handler.HandleItems)
	return mux
}

func TestHandleList(t *testing.T) {
	store := &fakeStore{sales: []domain.Sale{
		{ID: "s1", CashierID: "u1", Cashier: "cashier", Total: decimal.NewFromFloat(3.40), CreatedAt: time.Now().UTC()},
	}}
	mux := newMux(store)

	req := httptest.NewRequest(http.MethodGet, "/sales", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var got []domain.Sale
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(got) != 1 || got[0].Cashier != "cashier" {
		t.Errorf("unexpected sales: %+v", got)
	}
}

func TestHandleItems(t *testing.T) {
	t.Run("returns items of a sale", func(t *testing.T) {
		saleID := uuid.New().String()
		store := &fakeStore{items: map[string][]domain.SaleItem{
			saleID: {
				{ProductID: "p1", Name: "Apple", Quantity: 2, UnitPrice: decimal.NewFromFloat(0.50)},
			},
		}}
		mux := newMux(store)

		req := httptest.NewRequest(http.MethodGet, "/sales/"+saleID, nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}

		var got []domain.SaleItem
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(got) != 1 || got[0].Name != "Apple" || got[0].Quantity != 2 {
			t.Errorf("unexpected items: %+v", got)
		}
	})

	t.Run("returns 404 for unknown sale", func(t *testing.T) {
		mux := newMux(&fakeStore{items: map[string][]domain.SaleItem{}})

		req := httptest.NewRequest(http.MethodGet, "/sales/"+uuid.New().String(), nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})
}
