package auth

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/openretail/pos/internal/domain"
)

type fakeUserStore struct {
	users map[string]*domain.User
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return f.users[username], nil
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	store := &fakeUserStore{users: map[string]*domain.User{
		"admin": {ID: "u1", Username: "admin", PasswordHash: string(hash), Role: domain.RoleAdmin},
	}}
	return NewHandler(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHandleLogin(t *testing.T) {
	t.Run("accepts valid credentials", func(t *testing.T) {
		handler := newTestHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"admin","password":"admin123"}`))
		rec := httptest.NewRecorder()

		handler.HandleLogin(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp loginResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if !resp.Success || resp.User == nil || resp.User.Role != domain.RoleAdmin {
			t.Errorf("unexpected response: %+v", resp)
		}
		if strings.Contains(rec.Body.String(), "password") {
			t.Error("password hash leaked in response")
		}
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		handler := newTestHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"admin","password":"wrong"}`))
		rec := httptest.NewRecorder()

		handler.HandleLogin(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", rec.Code)
		}
	})

	t.Run("rejects unknown user", func(t *testing.T) {
		handler := newTestHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"ghost","password":"admin123"}`))
		rec := httptest.NewRecorder()

		handler.HandleLogin(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", rec.Code)
		}
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		handler := newTestHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{broken`))
		rec := httptest.NewRecorder()

		handler.HandleLogin(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})
}
