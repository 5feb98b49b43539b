package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/openretail/pos/internal/domain"
)

type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type Handler struct {
	store  UserStore
	logger *slog.Logger
}

func NewHandler(store UserStore, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user,omitempty"`
	Message string       `json:"message,omitempty"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, loginResponse{Success: false, Message: "invalid request body"})
		return
	}

	user, err := h.store.GetByUsername(r.Context(), req.Username)
	if err != nil {
		h.logger.Error("failed to look up user", "error", err, "username", req.Username)
		h.writeJSON(w, http.StatusInternalServerError, loginResponse{Success: false, Message: "internal server error"})
		return
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		h.writeJSON(w, http.StatusUnauthorized, loginResponse{Success: false, Message: "invalid credentials"})
		return
	}

	h.logger.Info("user logged in", "user_id", user.ID, "role", user.Role)
	h.writeJSON(w, http.StatusOK, loginResponse{Success: true, User: user})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
