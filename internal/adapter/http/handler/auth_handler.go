package handler

import (
	"context"
	"net/http"

	"github.com/iho/splitnest/internal/adapter/http/dto"
)

// Authenticator defines the behavior needed by AuthHandler.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUC Authenticator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUC Authenticator) *AuthHandler {
	return &AuthHandler{authUC: authUC}
}

// Login checks the configured credentials and returns a session token.
// Unknown users and wrong passwords get the same response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	token, err := h.authUC.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		status := mapDomainError(err)
		if status == http.StatusUnauthorized {
			writeError(w, status, "invalid credentials", "")
			return
		}
		writeError(w, status, "failed to log in", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token:    token,
		Username: req.Username,
	})
}
