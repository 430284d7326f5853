package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/crucible-dev/crucible/internal/core/ports/primary"
	"github.com/crucible-dev/crucible/internal/handlers/response"
)

const tokenTTL = 24 * time.Hour

// Handler issues bearer tokens for API callers. There is no account
// subsystem; callers bring their own stable identity string.
type Handler struct {
	tokenService primary.TokenService
	logger       primary.Logger
}

func NewHandler(tokenService primary.TokenService, logger primary.Logger) *Handler {
	return &Handler{
		tokenService: tokenService,
		logger:       logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/token", h.IssueToken).Methods("POST")
}

// TokenRequest represents a request for a bearer token
type TokenRequest struct {
	Subject string `json:"subject"`
}

// TokenResponse carries the issued token
type TokenResponse struct {
	Token string `json:"token"`
}

// IssueToken creates a signed token for the requested subject
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.Subject == "" {
		http.Error(w, "subject is required", http.StatusBadRequest)
		return
	}

	token, err := h.tokenService.IssueToken(r.Context(), req.Subject, tokenTTL)
	if err != nil {
		h.logger.Error("Failed to issue token", "error", err)
		http.Error(w, "Failed to issue token", http.StatusInternalServerError)
		return
	}

	response.WriteSuccess(w, TokenResponse{Token: token})
}
