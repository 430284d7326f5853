package languages

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/crucible-dev/crucible/internal/core/ports/primary"
	"github.com/crucible-dev/crucible/internal/core/services/language"
	"github.com/crucible-dev/crucible/internal/handlers/response"
)

const defaultSampleSize = 25

// LanguageHandler handles language catalog API requests
type LanguageHandler struct {
	resolver language.ILanguageResolver
	logger   primary.Logger
}

// NewLanguageHandler creates a new language handler
func NewLanguageHandler(resolver language.ILanguageResolver, logger primary.Logger) *LanguageHandler {
	return &LanguageHandler{
		resolver: resolver,
		logger:   logger,
	}
}

// RegisterRoutes registers the API routes for LanguageHandler
func (h *LanguageHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/languages", h.GetLanguages).Methods("GET")
}

// GetLanguages returns a sample of language names the backend supports
func (h *LanguageHandler) GetLanguages(w http.ResponseWriter, r *http.Request) {
	names := h.resolver.CatalogSample(r.Context(), defaultSampleSize)
	response.WriteSuccess(w, map[string][]string{"languages": names})
}
