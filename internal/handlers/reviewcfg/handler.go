package reviewcfg

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/crucible-dev/crucible/internal/core/ports/primary"
	"github.com/crucible-dev/crucible/internal/core/services/review"
	"github.com/crucible-dev/crucible/internal/handlers/response"
	"github.com/crucible-dev/crucible/internal/static/errs"
)

// ReviewConfigHandler handles review destination API requests
type ReviewConfigHandler struct {
	reviewService review.IReviewConfigService
	logger        primary.Logger
}

// NewReviewConfigHandler creates a new review config handler
func NewReviewConfigHandler(reviewService review.IReviewConfigService, logger primary.Logger) *ReviewConfigHandler {
	return &ReviewConfigHandler{
		reviewService: reviewService,
		logger:        logger,
	}
}

// RegisterRoutes registers the API routes for ReviewConfigHandler
func (h *ReviewConfigHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/contexts/{contextId}/review-destination", h.GetDestination).Methods("GET")
	router.HandleFunc("/contexts/{contextId}/review-destination", h.SetDestination).Methods("PUT")
}

// SetDestinationRequest represents a request to configure where outcomes
// for a context are published
type SetDestinationRequest struct {
	DestinationID string `json:"destinationId"`
}

// GetDestination returns the configured review destination, 404 if unset
func (h *ReviewConfigHandler) GetDestination(w http.ResponseWriter, r *http.Request) {
	contextID := mux.Vars(r)["contextId"]

	destinationID, err := h.reviewService.GetDestination(r.Context(), contextID)
	if err != nil {
		h.logger.Error("Failed to get review destination", "error", err)
		http.Error(w, "Failed to get review destination", http.StatusInternalServerError)
		return
	}

	if destinationID == "" {
		http.Error(w, "No review destination configured", http.StatusNotFound)
		return
	}

	response.WriteSuccess(w, map[string]string{"destinationId": destinationID})
}

// SetDestination configures the review destination for a context
func (h *ReviewConfigHandler) SetDestination(w http.ResponseWriter, r *http.Request) {
	contextID := mux.Vars(r)["contextId"]

	var req SetDestinationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if err := h.reviewService.SetDestination(r.Context(), contextID, req.DestinationID); err != nil {
		if errors.Is(err, errs.ErrInvalidReviewDestination) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("Failed to set review destination", "error", err)
		http.Error(w, "Failed to set review destination", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
