package submissions

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/crucible-dev/crucible/internal/core/ports/primary"
	"github.com/crucible-dev/crucible/internal/core/services/pipeline"
	"github.com/crucible-dev/crucible/internal/core/services/vote"
	"github.com/crucible-dev/crucible/internal/handlers"
	"github.com/crucible-dev/crucible/internal/handlers/response"
	"github.com/crucible-dev/crucible/internal/static/errs"
)

// SubmissionHandler handles submission API requests
type SubmissionHandler struct {
	pipelineService pipeline.ISubmissionPipeline
	voteService     vote.IVoteService
	logger          primary.Logger
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(
	pipelineService pipeline.ISubmissionPipeline,
	voteService vote.IVoteService,
	logger primary.Logger,
) *SubmissionHandler {
	return &SubmissionHandler{
		pipelineService: pipelineService,
		voteService:     voteService,
		logger:          logger,
	}
}

// RegisterRoutes registers the API routes for SubmissionHandler. The
// router passed in is the authenticated /api subrouter.
func (h *SubmissionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/submissions", h.CreateSubmission).Methods("POST")
	router.HandleFunc("/submissions/{submissionId}", h.GetSubmission).Methods("GET")
	router.HandleFunc("/submissions/{submissionId}/votes", h.CastVote).Methods("POST")
}

// CreateSubmission runs a submission through the full pipeline and returns
// its terminal outcome
func (h *SubmissionHandler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	var req CreateSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.ContextID == "" || req.Language == "" || req.Code == "" {
		http.Error(w, "contextId, language and code are required", http.StatusBadRequest)
		return
	}

	outcome, err := h.pipelineService.Submit(r.Context(), pipeline.SubmissionIntake{
		ContextID:    req.ContextID,
		SubmitterID:  handlers.SubjectFromContext(r.Context()),
		Language:     req.Language,
		Code:         req.Code,
		Dependencies: req.Dependencies,
	})
	if err != nil {
		if errors.Is(err, errs.ErrCodeTooLong) {
			response.WriteError(w, response.ErrorMessage{
				Message:    err.Error(),
				StatusCode: http.StatusRequestEntityTooLarge,
			})
			return
		}
		h.logger.Error("Failed to process submission", "error", err)
		http.Error(w, "Failed to process submission", http.StatusInternalServerError)
		return
	}

	response.WriteJSON(w, http.StatusCreated, outcome)
}

// GetSubmission handles submission retrieval requests
func (h *SubmissionHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	submissionIDStr := vars["submissionId"]

	submissionID, err := uuid.Parse(submissionIDStr)
	if err != nil {
		h.logger.Error("Invalid submission ID", "id", submissionIDStr)
		http.Error(w, "Invalid submission ID", http.StatusBadRequest)
		return
	}

	submission, err := h.pipelineService.GetSubmission(r.Context(), submissionID)
	if err != nil {
		h.logger.Error("Failed to get submission", "error", err)
		http.Error(w, "Failed to get submission", http.StatusInternalServerError)
		return
	}

	if submission == nil {
		http.Error(w, "Submission not found", http.StatusNotFound)
		return
	}

	tally, err := h.voteService.GetTally(r.Context(), submissionID)
	if err != nil {
		h.logger.Error("Failed to get vote tally", "error", err)
		http.Error(w, "Failed to get vote tally", http.StatusInternalServerError)
		return
	}

	response.WriteSuccess(w, SubmissionResponse{
		Submission: submission,
		Votes:      tally,
	})
}

// CastVote handles vote requests; re-voting overwrites the voter's previous
// direction
func (h *SubmissionHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	submissionIDStr := vars["submissionId"]

	submissionID, err := uuid.Parse(submissionIDStr)
	if err != nil {
		h.logger.Error("Invalid submission ID", "id", submissionIDStr)
		http.Error(w, "Invalid submission ID", http.StatusBadRequest)
		return
	}

	var req CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	tally, err := h.voteService.CastVote(r.Context(), submissionID, handlers.SubjectFromContext(r.Context()), req.Direction)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidVoteDirection):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, errs.ErrSubmissionNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			h.logger.Error("Failed to cast vote", "error", err)
			http.Error(w, "Failed to cast vote", http.StatusInternalServerError)
		}
		return
	}

	response.WriteSuccess(w, tally)
}
