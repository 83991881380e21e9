package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"varmatch/internal/batch"
	"varmatch/internal/logger"
	"varmatch/internal/match"
	"varmatch/internal/request"
	"varmatch/internal/vocab"
)

const maxBodyBytes = 1 << 20

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

type ReconcileHandler struct {
	matcher         *match.Matcher
	runner          *batch.Runner
	limits          request.Limits
	maxBatchEntries int
	log             *logger.Logger
}

func NewReconcileHandler(
	matcher *match.Matcher,
	runner *batch.Runner,
	limits request.Limits,
	maxBatchEntries int,
	log *logger.Logger,
) *ReconcileHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ReconcileHandler{
		matcher:         matcher,
		runner:          runner,
		limits:          limits,
		maxBatchEntries: maxBatchEntries,
		log:             log,
	}
}

type reconcileResponse struct {
	Matches match.CandidateList `json:"matches"`
}

type batchRequest struct {
	Requests []request.Raw `json:"requests"`
}

type batchResponse struct {
	Results []batch.Result `json:"results"`
}

// Reconcile handles POST /api/variables/reconcile.
func (h *ReconcileHandler) Reconcile(c *gin.Context) {
	raw, ok := readBody(c)
	if !ok {
		return
	}

	req, diags, err := request.Decode(raw, h.limits)
	if err != nil {
		respondRequestError(c, err)
		return
	}
	log := h.log.With("request_id", c.GetString(requestIDKey))
	for _, w := range diags.Warnings {
		log.Debug("request warning", "warning", w.String())
	}

	matches := h.matcher.Reconcile(req.ExtractedVariables, req.UserPreferences)
	log.Debug("reconciled",
		"placeholders", len(req.ExtractedVariables),
		"preferences", len(req.UserPreferences),
		"matches", len(matches),
	)

	RespondOK(c, reconcileResponse{Matches: matches})
}

// ReconcileBatch handles POST /api/variables/reconcile/batch.
func (h *ReconcileHandler) ReconcileBatch(c *gin.Context) {
	raw, ok := readBody(c)
	if !ok {
		return
	}

	var env batchRequest
	if err := json.Unmarshal(raw, &env); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request",
			fmt.Errorf("body must be an object with a requests array: %w", err))
		return
	}
	if h.maxBatchEntries > 0 && len(env.Requests) > h.maxBatchEntries {
		RespondError(c, http.StatusRequestEntityTooLarge, "limit_exceeded",
			&request.LimitError{Field: "requests", Limit: h.maxBatchEntries, Got: len(env.Requests)})
		return
	}

	reqs := make([]request.Request, 0, len(env.Requests))
	for i, r := range env.Requests {
		req, _, err := request.FromRaw(r, h.limits)
		if err != nil {
			respondRequestError(c, fmt.Errorf("requests[%d]: %w", i, err))
			return
		}
		reqs = append(reqs, req)
	}

	results, err := h.runner.Run(c.Request.Context(), reqs)
	if err != nil {
		RespondError(c, http.StatusServiceUnavailable, "cancelled", err)
		return
	}

	RespondOK(c, batchResponse{Results: results})
}

func readBody(c *gin.Context) ([]byte, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return nil, false
	}
	if len(raw) == 0 {
		RespondError(c, http.StatusBadRequest, "empty_body", nil)
		return nil, false
	}
	return raw, true
}

func respondRequestError(c *gin.Context, err error) {
	switch {
	case request.IsLimitError(err):
		RespondError(c, http.StatusRequestEntityTooLarge, "limit_exceeded", err)
	case request.IsValidationError(err):
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}

type ConceptsHandler struct {
	vocab *vocab.Vocabulary
}

func NewConceptsHandler(v *vocab.Vocabulary) *ConceptsHandler {
	return &ConceptsHandler{vocab: v}
}

type conceptsResponse struct {
	Concepts []match.Concept `json:"concepts"`
}

// ListConcepts handles GET /api/concepts.
func (h *ConceptsHandler) ListConcepts(c *gin.Context) {
	concepts := h.vocab.Concepts()
	if concepts == nil {
		concepts = []match.Concept{}
	}
	RespondOK(c, conceptsResponse{Concepts: concepts})
}
