// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// recommendRequest mirrors the OpenAPI schema for POST /api/venues/recommend.
type recommendRequest struct {
	EventID string `json:"event_id"`
	TopN    int    `json:"top_n"`
}

func (r recommendRequest) validate(maxTopN int) error {
	switch {
	case strings.TrimSpace(r.EventID) == "":
		return errors.New("missing event_id")
	case r.TopN < 0:
		return errors.New("top_n must not be negative")
	case r.TopN > maxTopN:
		return fmt.Errorf("top_n must not exceed %d", maxTopN)
	}
	return nil
}

// RecommendHandler handles venue recommendation requests.
type RecommendHandler struct {
	deps    Dependencies
	maxTopN int
}

// NewRecommendHandler creates a new recommend handler.
func NewRecommendHandler(deps Dependencies, maxTopN int) *RecommendHandler {
	return &RecommendHandler{deps: deps, maxTopN: maxTopN}
}

// HandleRecommend handles POST /api/venues/recommend requests.
func (h *RecommendHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	const op = "api.recommend"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if err := req.validate(h.maxTopN); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	result, err := h.deps.Recommend(r.Context(), req.EventID, req.TopN)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, result)
}
