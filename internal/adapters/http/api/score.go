package api

import (
	"net/http"
)

// ScoreHandler handles resume scoring requests.
type ScoreHandler struct {
	deps  ScoreDependencies
	limit int64
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(deps ScoreDependencies, limit int64) *ScoreHandler {
	return &ScoreHandler{deps: deps, limit: limit}
}

// scoreRequest mirrors the OpenAPI schema for POST /v1/score. Both fields
// may be empty; an empty side scores 0.
type scoreRequest struct {
	Resume         string `json:"resume"`
	JobDescription string `json:"job_description"`
}

type scoreResponse struct {
	Score          float64  `json:"score"`
	SharedTerms    []string `json:"shared_terms"`
	VocabularySize int      `json:"vocabulary_size"`
}

// HandlePostScore handles POST /v1/score requests.
func (h *ScoreHandler) HandlePostScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_score"
	if !allowMethod(w, r, op, http.MethodPost) {
		return
	}
	var req scoreRequest
	if err := decodeJSON(w, r, op, h.limit, &req); err != nil {
		writeFailure(w, err)
		return
	}

	cmp := h.deps.Compare(r.Context(), req.Resume, req.JobDescription)
	writeJSON(w, http.StatusOK, scoreResponse{
		Score:          cmp.Score,
		SharedTerms:    cmp.SharedTerms,
		VocabularySize: cmp.VocabularySize,
	})
}
