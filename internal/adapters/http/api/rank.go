package api

import (
	"net/http"

	"github.com/okian/resumeguide/internal/domain/model"
)

// RankHandler handles batch ranking requests.
type RankHandler struct {
	deps  RankDependencies
	limit int64
}

// NewRankHandler creates a new rank handler.
func NewRankHandler(deps RankDependencies, limit int64) *RankHandler {
	return &RankHandler{deps: deps, limit: limit}
}

type postingRequest struct {
	ID          string `json:"id" validate:"max=128"`
	Title       string `json:"title" validate:"max=256"`
	Description string `json:"description"`
}

type rankRequest struct {
	Resume   string           `json:"resume"`
	Postings []postingRequest `json:"postings" validate:"required,min=1,dive"`
}

type rankResponse struct {
	Entries []Entry `json:"entries"`
}

// HandlePostRank handles POST /v1/rank requests.
func (h *RankHandler) HandlePostRank(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_rank"
	if !allowMethod(w, r, op, http.MethodPost) {
		return
	}
	var req rankRequest
	if err := decodeJSON(w, r, op, h.limit, &req); err != nil {
		writeFailure(w, err)
		return
	}

	postings := make([]model.Posting, len(req.Postings))
	for i, p := range req.Postings {
		postings[i] = model.Posting{ID: p.ID, Title: p.Title, Description: p.Description}
	}
	entries, err := h.deps.Rank(r.Context(), req.Resume, postings)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rankResponse{Entries: entries})
}
