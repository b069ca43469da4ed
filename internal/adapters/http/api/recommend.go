package api

import (
	"net/http"
)

// Messages shown alongside recommendations.
const (
	msgAligned = "Your skill set is well aligned with this role"
	msgMissing = "Consider adding these skills to your resume"
)

// RecommendHandler handles skill gap requests.
type RecommendHandler struct {
	deps  RecommendDependencies
	limit int64
}

// NewRecommendHandler creates a new recommend handler.
func NewRecommendHandler(deps RecommendDependencies, limit int64) *RecommendHandler {
	return &RecommendHandler{deps: deps, limit: limit}
}

type recommendRequest struct {
	Role   string `json:"role" validate:"required"`
	Skills string `json:"skills"`
}

type recommendResponse struct {
	Role    string   `json:"role"`
	Missing []string `json:"missing"`
	Aligned bool     `json:"aligned"`
	Message string   `json:"message"`
}

// HandlePostRecommend handles POST /v1/recommend requests.
func (h *RecommendHandler) HandlePostRecommend(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_recommend"
	if !allowMethod(w, r, op, http.MethodPost) {
		return
	}
	var req recommendRequest
	if err := decodeJSON(w, r, op, h.limit, &req); err != nil {
		writeFailure(w, err)
		return
	}

	missing, err := h.deps.Recommend(r.Context(), req.Role, req.Skills)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}

	resp := recommendResponse{
		Role:    req.Role,
		Missing: missing,
		Aligned: len(missing) == 0,
		Message: msgMissing,
	}
	if resp.Aligned {
		resp.Message = msgAligned
	}
	writeJSON(w, http.StatusOK, resp)
}
