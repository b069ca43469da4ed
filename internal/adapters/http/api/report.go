package api

import (
	"net/http"

	"github.com/okian/resumeguide/internal/domain/model"
)

const msgReportAligned = "Your skills already match the role well"

// ReportHandler handles full resume report requests.
type ReportHandler struct {
	deps  ReportDependencies
	limit int64
}

// NewReportHandler creates a new report handler.
func NewReportHandler(deps ReportDependencies, limit int64) *ReportHandler {
	return &ReportHandler{deps: deps, limit: limit}
}

type reportRequest struct {
	Name           string `json:"name" validate:"max=200"`
	Role           string `json:"role" validate:"required"`
	Skills         string `json:"skills"`
	Projects       string `json:"projects"`
	JobDescription string `json:"job_description"`
}

type reportResponse struct {
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Skills      string   `json:"skills"`
	Projects    string   `json:"projects"`
	Suggestions []string `json:"suggestions"`
	Aligned     bool     `json:"aligned"`
	Message     string   `json:"message"`
	ATSScore    float64  `json:"ats_score"`
}

// HandlePostReport handles POST /v1/report requests.
func (h *ReportHandler) HandlePostReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_report"
	if !allowMethod(w, r, op, http.MethodPost) {
		return
	}
	var req reportRequest
	if err := decodeJSON(w, r, op, h.limit, &req); err != nil {
		writeFailure(w, err)
		return
	}

	rep, err := h.deps.Report(r.Context(), model.Profile{
		Name:           req.Name,
		Role:           req.Role,
		Skills:         req.Skills,
		Projects:       req.Projects,
		JobDescription: req.JobDescription,
	})
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}

	resp := reportResponse{
		Name:        rep.Name,
		Role:        rep.Role,
		Skills:      rep.Skills,
		Projects:    rep.Projects,
		Suggestions: rep.Suggestions,
		Aligned:     rep.Aligned(),
		Message:     msgMissing,
		ATSScore:    rep.ATSScore,
	}
	if resp.Aligned {
		resp.Message = msgReportAligned
	}
	writeJSON(w, http.StatusOK, resp)
}
