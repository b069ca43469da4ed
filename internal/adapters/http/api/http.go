// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/okian/resumeguide/internal/adapters/extract"
	"github.com/okian/resumeguide/internal/domain/catalog"
	"github.com/okian/resumeguide/internal/domain/model"
	"github.com/okian/resumeguide/internal/domain/rank"
	"github.com/okian/resumeguide/internal/domain/similarity"
	"github.com/okian/resumeguide/internal/domain/types"
	"github.com/okian/resumeguide/pkg/logger"
)

// Default request limits.
const (
	defaultMaxBodyBytes   = 1 << 20
	defaultMaxUploadBytes = 10 << 20
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	RolesDependencies
	ScoreDependencies
	RecommendDependencies
	ReportDependencies
	RankDependencies
	ExtractDependencies
}

// Entry mirrors the shape returned by rank queries.
type Entry = types.Entry

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMaxBodyBytes caps JSON request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithMaxUploadBytes caps multipart uploads on /v1/extract.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxUploadBytes = n
		}
	}
}

// WithLogger sets the logger used for request and error logging.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// Server wires HTTP routes for the business API.
type Server struct {
	maxBodyBytes   int64
	maxUploadBytes int64
	logger         logger.Logger

	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	metricsHandler   http.Handler
	rolesHandler     *RolesHandler
	scoreHandler     *ScoreHandler
	recommendHandler *RecommendHandler
	reportHandler    *ReportHandler
	rankHandler      *RankHandler
	extractHandler   *ExtractHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		maxBodyBytes:   defaultMaxBodyBytes,
		maxUploadBytes: defaultMaxUploadBytes,
		logger:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.metricsHandler = NewMetricsHandler()
	s.rolesHandler = NewRolesHandler(deps)
	s.scoreHandler = NewScoreHandler(deps, s.maxBodyBytes)
	s.recommendHandler = NewRecommendHandler(deps, s.maxBodyBytes)
	s.reportHandler = NewReportHandler(deps, s.maxBodyBytes)
	s.rankHandler = NewRankHandler(deps, s.maxBodyBytes)
	s.extractHandler = NewExtractHandler(deps, s.maxUploadBytes)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/healthz", s.wrap(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/stats", s.wrap(s.statsHandler.HandleStats, "stats"))
	mux.Handle("/metrics", s.metricsHandler)
	mux.Handle("/v1/roles", s.wrap(s.rolesHandler.HandleGetRoles, "roles"))
	mux.Handle("/v1/score", s.wrap(s.scoreHandler.HandlePostScore, "score"))
	mux.Handle("/v1/recommend", s.wrap(s.recommendHandler.HandlePostRecommend, "recommend"))
	mux.Handle("/v1/report", s.wrap(s.reportHandler.HandlePostReport, "report"))
	mux.Handle("/v1/rank", s.wrap(s.rankHandler.HandlePostRank, "rank"))
	mux.Handle("/v1/extract", s.wrap(s.extractHandler.HandlePostExtract, "extract"))
}

func (s *Server) wrap(h http.HandlerFunc, endpoint string) http.Handler {
	return RequestIDMiddleware(LoggingMiddleware(s.logger, MetricsMiddleware(h, endpoint)))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // validator caches struct metadata

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps an error from a dependency or from request decoding
// onto a status code and error code.
func writeFailure(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge), errors.Is(err, ErrTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "too_large", err)
	case errors.Is(err, ErrMethod):
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", err)
	case errors.Is(err, catalog.ErrUnknownRole):
		writeError(w, http.StatusBadRequest, "unknown_role", err)
	case errors.Is(err, ErrUnsupportedMedia), errors.Is(err, extract.ErrUnsupportedType):
		writeError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", err)
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, rank.ErrTooManyPostings),
		errors.Is(err, extract.ErrEmptyDocument),
		errors.Is(err, extract.ErrExtract):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// allowMethod writes 405 and returns false when r does not use method.
func allowMethod(w http.ResponseWriter, r *http.Request, op, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeFailure(w, NewKind(op, ErrMethod))
	return false
}

// decodeJSON reads a size-limited JSON body into dst and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, op string, limit int64, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	dec := json.NewDecoder(r.Body)
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return WrapKind(op, ErrTooLarge, err)
		}
		return WrapKind(op, ErrBadRequest, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return WrapKind(op, ErrBadRequest, errors.New("trailing data after JSON body"))
	}
	// A literal null would leave dst untouched and slip past validation.
	if bytes.Equal(raw, []byte("null")) {
		return WrapKind(op, ErrBadRequest, errors.New("JSON body must be an object"))
	}
	body := json.NewDecoder(bytes.NewReader(raw))
	body.DisallowUnknownFields()
	if err := body.Decode(dst); err != nil {
		return WrapKind(op, ErrBadRequest, err)
	}
	if err := validate.Struct(dst); err != nil {
		return WrapKind(op, ErrBadRequest, err)
	}
	return nil
}

// RolesDependencies exposes the skill catalog.
type RolesDependencies interface {
	Roles(ctx context.Context) []types.RoleSkills
}

// ScoreDependencies compares a resume with a job description.
type ScoreDependencies interface {
	Compare(ctx context.Context, resume, jobDescription string) similarity.Comparison
}

// RecommendDependencies lists missing skills for a role.
type RecommendDependencies interface {
	Recommend(ctx context.Context, role, skills string) ([]string, error)
}

// ReportDependencies builds a full resume report.
type ReportDependencies interface {
	Report(ctx context.Context, p model.Profile) (model.Report, error)
}

// RankDependencies ranks postings against a resume.
type RankDependencies interface {
	Rank(ctx context.Context, resume string, postings []model.Posting) ([]types.Entry, error)
}

// ExtractDependencies pulls text out of uploaded documents.
type ExtractDependencies interface {
	Extract(ctx context.Context, data []byte, filename string) (string, extract.Kind, error)
}
