// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/resumeguide/internal/adapters/extract"
	"github.com/okian/resumeguide/internal/domain/catalog"
	"github.com/okian/resumeguide/internal/domain/model"
	"github.com/okian/resumeguide/internal/domain/rank"
	"github.com/okian/resumeguide/internal/domain/recommend"
	"github.com/okian/resumeguide/internal/domain/similarity"
	"github.com/okian/resumeguide/internal/domain/types"
	"github.com/okian/resumeguide/pkg/logger"
	"github.com/okian/resumeguide/pkg/metrics"
)

// Service implements the API dependencies for resume guidance.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog *catalog.Catalog
	scorer  *similarity.CountScorer
	engine  *recommend.Engine
	ranker  *rank.Ranker

	// Configuration
	minTokenLength  int
	rankConcurrency int
	maxPostings     int

	// State
	started   bool
	startedAt time.Time

	// Counters exposed through GetStats
	scores          atomic.Int64
	recommendations atomic.Int64
	reports         atomic.Int64
	ranks           atomic.Int64
	extractions     atomic.Int64
	unknownRoles    atomic.Int64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithCatalog sets the skill catalog. The default catalog is used otherwise.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithMinTokenLength sets the shortest token the scorer counts.
func WithMinTokenLength(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.minTokenLength = n
		}
	}
}

// WithRankConcurrency bounds how many postings are scored at once.
func WithRankConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.rankConcurrency = n
		}
	}
}

// WithMaxPostings caps the number of postings accepted per Rank call.
func WithMaxPostings(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxPostings = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service. The components are immutable once built,
// so the service is safe for concurrent use without Start; Start only
// marks it as serving.
func New(opts ...Option) *Service {
	s := &Service{
		catalog:         catalog.Default(),
		minTokenLength:  2,
		rankConcurrency: runtime.NumCPU(),
		maxPostings:     100,
		logger:          logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.scorer = similarity.NewCountScorer(similarity.WithMinTokenLength(s.minTokenLength))
	s.engine = recommend.New(recommend.WithCatalog(s.catalog), recommend.WithScorer(s.scorer))
	s.ranker = rank.New(s.scorer,
		rank.WithConcurrency(s.rankConcurrency),
		rank.WithMaxPostings(s.maxPostings),
	)
	return s
}

// Start marks the service as serving and publishes catalog metrics.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	metrics.UpdateCatalogRoles(s.catalog.Len())
	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "resume guidance service started",
		logger.Int("roles", s.catalog.Len()),
		logger.Int("minTokenLength", s.minTokenLength),
		logger.Int("rankConcurrency", s.rankConcurrency),
		logger.Int("maxPostings", s.maxPostings),
	)
	return nil
}

// Stop marks the service as stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "resume guidance service stopped",
		logger.Duration("uptime", time.Since(s.startedAt)),
	)
}

// Roles returns the catalog in display order.
func (s *Service) Roles(_ context.Context) []types.RoleSkills {
	entries := s.catalog.Entries()
	out := make([]types.RoleSkills, len(entries))
	for i, e := range entries {
		out[i] = types.RoleSkills{Role: e.Role, Skills: e.Skills}
	}
	return out
}

// Compare scores resume against jobDescription and explains the result.
func (s *Service) Compare(ctx context.Context, resume, jobDescription string) similarity.Comparison {
	start := time.Now()
	cmp := s.scorer.Compare(resume, jobDescription)
	latency := time.Since(start)

	s.scores.Add(1)
	metrics.RecordScore(cmp.Score, float64(latency.Microseconds())/1000)
	s.logger.Debug(ctx, "scored resume",
		logger.Float64("score", cmp.Score),
		logger.Int("sharedTerms", len(cmp.SharedTerms)),
		logger.Int("vocabularySize", cmp.VocabularySize),
		logger.Duration("latency", latency),
	)
	return cmp
}

// Score returns the match percentage of resume against jobDescription.
func (s *Service) Score(ctx context.Context, resume, jobDescription string) float64 {
	return s.Compare(ctx, resume, jobDescription).Score
}

// Recommend lists the catalog skills for role missing from skills.
func (s *Service) Recommend(ctx context.Context, role, skills string) ([]string, error) {
	missing, err := s.engine.Recommend(role, skills)
	if err != nil {
		s.recordLookupError(ctx, role, err)
		return nil, err
	}

	s.recommendations.Add(1)
	metrics.RecordRecommendation(catalog.Normalize(role), len(missing))
	s.logger.Debug(ctx, "recommended skills",
		logger.String("role", role),
		logger.Int("missing", len(missing)),
	)
	return missing, nil
}

// Report runs the full resume check for a profile.
func (s *Service) Report(ctx context.Context, p model.Profile) (model.Report, error) {
	r, err := s.engine.Report(p)
	if err != nil {
		s.recordLookupError(ctx, p.Role, err)
		return model.Report{}, err
	}

	s.reports.Add(1)
	metrics.RecordReport()
	metrics.RecordRecommendation(catalog.Normalize(p.Role), len(r.Suggestions))
	s.logger.Debug(ctx, "generated report",
		logger.String("role", p.Role),
		logger.Float64("atsScore", r.ATSScore),
		logger.Bool("aligned", r.Aligned()),
	)
	return r, nil
}

// Rank orders postings by how well resume matches them.
func (s *Service) Rank(ctx context.Context, resume string, postings []model.Posting) ([]types.Entry, error) {
	start := time.Now()
	entries, err := s.ranker.Rank(ctx, resume, postings)
	if err != nil {
		errType := "cancelled"
		if errors.Is(err, rank.ErrTooManyPostings) {
			errType = "too_many_postings"
		}
		metrics.RecordErrorByComponent("rank", errType)
		return nil, err
	}
	latency := time.Since(start)

	s.ranks.Add(1)
	metrics.RecordRank(len(postings), float64(latency.Microseconds())/1000)
	s.logger.Debug(ctx, "ranked postings",
		logger.Int("postings", len(postings)),
		logger.Duration("latency", latency),
	)
	return entries, nil
}

// Extract returns the plain text of an uploaded document.
func (s *Service) Extract(ctx context.Context, data []byte, filename string) (string, extract.Kind, error) {
	text, kind, err := extract.Text(data, filename)
	if err != nil {
		metrics.RecordExtraction(string(kind), "error", len(data))
		metrics.RecordErrorByComponent("extract", extractErrorType(err))
		s.logger.Warn(ctx, "document extraction failed",
			logger.String("filename", filename),
			logger.Error(err),
		)
		return "", kind, err
	}

	s.extractions.Add(1)
	metrics.RecordExtraction(string(kind), "ok", len(data))
	s.logger.Debug(ctx, "extracted document",
		logger.String("filename", filename),
		logger.String("kind", string(kind)),
		logger.Int("bytes", len(data)),
		logger.Int("chars", len(text)),
	)
	return text, kind, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":         s.started,
		"roles":           s.catalog.Len(),
		"minTokenLength":  s.minTokenLength,
		"rankConcurrency": s.rankConcurrency,
		"maxPostings":     s.maxPostings,
		"scores":          s.scores.Load(),
		"recommendations": s.recommendations.Load(),
		"reports":         s.reports.Load(),
		"ranks":           s.ranks.Load(),
		"extractions":     s.extractions.Load(),
		"unknownRoles":    s.unknownRoles.Load(),
	}
	if s.started {
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
	}
	return stats
}

func (s *Service) recordLookupError(ctx context.Context, role string, err error) {
	if !errors.Is(err, catalog.ErrUnknownRole) {
		metrics.RecordErrorByComponent("recommend", "internal")
		return
	}
	s.unknownRoles.Add(1)
	metrics.RecordUnknownRole()
	s.logger.Info(ctx, "unknown role requested", logger.String("role", role))
}

func extractErrorType(err error) string {
	switch {
	case errors.Is(err, extract.ErrUnsupportedType):
		return "unsupported_type"
	case errors.Is(err, extract.ErrEmptyDocument):
		return "empty_document"
	default:
		return "extract_failed"
	}
}
