// Package rank orders job postings by how well a resume matches them.
package rank

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/google/uuid"
	"github.com/okian/resumeguide/internal/domain/model"
	"github.com/okian/resumeguide/internal/domain/similarity"
	"github.com/okian/resumeguide/internal/domain/types"
	"golang.org/x/sync/errgroup"
)

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithConcurrency bounds how many postings are scored at once.
func WithConcurrency(n int) Option {
	return func(r *Ranker) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithMaxPostings caps the batch size. Zero means no cap.
func WithMaxPostings(n int) Option {
	return func(r *Ranker) {
		if n >= 0 {
			r.maxPostings = n
		}
	}
}

// Ranker scores postings in parallel. Each call is independent; nothing
// is kept between calls.
type Ranker struct {
	scorer      similarity.Scorer
	concurrency int
	maxPostings int
}

// New creates a ranker around scorer.
func New(scorer similarity.Scorer, opts ...Option) *Ranker {
	r := &Ranker{
		scorer:      scorer,
		concurrency: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rank scores resume against every posting and returns entries sorted by
// score, highest first. Ties keep input order. Postings without an ID get
// a random one so callers can correlate results.
func (r *Ranker) Rank(ctx context.Context, resume string, postings []model.Posting) ([]types.Entry, error) {
	type scored struct {
		index int
		entry types.Entry
	}
	if r.maxPostings > 0 && len(postings) > r.maxPostings {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyPostings, len(postings), r.maxPostings)
	}
	results := make([]scored, len(postings))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, p := range postings {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return fmt.Errorf("context cancelled: %w", err)
			}
			id := p.ID
			if id == "" {
				id = uuid.New().String()
			}
			results[i] = scored{
				index: i,
				entry: types.Entry{
					PostingID: id,
					Title:     p.Title,
					Score:     r.scorer.Score(resume, p.Description),
				},
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].entry.Score > results[j].entry.Score
	})

	entries := make([]types.Entry, len(results))
	for i, res := range results {
		res.entry.Rank = i + 1
		entries[i] = res.entry
	}
	return entries, nil
}
