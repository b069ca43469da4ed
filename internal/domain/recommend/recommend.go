// Package recommend combines the skill catalog and the similarity scorer
// into the operations the presentation layers call.
package recommend

import (
	"strings"

	"github.com/okian/resumeguide/internal/domain/catalog"
	"github.com/okian/resumeguide/internal/domain/model"
	"github.com/okian/resumeguide/internal/domain/prose"
	"github.com/okian/resumeguide/internal/domain/similarity"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Catalog is the read side of catalog.Catalog used by the engine.
type Catalog interface {
	Lookup(role string) ([]string, error)
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithCatalog replaces the default catalog.
func WithCatalog(c Catalog) Option {
	return func(e *Engine) {
		if c != nil {
			e.catalog = c
		}
	}
}

// WithScorer replaces the default similarity scorer.
func WithScorer(s similarity.Scorer) Option {
	return func(e *Engine) {
		if s != nil {
			e.scorer = s
		}
	}
}

// Engine answers recommend, score and report requests. It holds only
// immutable collaborators and may be shared across goroutines.
type Engine struct {
	catalog Catalog
	scorer  similarity.Scorer
}

// New creates an engine backed by the default catalog and a count scorer
// unless options say otherwise.
func New(opts ...Option) *Engine {
	e := &Engine{
		catalog: catalog.Default(),
		scorer:  similarity.NewCountScorer(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recommend returns the catalog skills for role that do not appear in
// candidateText, in catalog order. A skill counts as present when its
// lowercase form is a substring of the lowercased text anywhere, so
// "javascript" also hides "Java". That looseness is known and kept.
// The result is empty, never nil, when every skill is present.
func (e *Engine) Recommend(role, candidateText string) ([]string, error) {
	skills, err := e.catalog.Lookup(role)
	if err != nil {
		return nil, err
	}

	lower := cases.Lower(language.Und)
	text := lower.String(candidateText)
	missing := make([]string, 0, len(skills))
	for _, skill := range skills {
		if !strings.Contains(text, lower.String(skill)) {
			missing = append(missing, skill)
		}
	}
	return missing, nil
}

// Score returns how well resume matches jobDescription, in [0, 100].
func (e *Engine) Score(resume, jobDescription string) float64 {
	return e.scorer.Score(resume, jobDescription)
}

// Report runs the full resume check for a profile: polish the projects
// text, list missing skills and score skills plus projects against the
// job description.
func (e *Engine) Report(p model.Profile) (model.Report, error) {
	suggestions, err := e.Recommend(p.Role, p.Skills)
	if err != nil {
		return model.Report{}, err
	}

	projects := prose.Polish(p.Projects)
	resume := p.Skills + " " + projects

	return model.Report{
		Name:        p.Name,
		Role:        p.Role,
		Skills:      p.Skills,
		Projects:    projects,
		Suggestions: suggestions,
		ATSScore:    e.Score(resume, p.JobDescription),
	}, nil
}
