// Package catalog holds the static mapping from job role to expected skills.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Entry is one role and its skills in display order.
type Entry struct {
	Role   string   `json:"role"`
	Skills []string `json:"skills"`
}

// Catalog is an immutable role -> skills table. It is safe for concurrent
// use because nothing mutates it after New returns.
type Catalog struct {
	order  []string
	skills map[string][]string
}

// Normalize folds a role name into its lookup key. It lowercases with the
// same Unicode rules the scorer and recommender apply to free text.
func Normalize(role string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(role))
}

// New builds a catalog from entries, keeping their order for Roles.
func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		order:  make([]string, 0, len(entries)),
		skills: make(map[string][]string, len(entries)),
	}
	for _, e := range entries {
		role := Normalize(e.Role)
		if role == "" {
			return nil, fmt.Errorf("%w: empty role name", ErrInvalidCatalog)
		}
		if _, dup := c.skills[role]; dup {
			return nil, fmt.Errorf("%w: duplicate role %q", ErrInvalidCatalog, role)
		}
		if len(e.Skills) == 0 {
			return nil, fmt.Errorf("%w: role %q has no skills", ErrInvalidCatalog, role)
		}
		lower := cases.Lower(language.Und)
		seen := make(map[string]struct{}, len(e.Skills))
		skills := make([]string, 0, len(e.Skills))
		for _, s := range e.Skills {
			s = strings.TrimSpace(s)
			if s == "" {
				return nil, fmt.Errorf("%w: role %q has a blank skill", ErrInvalidCatalog, role)
			}
			key := lower.String(s)
			if _, dup := seen[key]; dup {
				return nil, fmt.Errorf("%w: role %q lists %q twice", ErrInvalidCatalog, role, s)
			}
			seen[key] = struct{}{}
			skills = append(skills, s)
		}
		c.order = append(c.order, role)
		c.skills[role] = skills
	}
	return c, nil
}

// FromMap builds a catalog from a config-style map. Roles are ordered
// alphabetically since maps carry no order.
func FromMap(m map[string][]string) (*Catalog, error) {
	roles := make([]string, 0, len(m))
	for role := range m {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return Normalize(roles[i]) < Normalize(roles[j]) })
	entries := make([]Entry, 0, len(roles))
	for _, role := range roles {
		entries = append(entries, Entry{Role: role, Skills: m[role]})
	}
	return New(entries)
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New([]Entry{
		{Role: "software engineer", Skills: []string{"Python", "Java", "DSA", "OOPs", "Git", "SQL"}},
		{Role: "data scientist", Skills: []string{"Python", "Machine Learning", "SQL", "Statistics", "Pandas"}},
		{Role: "web developer", Skills: []string{"HTML", "CSS", "JavaScript", "React", "Bootstrap"}},
		{Role: "ai engineer", Skills: []string{"Python", "Deep Learning", "NLP", "TensorFlow", "PyTorch"}},
	})
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns a copy of the skills for role. Unknown roles yield
// *UnknownRoleError.
func (c *Catalog) Lookup(role string) ([]string, error) {
	skills, ok := c.skills[Normalize(role)]
	if !ok {
		return nil, &UnknownRoleError{Role: role}
	}
	out := make([]string, len(skills))
	copy(out, skills)
	return out, nil
}

// Has reports whether role has an entry.
func (c *Catalog) Has(role string) bool {
	_, ok := c.skills[Normalize(role)]
	return ok
}

// Roles returns the normalized role names in catalog order.
func (c *Catalog) Roles() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Entries returns a deep copy of the catalog in order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.order))
	for _, role := range c.order {
		skills, _ := c.Lookup(role)
		out = append(out, Entry{Role: role, Skills: skills})
	}
	return out
}

// Len returns the number of roles.
func (c *Catalog) Len() int {
	return len(c.order)
}
