// Package model contains domain models passed between layers.
package model

// Profile is what a candidate fills in to get a resume report.
type Profile struct {
	Name           string // candidate name, echoed back
	Role           string // target role, matched case-insensitively against the catalog
	Skills         string // free text, usually comma separated
	Projects       string // projects / experience prose
	JobDescription string // pasted job description
}

// Report is the outcome of analysing a Profile.
type Report struct {
	Name        string
	Role        string
	Skills      string
	Projects    string   // polished projects text
	Suggestions []string // catalog skills missing from Skills, catalog order
	ATSScore    float64  // match of Skills+Projects against JobDescription
}

// Aligned reports whether no skills are missing.
func (r Report) Aligned() bool {
	return len(r.Suggestions) == 0
}

// Posting is one job description to rank a resume against.
type Posting struct {
	ID          string
	Title       string
	Description string
}
