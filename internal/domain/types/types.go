// Package types contains common types used across the application
package types

// Entry is one ranked posting in a rank response.
type Entry struct {
	Rank      int     `json:"rank"`
	PostingID string  `json:"posting_id"`
	Title     string  `json:"title,omitempty"`
	Score     float64 `json:"score"`
}

// RoleSkills is a catalog row as exposed over the API.
type RoleSkills struct {
	Role   string   `json:"role"`
	Skills []string `json:"skills"`
}
