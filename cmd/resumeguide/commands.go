package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/resumeguide/internal/domain/model"
	"github.com/spf13/cobra"
)

// Messages printed when nothing is missing.
const (
	msgRecommendAligned = "Your skill set is well aligned with this role"
	msgReportAligned    = "Your skills already match the role well"
)

// readDocument extracts the text of the file at path.
func (c *cli) readDocument(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	text, _, err := c.svc.Extract(ctx, data, filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("failed to extract %s: %w", path, err)
	}
	return text, nil
}

// textOrFile returns the contents of path when set, otherwise text.
func (c *cli) textOrFile(ctx context.Context, text, path string) (string, error) {
	if path == "" {
		return text, nil
	}
	return c.readDocument(ctx, path)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeList(w io.Writer, items []string) error {
	for _, it := range items {
		if _, err := fmt.Fprintf(w, "- %s\n", it); err != nil {
			return err
		}
	}
	return nil
}

func newScoreCmd(c *cli) *cobra.Command {
	var resumeText, resumeFile, jdText, jdFile string
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a resume against a job description",
		Long:  "Score prints the bag-of-words cosine similarity between a resume and a job description as a percentage. Files may be text, PDF, DOCX or HTML.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			resume, err := c.textOrFile(ctx, resumeText, resumeFile)
			if err != nil {
				return err
			}
			jd, err := c.textOrFile(ctx, jdText, jdFile)
			if err != nil {
				return err
			}

			cmp := c.svc.Compare(ctx, resume, jd)
			out := cmd.OutOrStdout()
			if c.jsonOut {
				return writeJSON(out, cmp)
			}
			if _, err := fmt.Fprintf(out, "ATS Match Percentage: %.2f%%\n", cmp.Score); err != nil {
				return err
			}
			if len(cmp.SharedTerms) > 0 {
				_, err = fmt.Fprintf(out, "Shared terms: %s\n", strings.Join(cmp.SharedTerms, ", "))
			}
			return err
		},
	}
	cmd.Flags().StringVar(&resumeText, "resume-text", "", "Resume text")
	cmd.Flags().StringVarP(&resumeFile, "resume", "r", "", "Path to the resume document")
	cmd.Flags().StringVar(&jdText, "jd-text", "", "Job description text")
	cmd.Flags().StringVarP(&jdFile, "jd", "j", "", "Path to the job description document")
	cmd.MarkFlagsMutuallyExclusive("resume-text", "resume")
	cmd.MarkFlagsMutuallyExclusive("jd-text", "jd")
	return cmd
}

func newRecommendCmd(c *cli) *cobra.Command {
	var role, skills, skillsFile string
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "List catalog skills missing for a role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			text, err := c.textOrFile(ctx, skills, skillsFile)
			if err != nil {
				return err
			}
			missing, err := c.svc.Recommend(ctx, role, text)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if c.jsonOut {
				return writeJSON(out, map[string]any{"role": role, "missing": missing, "aligned": len(missing) == 0})
			}
			if len(missing) == 0 {
				_, err = fmt.Fprintln(out, msgRecommendAligned)
				return err
			}
			if _, err := fmt.Fprintln(out, "Recommended skills:"); err != nil {
				return err
			}
			return writeList(out, missing)
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "Target job role (required)")
	cmd.Flags().StringVarP(&skills, "skills", "s", "", "Current skills text")
	cmd.Flags().StringVar(&skillsFile, "skills-file", "", "Path to a document listing current skills")
	cmd.MarkFlagsMutuallyExclusive("skills", "skills-file")
	if err := cmd.MarkFlagRequired("role"); err != nil {
		panic(fmt.Sprintf("failed to mark role flag as required: %v", err))
	}
	return cmd
}

type reportOutput struct {
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Skills      string   `json:"skills"`
	Projects    string   `json:"projects"`
	Suggestions []string `json:"suggestions"`
	ATSScore    float64  `json:"ats_score"`
}

func newReportCmd(c *cli) *cobra.Command {
	var p model.Profile
	var projectsFile, jdFile string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build a resume report: polished projects, skill suggestions and ATS score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			var err error
			if p.Projects, err = c.textOrFile(ctx, p.Projects, projectsFile); err != nil {
				return err
			}
			if p.JobDescription, err = c.textOrFile(ctx, p.JobDescription, jdFile); err != nil {
				return err
			}

			r, err := c.svc.Report(ctx, p)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if c.jsonOut {
				return writeJSON(out, reportOutput{
					Name:        r.Name,
					Role:        r.Role,
					Skills:      r.Skills,
					Projects:    r.Projects,
					Suggestions: r.Suggestions,
					ATSScore:    r.ATSScore,
				})
			}
			if _, err := fmt.Fprintf(out, "Name: %s\nJob Role: %s\nSkills: %s\nProjects / Experience: %s\n\nSkill Suggestions:\n",
				r.Name, r.Role, r.Skills, r.Projects); err != nil {
				return err
			}
			if r.Aligned() {
				if _, err := fmt.Fprintln(out, msgReportAligned); err != nil {
					return err
				}
			} else if err := writeList(out, r.Suggestions); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "\nATS Compatibility: %.2f%%\n", r.ATSScore)
			return err
		},
	}
	cmd.Flags().StringVarP(&p.Name, "name", "n", "", "Candidate name")
	cmd.Flags().StringVar(&p.Role, "role", "", "Target job role (required)")
	cmd.Flags().StringVarP(&p.Skills, "skills", "s", "", "Skills text")
	cmd.Flags().StringVarP(&p.Projects, "projects", "p", "", "Projects / experience text")
	cmd.Flags().StringVar(&projectsFile, "projects-file", "", "Path to a projects / experience document")
	cmd.Flags().StringVar(&p.JobDescription, "jd-text", "", "Job description text")
	cmd.Flags().StringVarP(&jdFile, "jd", "j", "", "Path to the job description document")
	cmd.MarkFlagsMutuallyExclusive("projects", "projects-file")
	cmd.MarkFlagsMutuallyExclusive("jd-text", "jd")
	if err := cmd.MarkFlagRequired("role"); err != nil {
		panic(fmt.Sprintf("failed to mark role flag as required: %v", err))
	}
	return cmd
}

func newRankCmd(c *cli) *cobra.Command {
	var resumeText, resumeFile string
	cmd := &cobra.Command{
		Use:   "rank [flags] POSTING...",
		Short: "Rank job posting documents by match with a resume",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			resume, err := c.textOrFile(ctx, resumeText, resumeFile)
			if err != nil {
				return err
			}

			postings := make([]model.Posting, 0, len(args))
			for _, path := range args {
				text, err := c.readDocument(ctx, path)
				if err != nil {
					return err
				}
				name := filepath.Base(path)
				postings = append(postings, model.Posting{ID: name, Title: strings.TrimSuffix(name, filepath.Ext(name)), Description: text})
			}

			entries, err := c.svc.Rank(ctx, resume, postings)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if c.jsonOut {
				return writeJSON(out, entries)
			}
			for _, e := range entries {
				if _, err := fmt.Fprintf(out, "%d. %-30s %6.2f%%\n", e.Rank, e.PostingID, e.Score); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&resumeText, "resume-text", "", "Resume text")
	cmd.Flags().StringVarP(&resumeFile, "resume", "r", "", "Path to the resume document")
	cmd.MarkFlagsMutuallyExclusive("resume-text", "resume")
	return cmd
}

func newExtractCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "extract FILE",
		Short: "Print the plain text of a PDF, DOCX, HTML or text document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := c.readDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if c.jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"filename": filepath.Base(args[0]), "text": text})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
}

func newRolesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List the roles and skills in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			roles := c.svc.Roles(cmd.Context())
			out := cmd.OutOrStdout()
			if c.jsonOut {
				return writeJSON(out, roles)
			}
			for _, r := range roles {
				if _, err := fmt.Fprintf(out, "%s: %s\n", r.Role, strings.Join(r.Skills, ", ")); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
