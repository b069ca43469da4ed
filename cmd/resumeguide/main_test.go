package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	app "github.com/okian/resumeguide/internal/app"
	"github.com/okian/resumeguide/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

// run executes the CLI in-process and returns stdout and the error.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvDotFile, "")

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

var errWriteFailed = errors.New("write failed")

// failingWriter fails its failAt-th write and accepts every other one.
type failingWriter struct {
	writes int
	failAt int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	if w.writes == w.failAt {
		return 0, errWriteFailed
	}
	return len(p), nil
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestVersionAndRoles(t *testing.T) {
	convey.Convey("Given the CLI", t, func() {
		convey.Convey("When printing the version", func() {
			out, err := run(t, "version")

			convey.Convey("Then the build version is shown", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldEqual, version+"\n")
			})
		})

		convey.Convey("When listing roles", func() {
			out, err := run(t, "roles")

			convey.Convey("Then the default catalog is printed in order", func() {
				convey.So(err, convey.ShouldBeNil)
				lines := strings.Split(strings.TrimSpace(out), "\n")
				convey.So(len(lines), convey.ShouldEqual, 4)
				convey.So(lines[0], convey.ShouldEqual, "software engineer: Python, Java, DSA, OOPs, Git, SQL")
			})
		})

		convey.Convey("When the catalog comes from a config file", func() {
			path := writeFile(t, "config.yaml", "catalog:\n  chef:\n    - Knife Skills\n    - Sauces\n")
			out, err := run(t, "--config", path, "roles")

			convey.Convey("Then only the configured roles are listed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldEqual, "chef: Knife Skills, Sauces\n")
			})
		})
	})
}

func TestRecommendCommand(t *testing.T) {
	convey.Convey("Given the recommend command", t, func() {
		convey.Convey("When skills are missing", func() {
			out, err := run(t, "recommend", "--role", "Software Engineer", "--skills", "I know Python, Git and SQL")

			convey.Convey("Then they are listed in catalog order", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldEqual, "Recommended skills:\n- Java\n- DSA\n- OOPs\n")
			})
		})

		convey.Convey("When every skill is present", func() {
			out, err := run(t, "recommend", "--role", "web developer", "--skills", "HTML CSS JavaScript React Bootstrap")

			convey.Convey("Then the aligned message is printed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldEqual, msgRecommendAligned+"\n")
			})
		})

		convey.Convey("When the role is unknown", func() {
			_, err := run(t, "recommend", "--role", "astronaut")

			convey.Convey("Then the command fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "unknown role")
			})
		})

		convey.Convey("When the role flag is missing", func() {
			_, err := run(t, "recommend", "--skills", "python")

			convey.Convey("Then the command fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestScoreCommand(t *testing.T) {
	convey.Convey("Given the score command", t, func() {
		convey.Convey("When both texts are identical", func() {
			out, err := run(t, "score", "--resume-text", "python sql", "--jd-text", "sql python")

			convey.Convey("Then the match is 100%", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldStartWith, "ATS Match Percentage: 100.00%\n")
			})
		})

		convey.Convey("When documents are read from files with JSON output", func() {
			resume := writeFile(t, "resume.txt", "Python developer with SQL")
			jd := writeFile(t, "jd.html", "<html><body><p>Python developer</p></body></html>")
			out, err := run(t, "--json", "score", "--resume", resume, "--jd", jd)

			convey.Convey("Then the comparison is printed as JSON", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, `"shared_terms": [`)
				convey.So(out, convey.ShouldContainSubstring, `"developer"`)
			})
		})

		convey.Convey("When a file does not exist", func() {
			_, err := run(t, "score", "--resume", filepath.Join(t.TempDir(), "nope.txt"))

			convey.Convey("Then the command fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestReportAndRankCommands(t *testing.T) {
	convey.Convey("Given the report command", t, func() {
		out, err := run(t, "report",
			"--name", "Ada",
			"--role", "data scientist",
			"--skills", "Python, SQL, Statistics",
			"--projects", "built a churn model. shipped dashboards",
			"--jd-text", "Data scientist with Python and SQL")

		convey.Convey("Then the report lists polished projects and suggestions", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "Projects / Experience: Built a churn model. Shipped dashboards")
			convey.So(out, convey.ShouldContainSubstring, "- Machine Learning\n- Pandas\n")
			convey.So(out, convey.ShouldContainSubstring, "ATS Compatibility:")
		})
	})

	convey.Convey("Given a report written to an output that fails on the first write", t, func() {
		t.Setenv(config.EnvConfig, "")
		t.Setenv(config.EnvDotFile, "")
		w := &failingWriter{failAt: 1}
		cmd := newRootCmd()
		cmd.SetOut(w)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"report",
			"--role", "data scientist",
			"--skills", "Python, Machine Learning, SQL, Statistics, Pandas",
			"--jd-text", "Data scientist"})
		err := cmd.ExecuteContext(context.Background())

		convey.Convey("Then the write error is returned", func() {
			convey.So(errors.Is(err, errWriteFailed), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given the rank command", t, func() {
		dev := writeFile(t, "dev.txt", "python sql developer")
		chef := writeFile(t, "chef.txt", "chef for cooking and baking")
		out, err := run(t, "rank", "--resume-text", "python sql developer", chef, dev)

		convey.Convey("Then the best posting comes first", func() {
			convey.So(err, convey.ShouldBeNil)
			lines := strings.Split(strings.TrimSpace(out), "\n")
			convey.So(len(lines), convey.ShouldEqual, 2)
			convey.So(lines[0], convey.ShouldStartWith, "1. dev.txt")
			convey.So(lines[1], convey.ShouldStartWith, "2. chef.txt")
		})
	})
}

func TestExtractCommand(t *testing.T) {
	convey.Convey("Given an HTML document", t, func() {
		path := writeFile(t, "posting.html", "<html><head><script>x()</script></head><body><h1>Go Engineer</h1><p>SQL</p></body></html>")

		convey.Convey("When extracting it", func() {
			out, err := run(t, "extract", path)

			convey.Convey("Then only the visible text is printed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "Go Engineer")
				convey.So(out, convey.ShouldNotContainSubstring, "x()")
			})
		})
	})
}

func TestServeHandler(t *testing.T) {
	convey.Convey("Given the HTTP handler built for serve", t, func() {
		c := &cli{cfg: config.New(), svc: app.New()}
		h := c.newHandler(context.Background())

		convey.Convey("Then the API routes are mounted", func() {
			req := httptest.NewRequest(http.MethodPost, "/v1/recommend",
				strings.NewReader(`{"role":"Software Engineer","skills":"I know Python, Git and SQL"}`))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Body.String(), convey.ShouldContainSubstring, `"missing":["Java","DSA","OOPs"]`)
		})

		convey.Convey("And the docs routes are mounted", func() {
			for _, path := range []string{"/api-docs", "/openapi.yaml", "/healthz", "/metrics"} {
				w := httptest.NewRecorder()
				h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			}
		})
	})
}

func TestUpdateSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.So(updateSystemMetrics, convey.ShouldNotPanic)
	})
}

func TestExecuteDotEnvPrecedence(t *testing.T) {
	convey.Convey("Given a ./.env and a file named by RESUMEGUIDE_DOTENV that disagree", t, func() {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("RESUMEGUIDE_LOG_FORMAT=xml\n"), 0o600); err != nil {
			t.Fatalf("write .env: %v", err)
		}
		t.Chdir(dir)
		t.Setenv(config.EnvConfig, "")
		t.Setenv(config.EnvDotFile, writeFile(t, "named.env", "RESUMEGUIDE_LOG_FORMAT=json\n"))
		// Registered so the value godotenv sets is rolled back after the test.
		t.Setenv("RESUMEGUIDE_LOG_FORMAT", "")
		_ = os.Unsetenv("RESUMEGUIDE_LOG_FORMAT")

		var out, errOut bytes.Buffer
		code := execute(context.Background(), []string{"roles"}, &out, &errOut)

		convey.Convey("Then the named file wins and the command succeeds", func() {
			convey.So(errOut.String(), convey.ShouldNotContainSubstring, "Error:")
			convey.So(code, convey.ShouldEqual, 0)
			convey.So(os.Getenv("RESUMEGUIDE_LOG_FORMAT"), convey.ShouldEqual, "json")
			convey.So(out.String(), convey.ShouldContainSubstring, "software engineer:")
		})
	})

	convey.Convey("Given an unknown command", t, func() {
		var out, errOut bytes.Buffer
		code := execute(context.Background(), []string{"nope"}, &out, &errOut)

		convey.Convey("Then the exit code is 1 and the error is printed", func() {
			convey.So(code, convey.ShouldEqual, 1)
			convey.So(errOut.String(), convey.ShouldStartWith, "Error: ")
		})
	})
}
