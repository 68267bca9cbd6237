package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/naka-gawa/portfolio-stats/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for _, key := range []string{
		"GITHUB_USERNAME", "GITHUB_TOKEN", "GITHUB_API_URL",
		"UNSPLASH_ACCESS_KEY", "Unsplash_Access_Key", "UNSPLASH_API_URL",
		"LOC_OUTPUT_PATH", "LOG_LEVEL",
	} {
		t.Setenv(key, env[key])
	}
	chdir(t, t.TempDir())
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestLocCommand(t *testing.T) {
	var requestedPaths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPaths = append(requestedPaths, r.URL.Path+"?page="+r.URL.Query().Get("page"))
		if r.URL.Query().Get("page") != "1" {
			fmt.Fprint(w, `[]`)
			return
		}
		fmt.Fprint(w, `[{"name":"api","size":10,"language":"Go"},{"name":"misc","size":5,"language":null}]`)
	}))
	defer server.Close()

	setTestEnv(t, map[string]string{"GITHUB_API_URL": server.URL})
	outputPath := filepath.Join(t.TempDir(), "report.json")

	out, err := runCommand(t, "loc", "--account", "octocat", "--output", outputPath)
	require.NoError(t, err)

	assert.Equal(t, []string{"/users/octocat/repos?page=1", "/users/octocat/repos?page=2"}, requestedPaths)
	assert.Contains(t, out, "Total LOC: 345")
	assert.Contains(t, out, "Total Repos: 2")
	assert.Contains(t, out, "  Go: 220 lines")
	assert.Contains(t, out, "  misc: 125 lines (Unknown)")

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	var report map[string]any
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, float64(345), report["total_loc"])
	assert.Equal(t, "75.0%", report["confidence_percent"])
	assert.Equal(t, float64(2), report["total_repos"])
	assert.Len(t, report["top_repos"], 2)
}

func TestImagesCommand_MissingAccessKey(t *testing.T) {
	setTestEnv(t, nil)

	_, err := runCommand(t, "images", "--concurrency", "1", "--orientation", "landscape", "--output", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestImagesCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Client-ID secondary-key", r.Header.Get("Authorization"))
		switch q := r.URL.Query().Get("query"); {
		case strings.HasPrefix(q, "docker"):
			w.WriteHeader(http.StatusInternalServerError)
		case strings.HasPrefix(q, "workflow"):
			fmt.Fprint(w, `{"results":[]}`)
		default:
			fmt.Fprintf(w, `{"results":[{"id":"%s","description":"desc","urls":{"regular":"https://img/%s","thumb":"t"},"width":640,"height":480}]}`, q, q)
		}
	}))
	defer server.Close()

	setTestEnv(t, map[string]string{"Unsplash_Access_Key": "secondary-key", "UNSPLASH_API_URL": server.URL})
	outputPath := filepath.Join(t.TempDir(), "images.json")

	out, err := runCommand(t, "images", "--concurrency", "3", "--orientation", "landscape", "--output", outputPath)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	var headers []string
	for _, line := range lines {
		if line != "" && !strings.HasPrefix(line, " ") && strings.Contains(line, ":") {
			headers = append(headers, strings.SplitN(line, ":", 2)[0])
		}
	}
	assert.Equal(t, []string{"ai-development", "docker", "performance", "infrastructure", "automation"}, headers)
	assert.Contains(t, out, "docker: Failed to fetch image")
	assert.Contains(t, out, "automation: Failed to fetch image")
	assert.Contains(t, out, "  Dimensions: 640x480")

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	var lookups []domain.ImageLookup
	require.NoError(t, json.Unmarshal(data, &lookups))
	require.Len(t, lookups, 5)
	assert.Nil(t, lookups[1].Image)
	require.NotNil(t, lookups[0].Image)
	assert.Equal(t, 640, lookups[0].Image.Width)
}

func TestPrintLOCSummary_LimitsRowsAndWarnsOnTruncation(t *testing.T) {
	report := &domain.AggregateReport{
		TotalLOC:          1234567,
		ConfidencePercent: "72.3%",
		TotalRepos:        7,
		Methodology:       "m",
	}
	for i := 0; i < 7; i++ {
		name := fmt.Sprintf("lang-%d", i)
		report.LanguageBreakdown = append(report.LanguageBreakdown, domain.LanguageTotal{Language: name, Lines: 100 - i})
		report.TopRepos = append(report.TopRepos, domain.EstimationResult{Name: fmt.Sprintf("repo-%d", i), EstimatedLOC: 1000 - i, Language: &name})
	}

	var buf bytes.Buffer
	printLOCSummary(&buf, report, domain.RepositoryListing{Pages: 3, Truncated: true})
	out := buf.String()

	assert.Contains(t, out, "Total LOC: 1,234,567")
	assert.Contains(t, out, "Confidence: 72.3%")
	assert.Contains(t, out, "stopped early after 3 page(s)")
	assert.Contains(t, out, "lang-4: 96 lines")
	assert.NotContains(t, out, "lang-5: ")
	assert.Contains(t, out, "repo-4: 996 lines (lang-4)")
	assert.NotContains(t, out, "repo-5")
}

func TestNewLogger(t *testing.T) {
	testCases := []struct {
		name     string
		verbose  bool
		level    string
		expected logrus.Level
	}{
		{name: "warn by default", expected: logrus.WarnLevel},
		{name: "verbose enables debug", verbose: true, expected: logrus.DebugLevel},
		{name: "LOG_LEVEL wins", verbose: true, level: "error", expected: logrus.ErrorLevel},
		{name: "invalid LOG_LEVEL is ignored", level: "loud", expected: logrus.WarnLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parent := &cobra.Command{Use: "parent"}
			parent.PersistentFlags().BoolP("verbose", "v", false, "")
			child := &cobra.Command{Use: "child"}
			parent.AddCommand(child)
			if tc.verbose {
				require.NoError(t, parent.PersistentFlags().Set("verbose", "true"))
			}

			logger := newLogger(child, io.Discard, tc.level)
			assert.Equal(t, tc.expected, logger.GetLevel())
		})
	}
}
