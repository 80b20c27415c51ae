package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/profilekit/internal/foundation/errors"
	"git.home.luguber.info/inful/profilekit/internal/splice"
)

const profile = `# Jane Alesi

<details>
<summary>Technical</summary>

### Performance Achievements
- fast
</details>

## Activity
<!--START_SECTION:activity-->
<!--END_SECTION:activity-->

---

## 👥 Alesi Family Ecosystem
- John
`

type fixture struct {
	dir     string
	cfgPath string
	docPath string
	out     *bytes.Buffer
	g       *Global
}

func githubServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/users/jane-alesi", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"login": "jane-alesi", "followers": 21, "following": 3})
	})
	mux.HandleFunc("/users/jane-alesi/repos", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"name": "a", "private": false, "language": "Go", "stargazers_count": 4},
			{"name": "b", "private": false, "language": "Python", "stargazers_count": 1},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newFixture(t *testing.T, doc, extraConfig string) *fixture {
	t.Helper()
	srv := githubServer(t)
	dir := t.TempDir()
	f := &fixture{
		dir:     dir,
		cfgPath: filepath.Join(dir, "profilekit.yaml"),
		docPath: filepath.Join(dir, "README.md"),
		out:     &bytes.Buffer{},
	}
	f.g = &Global{
		Stdout: f.out,
		Stderr: &bytes.Buffer{},
		Now:    func() time.Time { return time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC) },
	}

	f.writeConfig(t, srv.URL, extraConfig)
	require.NoError(t, os.WriteFile(f.docPath, []byte(doc), 0o600))
	return f
}

func (f *fixture) writeConfig(t *testing.T, apiURL, extraConfig string) {
	t.Helper()
	cfg := "document:\n  path: " + f.docPath + "\n" +
		"github:\n  username: jane-alesi\n  api_url: " + apiURL + "\n" +
		"health:\n  source: static\n  static:\n    reasoning_pipeline_uptime: 99.90%\n    system_status: 🟢 Operational\n" +
		extraConfig
	require.NoError(t, os.WriteFile(f.cfgPath, []byte(cfg), 0o600))
}

func (f *fixture) cli() *CLI { return &CLI{Config: f.cfgPath} }

func (f *fixture) doc(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(f.docPath)
	require.NoError(t, err)
	return string(data)
}

func TestUpdateCmd(t *testing.T) {
	f := newFixture(t, profile, "")

	require.NoError(t, (&UpdateCmd{}).Run(f.g, f.cli()))

	doc := f.doc(t)
	assert.Contains(t, doc, "### 📊 Real-Time System Metrics (Last Updated: 2025-06-01 08:00 UTC)")
	assert.Contains(t, doc, "| 🧠 Reasoning Pipeline | 99.90% | 🟢 Operational |")
	assert.Contains(t, doc, "**GitHub Stats**: 2 repos • 5 stars • 21 connections")
	assert.Contains(t, doc, "### 🔬 Current Research Status (Updated: 2025-06-01 08:00 UTC)")
	assert.Contains(t, doc, "- **Enhancement** in [satware-ai/optimal-agi-system-instruction-framework]")
	assert.Contains(t, f.out.String(), "Metrics Status: ✅ Success")
	assert.Contains(t, f.out.String(), "updated.")

	// A second run with the same clock and data changes nothing.
	f.out.Reset()
	require.NoError(t, (&UpdateCmd{}).Run(f.g, f.cli()))
	assert.Equal(t, doc, f.doc(t))
	assert.Contains(t, f.out.String(), "already up to date")
}

func TestResearchCmd_MissingActivityBlock(t *testing.T) {
	doc := strings.Replace(profile, "<!--START_SECTION:activity-->\n<!--END_SECTION:activity-->\n", "", 1)
	f := newFixture(t, doc, "")

	err := (&ResearchCmd{}).Run(f.g, f.cli())
	require.Error(t, err)
	assert.ErrorIs(t, err, splice.ErrSectionNotFound)
	assert.Equal(t, 3, ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))

	assert.Contains(t, f.doc(t), "### 🔬 Current Research Status")
	assert.Contains(t, f.out.String(), "Research Status: ✅ Success")
	assert.Contains(t, f.out.String(), "Activity Status: ❌ Failed")
}

func TestMetricsCmd_UpstreamDownStillUpdates(t *testing.T) {
	f := newFixture(t, profile, "")
	down := httptest.NewServer(http.NotFoundHandler())
	down.Close()
	f.writeConfig(t, down.URL, "")

	require.NoError(t, (&MetricsCmd{SkipWidgets: true}).Run(f.g, f.cli()))
	assert.Contains(t, f.doc(t), "**GitHub Stats**: 0 repos • 0 stars • 0 connections")
}

func TestMetricsCmd_WritesTextfile(t *testing.T) {
	promPath := filepath.Join(t.TempDir(), "profilekit.prom")
	f := newFixture(t, profile, "metrics:\n  textfile_path: "+promPath+"\n")

	require.NoError(t, (&MetricsCmd{SkipWidgets: true}).Run(f.g, f.cli()))

	data, err := os.ReadFile(promPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `profilekit_step_results_total{result="success",step="metrics"} 1`)
	assert.Contains(t, string(data), "profilekit_document_written 1")
}

func TestUpdateCmd_BrokenResearchDataStillUpdatesMetrics(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "research.yaml")
	require.NoError(t, os.WriteFile(dataPath, []byte("active_projects: [oops\n"), 0o600))
	f := newFixture(t, profile, "research:\n  data_file: "+dataPath+"\n")

	err := (&UpdateCmd{}).Run(f.g, f.cli())
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
	assert.Equal(t, 2, ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))

	doc := f.doc(t)
	assert.Contains(t, doc, "### 📊 Real-Time System Metrics (Last Updated: 2025-06-01 08:00 UTC)")
	assert.NotContains(t, doc, "### 🔬 Current Research Status")
	assert.Contains(t, f.out.String(), "Metrics Status: ✅ Success")
	assert.Contains(t, f.out.String(), "Research Status: ❌ Failed")
	assert.Contains(t, f.out.String(), "Activity Status: ❌ Failed")
}

func TestUpdateCmd_MissingDocument(t *testing.T) {
	f := newFixture(t, profile, "")
	require.NoError(t, os.Remove(f.docPath))

	err := (&UpdateCmd{}).Run(f.g, f.cli())
	require.Error(t, err)
	assert.Equal(t, 11, ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestWidgetsCmd(t *testing.T) {
	widget := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken.svg" {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	t.Cleanup(widget.Close)

	doc := profile + "\n<img src=\"" + widget.URL + "/stats.svg\" alt=\"stats\">\n"
	f := newFixture(t, doc,
		"widgets:\n  disable_defaults: true\n  discover: true\n  extra:\n    - name: broken\n      url: "+widget.URL+"/broken.svg\n")

	require.NoError(t, (&WidgetsCmd{}).Run(f.g, f.cli()))
	out := f.out.String()
	assert.Contains(t, out, "broken: 🟡")
	assert.Contains(t, out, "stats: 🟢")

	err := (&WidgetsCmd{Strict: true}).Run(f.g, f.cli())
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryUpstream))
}

func TestInitCmd(t *testing.T) {
	dir := t.TempDir()
	out := &bytes.Buffer{}
	g := &Global{Stdout: out, Stderr: out, Now: time.Now}

	require.NoError(t, (&InitCmd{Output: dir}).Run(g, &CLI{}))
	assert.FileExists(t, filepath.Join(dir, "profilekit.yaml"))
	assert.FileExists(t, filepath.Join(dir, "research.yaml"))
	assert.Contains(t, out.String(), "initialized successfully")

	err := (&InitCmd{Output: dir}).Run(g, &CLI{})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))

	require.NoError(t, (&InitCmd{Output: dir, Force: true}).Run(g, &CLI{}))
}
