package widgets

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/moved":
			w.WriteHeader(http.StatusAccepted)
		}
	}))
	t.Cleanup(srv.Close)

	closed := httptest.NewServer(http.NotFoundHandler())
	closed.Close()

	p := NewProber(time.Second)
	got := p.Probe(t.Context(), []Widget{
		{Name: "ok", URL: srv.URL + "/ok"},
		{Name: "other", URL: srv.URL + "/moved"},
		{Name: "down", URL: closed.URL + "/x"},
	})

	require.Len(t, got, 3)
	assert.Equal(t, Healthy, got[0].Health)
	assert.Equal(t, http.StatusOK, got[0].Code)
	assert.True(t, strings.HasSuffix(got[0].Latency, "s"))

	assert.Equal(t, Degraded, got[1].Health)
	assert.Equal(t, http.StatusAccepted, got[1].Code)

	assert.Equal(t, Unhealthy, got[2].Health)
	assert.Equal(t, "timeout", got[2].Latency)
	assert.NotEmpty(t, got[2].Error)
	assert.LessOrEqual(t, len([]rune(got[2].Error)), maxErrorLen)
}

func TestProbe_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	got := NewProber(50 * time.Millisecond).Probe(t.Context(), []Widget{{Name: "slow", URL: srv.URL}})
	require.Len(t, got, 1)
	assert.Equal(t, Unhealthy, got[0].Health)
	assert.Equal(t, "timeout", got[0].Latency)
}

func TestDefaultWidgets(t *testing.T) {
	ws := DefaultWidgets("jane-alesi")
	require.Len(t, ws, 4)
	assert.Equal(t, "github_stats", ws[0].Name)
	assert.Equal(t, "https://github-readme-stats.vercel.app/api?username=jane-alesi", ws[0].URL)
	assert.Equal(t, "https://streak-stats.demolab.com?user=jane-alesi", ws[1].URL)
}

func TestDiscoverImages(t *testing.T) {
	doc := "# Hi\n\n" +
		`<p align="center"><img src="https://example.com/stats.svg" alt="Stats" /></p>` + "\n\n" +
		`<img src="https://example.com/streak?user=x">` + "\n" +
		`<img src="./local.png">` + "\n" +
		`<img src="https://example.com/stats.svg">` + "\n" +
		"![md](https://example.com/markdown.png)\n"

	got := DiscoverImages(doc)
	require.Len(t, got, 2)
	assert.Equal(t, Widget{Name: "Stats", URL: "https://example.com/stats.svg"}, got[0])
	assert.Equal(t, "example.com/streak", got[1].Name)
}

func TestMerge(t *testing.T) {
	base := []Widget{{Name: "a", URL: "https://a"}}
	got := Merge(base, []Widget{{Name: "dup", URL: "https://a"}, {Name: "b", URL: "https://b"}})
	assert.Equal(t, []Widget{{Name: "a", URL: "https://a"}, {Name: "b", URL: "https://b"}}, got)
}
