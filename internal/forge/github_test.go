package forge

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/profilekit/internal/foundation/errors"
)

func newTestClient(t *testing.T, handler http.Handler) *GitHubClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGitHubClient(GitHubOptions{APIURL: srv.URL, Token: "secret", Timeout: 2 * time.Second})
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestGetUser(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/jane-alesi", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		writeJSON(t, w, map[string]any{"login": "jane-alesi", "followers": 42, "following": 7})
	}))

	user, err := client.GetUser(t.Context(), "jane-alesi")
	require.NoError(t, err)
	assert.Equal(t, "jane-alesi", user.Login)
	assert.Equal(t, 42, user.Followers)
	assert.Equal(t, 7, user.Following)
}

func TestGetUser_AnonymousWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(t, w, map[string]any{"login": "x"})
	}))
	t.Cleanup(srv.Close)

	client := NewGitHubClient(GitHubOptions{APIURL: srv.URL})
	_, err := client.GetUser(t.Context(), "x")
	require.NoError(t, err)
}

func TestGetUser_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))

	_, err := client.GetUser(t.Context(), "ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryUpstream))
}

func TestListUserRepositories_Paginates(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "owner", r.URL.Query().Get("type"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		page := r.URL.Query().Get("page")

		var repos []Repository
		switch page {
		case "1":
			for i := range 100 {
				repos = append(repos, Repository{Name: fmt.Sprintf("r%d", i)})
			}
			w.Header().Set("Link", `<https://api.github.com/users/x/repos?page=2>; rel="next"`)
		case "2":
			repos = []Repository{{Name: "last"}}
		default:
			t.Fatalf("unexpected page %q", page)
		}
		writeJSON(t, w, repos)
	}))

	repos, err := client.ListUserRepositories(t.Context(), "x")
	require.NoError(t, err)
	require.Len(t, repos, 101)
	assert.Equal(t, "last", repos[100].Name)
}

func TestFetchStats_RepoListingFailureDegrades(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/x", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, map[string]any{"login": "x", "followers": 3, "following": 4})
	})
	mux.HandleFunc("/users/x/repos", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	client := newTestClient(t, mux)

	stats, err := client.FetchStats(t.Context(), "x")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalRepos)
	assert.Equal(t, 3, stats.Followers)
	assert.Equal(t, 4, stats.Following)
}

func TestFetchStats_UserFailureReturnsZeroStats(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	stats, err := client.FetchStats(t.Context(), "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.Equal(t, Stats{}, stats)
}

func TestFetchStats_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client := NewGitHubClient(GitHubOptions{APIURL: srv.URL, Timeout: time.Second})
	_, err := client.FetchStats(t.Context(), "x")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryUpstream))
}
