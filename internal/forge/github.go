package forge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"
)

// GitHubOptions configures a GitHubClient.
type GitHubOptions struct {
	APIURL  string
	Token   string
	Timeout time.Duration
	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
}

// GitHubClient reads public account data from the GitHub REST API.
type GitHubClient struct {
	*BaseForge
}

// User is the subset of a GitHub user profile profilekit displays.
type User struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	PublicRepos int    `json:"public_repos"`
}

// Repository is the subset of a GitHub repository profilekit aggregates. A
// response without a "private" field decodes as private, so it is never
// counted as public by mistake.
type Repository struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Private  bool   `json:"private"`
	Fork     bool   `json:"fork"`
	Archived bool   `json:"archived"`
	Language string `json:"language"`
	Stars    int    `json:"stargazers_count"`
	Forks    int    `json:"forks_count"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Repository) UnmarshalJSON(data []byte) error {
	type plain Repository
	p := plain{Private: true}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Repository(p)
	return nil
}

// NewGitHubClient creates a GitHub client. An empty token makes anonymous,
// rate-limited requests.
func NewGitHubClient(opts GitHubOptions) *GitHubClient {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	apiURL := opts.APIURL
	if apiURL == "" {
		apiURL = "https://api.github.com"
	}

	base := NewBaseForge(httpClient, apiURL, opts.Token)
	base.SetCustomHeader("Accept", "application/vnd.github+json")
	base.SetCustomHeader("X-GitHub-Api-Version", "2022-11-28")
	return &GitHubClient{BaseForge: base}
}

// GetUser fetches the profile of login.
func (c *GitHubClient) GetUser(ctx context.Context, login string) (*User, error) {
	req, err := c.NewRequest(ctx, http.MethodGet, "/users/"+url.PathEscape(login))
	if err != nil {
		return nil, err
	}
	var user User
	if _, err := c.DoRequest(req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUserRepositories lists every repository owned by login.
func (c *GitHubClient) ListUserRepositories(ctx context.Context, login string) ([]Repository, error) {
	base := "/users/" + url.PathEscape(login) + "/repos?type=owner"
	return PaginatedFetchHelper(ctx, base, 100, func(endpoint string) ([]Repository, bool, error) {
		req, err := c.NewRequest(ctx, http.MethodGet, endpoint)
		if err != nil {
			return nil, false, err
		}
		var repos []Repository
		header, err := c.DoRequest(req, &repos)
		if err != nil {
			return nil, false, err
		}
		return repos, hasNextPage(header.Get("Link")), nil
	})
}
