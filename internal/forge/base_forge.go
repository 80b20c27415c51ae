package forge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"git.home.luguber.info/inful/profilekit/internal/foundation/errors"
)

// UserAgent identifies profilekit to upstream APIs.
const UserAgent = "profilekit/1.0"

// BaseForge provides the HTTP plumbing shared by forge API clients.
type BaseForge struct {
	httpClient *http.Client
	apiURL     string
	token      string

	authHeaderPrefix string
	customHeaders    map[string]string
}

// NewBaseForge creates a BaseForge. An empty token sends anonymous requests.
func NewBaseForge(httpClient *http.Client, apiURL, token string) *BaseForge {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &BaseForge{
		httpClient:       httpClient,
		apiURL:           apiURL,
		token:            token,
		authHeaderPrefix: "Bearer ",
		customHeaders:    make(map[string]string),
	}
}

// SetCustomHeader sets a forge-specific header sent with every request.
func (b *BaseForge) SetCustomHeader(key, value string) {
	b.customHeaders[key] = value
}

// NewRequest creates a GET-style request for endpoint, a path relative to the
// API URL that may carry its own query string.
func (b *BaseForge) NewRequest(ctx context.Context, method, endpoint string) (*http.Request, error) {
	cleanEndpoint := strings.TrimPrefix(endpoint, "/")

	var rawQuery string
	if idx := strings.Index(cleanEndpoint, "?"); idx != -1 {
		rawQuery = cleanEndpoint[idx+1:]
		cleanEndpoint = cleanEndpoint[:idx]
	}

	u, err := url.Parse(b.apiURL)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse API URL").
			WithContext("api_url", b.apiURL).
			Build()
	}
	u.Path = path.Join(strings.TrimSuffix(u.Path, "/"), cleanEndpoint)
	if !strings.HasPrefix(u.Path, "/") {
		u.Path = "/" + u.Path
	}
	u.RawQuery = rawQuery

	req, err := http.NewRequestWithContext(ctx, method, u.String(), http.NoBody)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to create request").
			WithContext("method", method).
			WithContext("url", u.String()).
			Build()
	}

	if b.token != "" {
		req.Header.Set("Authorization", b.authHeaderPrefix+b.token)
	}
	req.Header.Set("User-Agent", UserAgent)
	for key, value := range b.customHeaders {
		req.Header.Set(key, value)
	}
	return req, nil
}

// DoRequest executes req, decodes a JSON body into result (when non-nil) and
// returns the response headers for pagination.
func (b *BaseForge) DoRequest(req *http.Request, result any) (http.Header, error) {
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryUpstream, ErrUpstreamUnavailable.Message()).
			Warning().
			WithContext("method", req.Method).
			WithContext("url", req.URL.String()).
			Build()
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		limitedBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		bodyStr := strings.ReplaceAll(string(limitedBody), "\n", " ")

		message := ErrUpstreamUnavailable.Message()
		if resp.StatusCode == http.StatusNotFound {
			message = ErrUserNotFound.Message()
		}
		return nil, errors.UpstreamError(message).
			WithContext("status", resp.Status).
			WithContext("code", resp.StatusCode).
			WithContext("url", req.URL.String()).
			WithContext("response", bodyStr).
			Build()
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return nil, errors.WrapError(err, errors.CategoryUpstream, fmt.Sprintf("failed to decode %s response", req.URL.Path)).
				Warning().
				Build()
		}
	}
	return resp.Header, nil
}
