package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/2beens/gymdemos/internal/demos"
	"github.com/2beens/gymdemos/internal/middleware"
)

const clientTimeout = 30 * time.Second

var errUnauthorized = errors.New("unauthorized, check the admin token")

type apiClient struct {
	baseURL    string
	adminToken string
	httpClient *http.Client
}

func newAPIClient(baseURL, adminToken string, httpClient *http.Client) *apiClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: clientTimeout}
	}
	return &apiClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		adminToken: adminToken,
		httpClient: httpClient,
	}
}

// Resolve returns nil without error when the service has no demo.
func (c *apiClient) Resolve(ctx context.Context, exercise string) (*demos.Result, error) {
	var result demos.Result
	status, err := c.do(ctx, http.MethodGet, "/demos/"+url.PathEscape(exercise), &result)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	return &result, nil
}

func (c *apiClient) IsCached(ctx context.Context, exercise string) (bool, error) {
	var resp struct {
		Cached bool `json:"cached"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/demos/"+url.PathEscape(exercise)+"/cached", &resp); err != nil {
		return false, err
	}
	return resp.Cached, nil
}

func (c *apiClient) Stats(ctx context.Context) (*demos.Stats, error) {
	var stats demos.Stats
	if _, err := c.do(ctx, http.MethodGet, "/cache/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *apiClient) ClearAll(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/cache", nil)
	return err
}

// do sends the request and decodes a 200 body into target. 404 is returned
// as a status, not an error.
func (c *apiClient) do(ctx context.Context, method, path string, target any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return 0, fmt.Errorf("new request: %w", err)
	}
	if c.adminToken != "" {
		req.Header.Set(middleware.AdminTokenHeader, c.adminToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return resp.StatusCode, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return resp.StatusCode, errUnauthorized
	case resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return resp.StatusCode, fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if target != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return resp.StatusCode, fmt.Errorf("decode %s response: %w", path, err)
		}
	}
	return resp.StatusCode, nil
}
