// Package wpapi is a client for the site's REST API. It implements the record
// store, template creation and the home lookup used by the switcher.
package wpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ruminaider/template-switcher/internal/records"
)

const (
	restPrefix      = "/wp-json"
	templatesPath   = "/wp/v2/templates"
	partsPath       = "/wp/v2/template-parts"
	themesPath      = "/wp/v2/themes"
	findTemplateArg = "_wp-find-template"
	perPage         = "100"
	maxResponseSize = 8 << 20
)

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// SiteURL is the site's base URL (e.g. "https://example.com").
	SiteURL string
	// Username and AppPassword enable basic authentication with an
	// application password. Both empty means anonymous requests.
	Username    string
	AppPassword string
	// Timeout bounds each request when HTTPClient is nil.
	Timeout time.Duration
	// HTTPClient is used for all requests. If nil, a client with Timeout is used.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Client talks to one site.
type Client struct {
	baseURL     string
	username    string
	appPassword string
	httpClient  *http.Client
	logger      *slog.Logger
}

var (
	_ records.Store           = (*Client)(nil)
	_ records.TemplateCreator = (*Client)(nil)
	_ records.HomeLookup      = (*Client)(nil)
)

// NewClient creates a Client.
func NewClient(config ClientConfig) (*Client, error) {
	if config.SiteURL == "" {
		return nil, fmt.Errorf("wpapi: SiteURL is required")
	}
	u, err := url.Parse(config.SiteURL)
	if err != nil {
		return nil, fmt.Errorf("wpapi: invalid SiteURL %q: %w", config.SiteURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("wpapi: SiteURL %q must be http or https", config.SiteURL)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:     strings.TrimRight(config.SiteURL, "/"),
		username:    config.Username,
		appPassword: config.AppPassword,
		httpClient:  httpClient,
		logger:      logger,
	}, nil
}

// Templates lists templates matching q. Records without a post id are
// skipped.
func (c *Client) Templates(ctx context.Context, q records.Query) ([]records.TemplateRecord, error) {
	var wire []wireRecord
	if err := c.getJSON(ctx, restPrefix+templatesPath, listQuery(q), &wire); err != nil {
		return nil, fmt.Errorf("wpapi: listing templates: %w", err)
	}
	out := make([]records.TemplateRecord, 0, len(wire))
	for _, w := range wire {
		r, err := w.template()
		if errors.Is(err, errNoPostID) {
			c.logger.Debug("skipping record without post id", "kind", "templates", "id", string(w.ID), "slug", w.Slug)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("wpapi: listing templates: %w", err)
		}
		out = append(out, r)
	}
	return out, nil
}

// TemplateParts lists template parts matching q, skipping records without
// a post id.
func (c *Client) TemplateParts(ctx context.Context, q records.Query) ([]records.TemplatePartRecord, error) {
	var wire []wireRecord
	if err := c.getJSON(ctx, restPrefix+partsPath, listQuery(q), &wire); err != nil {
		return nil, fmt.Errorf("wpapi: listing template parts: %w", err)
	}
	out := make([]records.TemplatePartRecord, 0, len(wire))
	for _, w := range wire {
		r, err := w.templatePart()
		if errors.Is(err, errNoPostID) {
			c.logger.Debug("skipping record without post id", "kind", "template parts", "id", string(w.ID), "slug", w.Slug)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("wpapi: listing template parts: %w", err)
		}
		out = append(out, r)
	}
	return out, nil
}

// CurrentTheme returns the active theme.
func (c *Client) CurrentTheme(ctx context.Context) (records.ThemeRecord, error) {
	var wire []wireTheme
	if err := c.getJSON(ctx, restPrefix+themesPath, url.Values{"status": {"active"}}, &wire); err != nil {
		return records.ThemeRecord{}, fmt.Errorf("wpapi: fetching current theme: %w", err)
	}
	if len(wire) == 0 {
		return records.ThemeRecord{}, fmt.Errorf("wpapi: fetching current theme: no active theme")
	}
	return wire[0].theme(), nil
}

// CreateTemplate creates a published template with the given slug.
func (c *Client) CreateTemplate(ctx context.Context, slug string) (records.TemplateRecord, error) {
	body := map[string]any{
		"slug":   slug,
		"title":  slug,
		"status": string(records.StatusPublish),
	}
	data, err := c.doRequest(ctx, http.MethodPost, restPrefix+templatesPath, nil, body)
	if err != nil {
		return records.TemplateRecord{}, fmt.Errorf("wpapi: creating template %q: %w", slug, err)
	}
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return records.TemplateRecord{}, fmt.Errorf("wpapi: failed to parse created template: %w", err)
	}
	r, err := w.template()
	if err != nil {
		return records.TemplateRecord{}, fmt.Errorf("wpapi: creating template %q: %w", slug, err)
	}
	c.logger.Info("created template", "id", r.ID, "slug", r.Slug)
	return r, nil
}

// FindTemplate asks the site which record backs its root path.
func (c *Client) FindTemplate(ctx context.Context) (records.FindResult, error) {
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			ID       *int64 `json:"ID"`
			PostName string `json:"post_name"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, "/", url.Values{findTemplateArg: {"true"}}, &resp); err != nil {
		return records.FindResult{}, fmt.Errorf("wpapi: finding home template: %w", err)
	}

	res := records.FindResult{Success: resp.Success, PostName: resp.Data.PostName}
	if resp.Data.ID != nil {
		id := records.ID(*resp.Data.ID)
		res.ID = &id
	}
	return res, nil
}

func listQuery(q records.Query) url.Values {
	v := url.Values{"per_page": {perPage}}
	if q.Resolved {
		v.Set("context", "edit")
	}
	if q.Slug != "" {
		v.Set("slug", q.Slug)
	}
	if len(q.Status) > 0 {
		statuses := make([]string, len(q.Status))
		for i, s := range q.Status {
			statuses[i] = string(s)
		}
		v.Set("status", strings.Join(statuses, ","))
	}
	if q.Theme != "" {
		v.Set("theme", q.Theme)
	}
	return v
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	data, err := c.doRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response from %s: %w", path, err)
	}
	return nil
}

// doRequest performs an HTTP request and returns the response body.
// On 2xx, returns the body. On 4xx/5xx, returns an *APIError.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, requestBody any) ([]byte, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if c.username != "" || c.appPassword != "" {
		request.SetBasicAuth(c.username, c.appPassword)
	}

	start := time.Now()
	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("request to %s %s failed: %w", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	c.logger.Debug("api request",
		"method", method,
		"path", path,
		"status", response.StatusCode,
		"duration", time.Since(start),
	)

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}

	var apiErr APIError
	if jsonErr := json.Unmarshal(responseBody, &apiErr); jsonErr != nil || apiErr.Code == "" {
		return nil, fmt.Errorf("unexpected %d response from %s %s: %s",
			response.StatusCode, method, path, truncate(string(responseBody), 200))
	}
	apiErr.StatusCode = response.StatusCode
	return nil, &apiErr
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// parseID accepts numeric ids and numeric strings.
func parseID(raw json.RawMessage) (records.ID, error) {
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return records.ID(n), nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("id %s is neither a number nor a string", string(raw))
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id %q is not numeric", s)
	}
	return records.ID(n), nil
}
