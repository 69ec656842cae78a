// Package meta implements the Graph API client and platform adapter for
// Meta (Facebook/Instagram) advertising.
package meta

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ignite/ad-launcher/internal/pkg/httpretry"
	"github.com/ignite/ad-launcher/internal/pkg/logger"
	"github.com/ignite/ad-launcher/internal/pkg/metrics"
)

// Config holds what the client needs to talk to the Graph API.
type Config struct {
	BaseURL       string
	APIVersion    string
	AccessToken   string
	Timeout       time.Duration
	RatePerSecond float64
	RateBurst     int
}

// Client is a versioned Graph API client. The access token travels as a
// query parameter on every call, which is how the Graph API authenticates.
//
// GETs go through a retrying client; mutating POSTs use a plain client so a
// timed-out creation is never silently replayed into a duplicate entity.
type Client struct {
	baseURL    string
	version    string
	token      string
	getClient  httpretry.HTTPDoer
	postClient httpretry.HTTPDoer
	limiter    *rate.Limiter
	log        *logger.Logger
	metrics    *metrics.Metrics
}

// NewClient builds a Graph client from config.
func NewClient(cfg Config, log *logger.Logger, m *metrics.Metrics) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	base := strings.TrimSuffix(cfg.BaseURL, "/")
	if base == "" {
		base = "https://graph.facebook.com"
	}
	version := cfg.APIVersion
	if version == "" {
		version = "v21.0"
	}
	perSecond := cfg.RatePerSecond
	if perSecond == 0 {
		perSecond = 5
	}
	burst := cfg.RateBurst
	if burst == 0 {
		burst = 10
	}
	plain := &http.Client{Timeout: timeout}
	return &Client{
		baseURL:    base,
		version:    version,
		token:      cfg.AccessToken,
		getClient:  httpretry.NewRetryClient(plain, 3),
		postClient: plain,
		limiter:    rate.NewLimiter(rate.Limit(perSecond), burst),
		log:        log,
		metrics:    m,
	}
}

// SetHTTPClients replaces both underlying clients, for tests.
func (c *Client) SetHTTPClients(get, post httpretry.HTTPDoer) {
	c.getClient = get
	c.postClient = post
}

func (c *Client) endpoint(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("access_token", c.token)
	return fmt.Sprintf("%s/%s/%s?%s", c.baseURL, c.version, strings.TrimPrefix(path, "/"), params.Encode())
}

func (c *Client) do(ctx context.Context, doer httpretry.HTTPDoer, req *http.Request, endpoint string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	start := time.Now()
	resp, err := doer.Do(req)
	if err != nil {
		c.record(endpoint, "transport_error", start)
		return fmt.Errorf("graph request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.record(endpoint, "read_error", start)
		return fmt.Errorf("read graph response: %w", err)
	}
	c.record(endpoint, fmt.Sprintf("%dxx", resp.StatusCode/100), start)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope errorEnvelope
		if jsonErr := json.Unmarshal(body, &envelope); jsonErr == nil && envelope.Err != nil {
			return envelope.Err
		}
		return fmt.Errorf("graph API status %d: %s", resp.StatusCode, string(body))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("parse graph response: %w", err)
		}
	}
	return nil
}

func (c *Client) record(endpoint, status string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.PlatformCalls.WithLabelValues(endpoint, status).Inc()
	c.metrics.PlatformDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

// Get performs GET {base}/{version}/{path} and unmarshals into out.
func (c *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, params), nil)
	if err != nil {
		return fmt.Errorf("build graph request: %w", err)
	}
	return c.do(ctx, c.getClient, req, "GET "+path, out)
}

// Post performs a form-encoded POST. Callers put JSON-valued fields in as
// already-encoded strings, matching how the Graph API accepts nested specs.
// Posts are never retried.
func (c *Client) Post(ctx context.Context, path string, fields url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil),
		strings.NewReader(fields.Encode()))
	if err != nil {
		return fmt.Errorf("build graph request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(ctx, c.postClient, req, "POST "+path, out)
}

// PostMultipart performs a multipart POST with one file part plus plain
// fields, used for image uploads and video chunk transfer.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, fileField, fileName string, file []byte, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("write multipart field: %w", err)
		}
	}
	part, err := w.CreateFormFile(fileField, fileName)
	if err != nil {
		return fmt.Errorf("create multipart file part: %w", err)
	}
	if _, err := part.Write(file); err != nil {
		return fmt.Errorf("write multipart file part: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), &buf)
	if err != nil {
		return fmt.Errorf("build graph request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(ctx, c.postClient, req, "POST "+path, out)
}

// BatchRequest is one sub-request of a batch POST.
type BatchRequest struct {
	Method      string `json:"method"`
	RelativeURL string `json:"relative_url"`
	Body        string `json:"body,omitempty"`
}

// BatchResponse is one sub-response of a batch POST.
type BatchResponse struct {
	Code int    `json:"code"`
	Body string `json:"body"`
}

// Batch packs sub-requests into a single POST against the API root and
// unpacks the per-sub-request results. Non-200 sub-responses are logged and
// returned, never turned into a top-level error; the caller decides what a
// partial batch means.
func (c *Client) Batch(ctx context.Context, reqs []BatchRequest) ([]BatchResponse, error) {
	if len(reqs) == 0 {
		return nil, nil
	}
	encoded, err := json.Marshal(reqs)
	if err != nil {
		return nil, fmt.Errorf("encode batch: %w", err)
	}

	fields := url.Values{}
	fields.Set("batch", string(encoded))
	fields.Set("access_token", c.token)
	fields.Set("include_headers", "false")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/%s", c.baseURL, c.version), strings.NewReader(fields.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build batch request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out []BatchResponse
	if err := c.do(ctx, c.postClient, req, "POST /batch", &out); err != nil {
		return nil, err
	}

	for i, sub := range out {
		if sub.Code != http.StatusOK && c.log != nil {
			c.log.WithFields(logger.Fields{
				"index":        i,
				"code":         sub.Code,
				"relative_url": reqs[i].RelativeURL,
				"body":         sub.Body,
			}).Warn("batch sub-request failed")
		}
	}
	return out, nil
}

// Token exposes the configured access token for call sites that must embed
// it in a payload rather than the query string.
func (c *Client) Token() string { return c.token }
