package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/rshade/esgsync/internal/batch"
	"github.com/rshade/esgsync/internal/logging"
)

// Client defaults.
const (
	DefaultTimeout       = 30 * time.Second
	DefaultRatePerSecond = 10
	DefaultBurst         = 5
	DefaultUserAgent     = "esgsync"

	// maxErrorBody caps how much of an error response is kept.
	maxErrorBody = 64 << 10
)

// Config configures a Client. Zero values take the defaults above.
type Config struct {
	BaseURL       string
	Token         string
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
	BulkBatchSize int
	UserAgent     string

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client talks to the disclosure backend.
type Client struct {
	base      *url.URL
	token     string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
	bulkSize  int

	newKey func() string
}

// New validates cfg and returns a Client.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrNoBaseURL
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrBadBaseURL, cfg.BaseURL)
	}

	bulkSize := cfg.BulkBatchSize
	if bulkSize == 0 {
		bulkSize = batch.DefaultSize
	}
	if bulkSize < batch.MinSize || bulkSize > batch.MaxSize {
		return nil, fmt.Errorf("bulk batch size: %w: got %d", batch.ErrInvalidSize, bulkSize)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	rps := cfg.RatePerSecond
	if rps <= 0 {
		rps = DefaultRatePerSecond
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = DefaultBurst
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	return &Client{
		base:      base,
		token:     cfg.Token,
		userAgent: ua,
		http:      hc,
		limiter:   rate.NewLimiter(rate.Limit(rps), burst),
		bulkSize:  bulkSize,
		newKey:    func() string { return uuid.NewString() },
	}, nil
}

// BulkBatchSize returns the number of rows sent per bulk request.
func (c *Client) BulkBatchSize() int { return c.bulkSize }

// companyPath joins escaped segments under /companies/:id.
func companyPath(companyID string, segments ...string) (string, error) {
	if strings.TrimSpace(companyID) == "" {
		return "", ErrNoCompanyID
	}
	parts := make([]string, 0, len(segments)+2)
	parts = append(parts, "companies", url.PathEscape(companyID))
	for _, s := range segments {
		parts = append(parts, url.PathEscape(s))
	}
	return "/" + strings.Join(parts, "/"), nil
}

// do sends body as JSON and decodes a 2xx response into out when out is
// non-nil and the response has a body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, reader)
	if err != nil {
		return fmt.Errorf("building %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if method == http.MethodPost {
		req.Header.Set("Idempotency-Key", c.newKey())
	}

	log := logging.FromContext(ctx)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("http_status", resp.StatusCode).
		Int64(logging.FieldDurationMs, time.Since(start).Milliseconds()).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			Status: resp.StatusCode,
			Method: method,
			Path:   path,
			Body:   strings.TrimSpace(string(raw)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s %s: %w", method, path, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding %s %s: %w", method, path, err)
	}
	return nil
}

// Record is the response of create and upsert calls. The backend either
// returns the record at the top level or wrapped in "data".
type Record struct {
	ID   string `json:"id"`
	Data *struct {
		ID string `json:"id"`
	} `json:"data,omitempty"`
}

// RecordID returns the id wherever the backend put it.
func (r Record) RecordID() string {
	if r.ID != "" {
		return r.ID
	}
	if r.Data != nil {
		return r.Data.ID
	}
	return ""
}
