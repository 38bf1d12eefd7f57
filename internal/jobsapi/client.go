package jobsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"google.golang.org/api/idtoken"

	"github.com/octobees/job-market-dashboard/internal/metrics"
	"github.com/octobees/job-market-dashboard/internal/search"
)

const (
	defaultLookupTimeout = 20 * time.Second
	defaultSearchTimeout = 60 * time.Second
	maxBodyBytes         = 16 << 20
)

// Source is the set of job API operations the dashboard depends on.
type Source interface {
	Search(ctx context.Context, q search.Query) (SearchPage, error)
	Lookup(ctx context.Context, kind LookupKind) ([]string, error)
	Skills(ctx context.Context) ([]string, error)
	TopZones(ctx context.Context, zone Zone) ([]ZoneCount, error)
	TopSkills(ctx context.Context) ([]SkillCount, error)
}

// Options tunes a Client.
type Options struct {
	LookupTimeout time.Duration
	SearchTimeout time.Duration
	// Audience enables Google ID-token authentication when no client is supplied.
	Audience string
	Logger   *slog.Logger
}

// Client calls the remote job data API.
type Client struct {
	client        *http.Client
	baseURL       string
	lookupTimeout time.Duration
	searchTimeout time.Duration
	logger        *slog.Logger
}

// NewClient builds a job API client. When client is nil and an audience is configured it
// uses an ID-token client, otherwise a plain client bounded by the search timeout.
func NewClient(client *http.Client, baseURL string, opts Options) *Client {
	if baseURL == "" {
		panic("jobs api baseURL must not be empty")
	}
	baseURL = strings.TrimRight(baseURL, "/")

	if opts.LookupTimeout <= 0 {
		opts.LookupTimeout = defaultLookupTimeout
	}
	if opts.SearchTimeout <= 0 {
		opts.SearchTimeout = defaultSearchTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if client == nil && opts.Audience != "" {
		idc, err := idtoken.NewClient(context.Background(), opts.Audience)
		if err != nil {
			opts.Logger.Warn("id token client unavailable, falling back to anonymous calls", "error", err)
		} else {
			client = idc
		}
	}
	if client == nil {
		client = &http.Client{Timeout: opts.SearchTimeout}
	}

	return &Client{
		client:        client,
		baseURL:       baseURL,
		lookupTimeout: opts.LookupTimeout,
		searchTimeout: opts.SearchTimeout,
		logger:        opts.Logger,
	}
}

// SearchPage is the decoded body of GET /search.
type SearchPage struct {
	Records    []search.Record `json:"data"`
	TotalCount int             `json:"total_count"`
}

// Search runs a filtered, paginated search.
func (c *Client) Search(ctx context.Context, q search.Query) (SearchPage, error) {
	path := "/search"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var page SearchPage
	if err := c.getJSON(ctx, "/search", path, c.searchTimeout, searchSchema, &page); err != nil {
		return SearchPage{}, err
	}
	if page.Records == nil {
		page.Records = []search.Record{}
	}
	return page, nil
}

type requestIDKey struct{}

// WithRequestID attaches a request id that is forwarded to the job API.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func requestIDFrom(ctx context.Context) string {
	rid, _ := ctx.Value(requestIDKey{}).(string)
	return rid
}

// getJSON performs a GET, validates the body against schema and decodes it into out.
// endpoint is the label used for metrics and errors.
func (c *Client) getJSON(ctx context.Context, endpoint, path string, timeout time.Duration, schema *jsonschema.Schema, out any) error {
	started := time.Now()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create job api request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if rid := requestIDFrom(ctx); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.ObserveUpstream(endpoint, metrics.OutcomeTransport, started)
		c.logger.Warn("job api request failed", "endpoint", endpoint, "error", err)
		return fmt.Errorf("%w: GET %s: %w", ErrTransport, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ObserveUpstream(endpoint, metrics.OutcomeStatus, started)
		statusErr := &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Message: extractAPIError(resp.Body)}
		c.logger.Warn("job api returned an error status", "endpoint", endpoint, "status", resp.StatusCode)
		return statusErr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		metrics.ObserveUpstream(endpoint, metrics.OutcomeTransport, started)
		return fmt.Errorf("%w: read %s body: %w", ErrTransport, endpoint, err)
	}

	if err := validateBody(schema, body); err != nil {
		metrics.ObserveUpstream(endpoint, metrics.OutcomeMalformed, started)
		c.logger.Warn("job api body rejected", "endpoint", endpoint, "error", err)
		return fmt.Errorf("%w: %s: %w", ErrMalformed, endpoint, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		metrics.ObserveUpstream(endpoint, metrics.OutcomeMalformed, started)
		return fmt.Errorf("%w: could not decode %s: %w", ErrMalformed, endpoint, err)
	}

	metrics.ObserveUpstream(endpoint, metrics.OutcomeOK, started)
	return nil
}

// IsTimeout reports whether err came from a deadline expiring.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

var _ Source = (*Client)(nil)
