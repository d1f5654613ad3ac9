package transit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Boarder fetches stationboards. Implemented by *Client; fakeable in tests.
type Boarder interface {
	Stationboard(ctx context.Context, query StationboardQuery) (*StationboardResponse, error)
}

var _ Boarder = (*Client)(nil)

// Client talks to the search.ch timetable HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultBaseURL   = "https://search.ch/timetable/api"
	defaultUserAgent = "busdisplay/1.0"
	defaultTimeout   = 10 * time.Second

	// DefaultConnectionLimit is the per-request result cap when a stop does
	// not override it.
	DefaultConnectionLimit = 100
)

// NewClient builds a Client against baseURL (empty uses the production API).
// timeout bounds each request; zero uses the default.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}, nil
}

// StationboardQuery configures one stationboard request.
type StationboardQuery struct {
	StopID              string
	TransportationTypes []string // defaults to bus,tram
	Limit               int      // defaults to DefaultConnectionLimit
}

// Stationboard retrieves the departure board for one stop.
func (c *Client) Stationboard(ctx context.Context, query StationboardQuery) (*StationboardResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(query.StopID) == "" {
		return nil, fmt.Errorf("stop id required")
	}

	types := query.TransportationTypes
	if len(types) == 0 {
		types = []string{"bus", "tram"}
	}
	limit := query.Limit
	if limit <= 0 {
		limit = DefaultConnectionLimit
	}

	values := url.Values{}
	values.Set("stop", query.StopID)
	values.Set("transportation_types", strings.Join(types, ","))
	values.Set("limit", strconv.Itoa(limit))

	rel := &url.URL{Path: "stationboard.fr.json", RawQuery: values.Encode()}
	var payload StationboardResponse
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
