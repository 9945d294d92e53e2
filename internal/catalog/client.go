package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/wadidirect/storefront-backend/pkg/config"
)

// Request kinds understood by the upstream catalog API.
const (
	KindCategory = "s"
	KindBrand    = "b"
	KindAll      = "all"
)

// Client talks to the third-party catalog API. The upstream pins responses to
// a version token query parameter; requests without it return stale payloads.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	versionToken string
	userAgent    string
}

// NewClient builds the upstream HTTP client. The timeout bounds every request
// so a hung upstream can never block a code path indefinitely.
func NewClient(cfg config.UpstreamConfig) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		versionToken: cfg.VersionToken,
		userAgent:    cfg.UserAgent,
	}
}

// Forward performs one upstream request and returns the status and body
// verbatim. Non-2xx statuses are not an error here; the proxy endpoint passes
// them through untouched.
func (c *Client) Forward(ctx context.Context, kind, name string) (int, []byte, error) {
	return c.get(ctx, fmt.Sprintf("%s/%s/%s", c.baseURL, url.PathEscape(kind), url.PathEscape(name)), nil)
}

// ForwardPage requests one page of the upstream's full product listing.
func (c *Client) ForwardPage(ctx context.Context, page int) (int, []byte, error) {
	query := url.Values{"page": []string{strconv.Itoa(page)}}
	return c.get(ctx, fmt.Sprintf("%s/%s", c.baseURL, KindAll), query)
}

// Fetch returns the response body for a category ("s") or brand ("b")
// request, treating any non-2xx status as an error.
func (c *Client) Fetch(ctx context.Context, kind, name string) ([]byte, error) {
	status, body, err := c.Forward(ctx, kind, name)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("upstream returned status %d for %s/%s", status, kind, name)
	}
	return body, nil
}

// FetchPage is Fetch for the paginated "all" listing.
func (c *Client) FetchPage(ctx context.Context, page int) ([]byte, error) {
	status, body, err := c.ForwardPage(ctx, page)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("upstream returned status %d for page %d", status, page)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, rawURL string, query url.Values) (int, []byte, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("v", c.versionToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+query.Encode(), nil)
	if err != nil {
		return 0, nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("upstream request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read upstream response: %w", err)
	}
	return resp.StatusCode, body, nil
}
