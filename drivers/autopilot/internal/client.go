package driver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/dataline-io/tap-autopilot/constants"
	"github.com/dataline-io/tap-autopilot/drivers/abstract"
	"github.com/dataline-io/tap-autopilot/utils/logger"
)

// Page is one decoded API response
type Page struct {
	Records       []map[string]any
	Bookmark      string
	TotalContacts int
}

// RequestParams carries the continuation token between page fetches. The
// token travels as a URL path segment, not a query parameter.
type RequestParams struct {
	Bookmark string
}

// RequestError is a non-2xx API response. Statuses in [400,500) other than
// 408 are client errors and abort immediately; everything else is treated
// as transient.
type RequestError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d: %s", e.URL, e.StatusCode, e.Body)
}

func (e *RequestError) Retryable() bool {
	if e.StatusCode == http.StatusRequestTimeout {
		return true
	}
	return e.StatusCode < 400 || e.StatusCode >= 500
}

// Client issues rate-limited, retried GET requests against the Autopilot
// API. The limiter is shared across all fetches of the process.
type Client struct {
	http      *http.Client
	limiter   *rate.Limiter
	baseURL   string
	apiKey    string
	userAgent string
	retries   int
}

func NewClient(config *Config) *Client {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = constants.DefaultBaseURL
	}

	return &Client{
		http:      &http.Client{},
		limiter:   rate.NewLimiter(rate.Every(constants.RequestWindow/constants.RequestsPerWindow), constants.RequestsPerWindow),
		baseURL:   baseURL,
		apiKey:    config.APIKey,
		userAgent: config.UserAgent,
		retries:   constants.MaxFetchAttempts,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Fetch retrieves and decodes one page of the resource
func (c *Client) Fetch(ctx context.Context, resource Resource, url string, params *RequestParams) (*Page, error) {
	descriptor, found := endpoints[resource]
	if !found {
		return nil, fmt.Errorf("invalid endpoint %q", resource)
	}

	requestURL := url
	if params != nil && params.Bookmark != "" {
		requestURL = fmt.Sprintf("%s/%s", url, params.Bookmark)
	}

	var page *Page
	err := abstract.RetryOnBackoff(c.retries, 2*time.Second, func() error {
		fetched, err := c.fetchOnce(ctx, resource, descriptor, requestURL)
		if err != nil {
			return err
		}
		page = fetched
		return nil
	})

	return page, err
}

func (c *Client) fetchOnce(ctx context.Context, resource Resource, descriptor endpoint, url string) (*Page, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %s", url, err)
	}
	request.Header.Set(constants.APIKeyHeader, c.apiKey)
	if c.userAgent != "" {
		request.Header.Set("user-agent", c.userAgent)
	}

	logger.Infof("GET %s", url)

	start := time.Now()
	response, err := c.http.Do(request)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %s", url, err)
	}
	defer response.Body.Close()

	logger.Metric(map[string]any{
		"type":        "timer",
		"metric":      "http_request_duration",
		"endpoint":    string(resource),
		"http_status": response.StatusCode,
		"seconds":     time.Since(start).Seconds(),
	})

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response of %s: %s", url, err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, &RequestError{
			StatusCode: response.StatusCode,
			URL:        url,
			Body:       string(body),
		}
	}

	return decodePage(body, descriptor.accessorKey)
}

func decodePage(body []byte, accessorKey string) (*Page, error) {
	raw := map[string]any{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode page: %s", err)
	}

	rows, found := raw[accessorKey]
	if !found {
		return nil, fmt.Errorf("page missing accessor key %q", accessorKey)
	}
	rawRecords, ok := rows.([]any)
	if !ok {
		return nil, fmt.Errorf("accessor key %q does not hold an array", accessorKey)
	}

	page := &Page{
		Records: make([]map[string]any, 0, len(rawRecords)),
	}
	for _, row := range rawRecords {
		record, ok := row.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("malformed record under %q: %v", accessorKey, row)
		}
		page.Records = append(page.Records, record)
	}

	if bookmark, ok := raw["bookmark"].(string); ok {
		page.Bookmark = bookmark
	}
	if total, ok := raw["total_contacts"].(float64); ok {
		page.TotalContacts = int(total)
	}

	return page, nil
}
