package searchprovider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"llm-chat-server/internal/domain/search"
	"llm-chat-server/internal/infrastructure/metrics"
)

const googleCSEBaseURL = "https://www.googleapis.com/customsearch/v1"

// GoogleClient implements search.Engine against the Google Custom Search
// JSON API.
type GoogleClient struct {
	httpClient *resty.Client
	apiKey     string
	cseID      string
	retry      RetryConfig
	descriptor search.EngineDescriptor
}

var _ search.Engine = (*GoogleClient)(nil)

// GoogleConfig carries the credentials for the Google CSE backend.
type GoogleConfig struct {
	APIKey  string
	CSEID   string
	BaseURL string // overridable for tests
	Timeout time.Duration
	Retry   RetryConfig
}

// NewGoogleClient validates credentials and builds the long-lived engine.
func NewGoogleClient(cfg GoogleConfig) (*GoogleClient, error) {
	if cfg.APIKey == "" {
		return nil, &search.EngineConfigError{Engine: search.EngineGoogle, Missing: "GOOGLE_CSE_API_KEY"}
	}
	if cfg.CSEID == "" {
		return nil, &search.EngineConfigError{Engine: search.EngineGoogle, Missing: "GOOGLE_CSE_ID"}
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = googleCSEBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	retry := cfg.Retry
	if retry.MaxAttempts == 0 {
		retry = DefaultRetryConfig()
	}

	return &GoogleClient{
		httpClient: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout),
		apiKey: cfg.APIKey,
		cseID:  cfg.CSEID,
		retry:  retry,
		descriptor: search.EngineDescriptor{
			EngineID:           search.EngineGoogle,
			Name:               "Google Custom Search",
			MaxResultsPerQuery: 10,
		},
	}, nil
}

// Descriptor returns the static engine metadata.
func (c *GoogleClient) Descriptor() search.EngineDescriptor {
	return c.descriptor
}

// googleSearchResponse captures the CSE payload fields we read.
type googleSearchResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

// Search queries the CSE API, clamping maxResults to the advertised
// per-query maximum. A successful call with zero matches returns an empty
// slice, not an error.
func (c *GoogleClient) Search(ctx context.Context, query string, maxResults int) ([]search.Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &search.QueryError{Engine: search.EngineGoogle, Kind: search.QueryErrorEmptyQuery, Err: fmt.Errorf("search query cannot be empty")}
	}
	maxResults = clampResults(maxResults, c.descriptor.MaxResultsPerQuery)

	results, err := withRetry(ctx, c.retry, "google_search", func() ([]search.Result, error) {
		return c.doSearch(ctx, query, maxResults)
	})
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(string(search.EngineGoogle), "error").Inc()
		return nil, err
	}
	metrics.SearchRequestsTotal.WithLabelValues(string(search.EngineGoogle), "ok").Inc()
	return results, nil
}

func (c *GoogleClient) doSearch(ctx context.Context, query string, maxResults int) ([]search.Result, error) {
	var payload googleSearchResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":   query,
			"key": c.apiKey,
			"cx":  c.cseID,
			"num": strconv.Itoa(maxResults),
		}).
		SetResult(&payload).
		Get("")
	if err != nil {
		return nil, &search.QueryError{Engine: search.EngineGoogle, Kind: classifyTransportError(err), Err: err}
	}
	if kind, failed := classifyStatus(resp.StatusCode()); failed {
		return nil, &search.QueryError{
			Engine: search.EngineGoogle,
			Kind:   kind,
			Err:    fmt.Errorf("google search API returned status %d", resp.StatusCode()),
		}
	}

	if len(payload.Items) == 0 {
		log.Warn().Str("query", query).Msg("no google search results found")
		return []search.Result{}, nil
	}

	results := make([]search.Result, 0, len(payload.Items))
	for _, item := range payload.Items {
		if item.Title == "" || item.Link == "" {
			continue
		}
		results = append(results, search.Result{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		})
	}
	return results, nil
}

// clampResults bounds the requested result count to [1, max].
func clampResults(requested, max int) int {
	if requested < 1 {
		return 1
	}
	if requested > max {
		return max
	}
	return requested
}

// classifyStatus maps provider HTTP statuses onto query error kinds.
func classifyStatus(status int) (search.QueryErrorKind, bool) {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return search.QueryErrorAuth, true
	case status == http.StatusTooManyRequests:
		return search.QueryErrorRateLimit, true
	case status >= 400:
		return search.QueryErrorGeneric, true
	default:
		return "", false
	}
}

// classifyTransportError distinguishes timeouts from connection failures.
func classifyTransportError(err error) search.QueryErrorKind {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return search.QueryErrorTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return search.QueryErrorTimeout
	}
	return search.QueryErrorConnection
}
