package searchprovider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"llm-chat-server/internal/domain/search"
	"llm-chat-server/internal/infrastructure/metrics"
)

const serperSearchEndpoint = "https://google.serper.dev/search"

// SerperClient implements search.Engine against the Serper API.
type SerperClient struct {
	httpClient *resty.Client
	endpoint   string
	apiKey     string
	retry      RetryConfig
	descriptor search.EngineDescriptor
}

var _ search.Engine = (*SerperClient)(nil)

// SerperConfig carries the credentials for the Serper backend.
type SerperConfig struct {
	APIKey   string
	Endpoint string // overridable for tests
	Timeout  time.Duration
	Retry    RetryConfig
}

// NewSerperClient validates credentials and builds the long-lived engine.
func NewSerperClient(cfg SerperConfig) (*SerperClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &search.EngineConfigError{Engine: search.EngineSerper, Missing: "SERPER_API_KEY"}
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = serperSearchEndpoint
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	retry := cfg.Retry
	if retry.MaxAttempts == 0 {
		retry = DefaultRetryConfig()
	}

	return &SerperClient{
		httpClient: resty.New().
			SetHeader("Content-Type", "application/json").
			SetTimeout(timeout),
		endpoint: endpoint,
		apiKey:   cfg.APIKey,
		retry:    retry,
		descriptor: search.EngineDescriptor{
			EngineID:           search.EngineSerper,
			Name:               "Serper",
			MaxResultsPerQuery: 10,
		},
	}, nil
}

// Descriptor returns the static engine metadata.
func (c *SerperClient) Descriptor() search.EngineDescriptor {
	return c.descriptor
}

// serperSearchResponse captures the organic results we read.
type serperSearchResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

// Search queries the Serper API, clamping maxResults to the advertised
// per-query maximum.
func (c *SerperClient) Search(ctx context.Context, query string, maxResults int) ([]search.Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &search.QueryError{Engine: search.EngineSerper, Kind: search.QueryErrorEmptyQuery, Err: fmt.Errorf("search query cannot be empty")}
	}
	maxResults = clampResults(maxResults, c.descriptor.MaxResultsPerQuery)

	results, err := withRetry(ctx, c.retry, "serper_search", func() ([]search.Result, error) {
		return c.doSearch(ctx, query, maxResults)
	})
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(string(search.EngineSerper), "error").Inc()
		return nil, err
	}
	metrics.SearchRequestsTotal.WithLabelValues(string(search.EngineSerper), "ok").Inc()
	return results, nil
}

func (c *SerperClient) doSearch(ctx context.Context, query string, maxResults int) ([]search.Result, error) {
	var payload serperSearchResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("X-API-KEY", c.apiKey).
		SetBody(map[string]any{
			"q":   query,
			"num": maxResults,
		}).
		SetResult(&payload).
		Post(c.endpoint)
	if err != nil {
		return nil, &search.QueryError{Engine: search.EngineSerper, Kind: classifyTransportError(err), Err: err}
	}
	if kind, failed := classifyStatus(resp.StatusCode()); failed {
		return nil, &search.QueryError{
			Engine: search.EngineSerper,
			Kind:   kind,
			Err:    fmt.Errorf("serper search API returned status %d", resp.StatusCode()),
		}
	}

	results := make([]search.Result, 0, len(payload.Organic))
	for _, item := range payload.Organic {
		if item.Title == "" || item.Link == "" {
			continue
		}
		results = append(results, search.Result{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		})
	}
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}
