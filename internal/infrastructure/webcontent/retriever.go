// Package webcontent fetches web pages and reduces them to clean text
// suitable for summarization.
package webcontent

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"llm-chat-server/internal/infrastructure/metrics"
)

const (
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// maxContentChars bounds the text handed to the summarizer: roughly
	// 10k tokens at ~4 chars per token.
	maxContentChars = 40000
)

// skippedElements are boilerplate containers whose text never reaches the
// summarizer.
var skippedElements = map[string]struct{}{
	"script": {},
	"style":  {},
	"nav":    {},
	"footer": {},
	"header": {},
	"aside":  {},
}

// Retriever fetches a URL with a bounded timeout and strips markup down to
// line-based text. Any fetch or parse failure yields an empty string; a
// single failed page must never abort the caller's flow.
type Retriever struct {
	httpClient *resty.Client
	log        zerolog.Logger
}

// NewRetriever builds the retriever with the given per-fetch timeout.
func NewRetriever(timeout time.Duration, log zerolog.Logger) *Retriever {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Retriever{
		httpClient: resty.New().
			SetHeader("User-Agent", browserUserAgent).
			SetTimeout(timeout),
		log: log.With().Str("component", "web-retriever").Logger(),
	}
}

// Retrieve fetches and cleans the page behind url, truncating to the
// content budget with a "..." marker when cut.
func (r *Retriever) Retrieve(ctx context.Context, url string) string {
	resp, err := r.httpClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		r.log.Error().Err(err).Str("url", url).Msg("failed to fetch page")
		metrics.PageFetchesTotal.WithLabelValues("error").Inc()
		return ""
	}
	if resp.IsError() {
		r.log.Error().Int("status", resp.StatusCode()).Str("url", url).Msg("page fetch returned error status")
		metrics.PageFetchesTotal.WithLabelValues("error").Inc()
		return ""
	}

	content := extractText(resp.Body())
	if content == "" {
		metrics.PageFetchesTotal.WithLabelValues("empty").Inc()
		return ""
	}

	if len(content) > maxContentChars {
		// Back off to a rune boundary so the cut never splits a
		// multi-byte character.
		cut := maxContentChars
		for cut > 0 && !utf8.RuneStart(content[cut]) {
			cut--
		}
		r.log.Debug().
			Str("url", url).
			Int("original_len", len(content)).
			Int("truncated_len", cut).
			Msg("page content truncated")
		content = content[:cut] + "..."
	}

	metrics.PageFetchesTotal.WithLabelValues("ok").Inc()
	return content
}

// extractText walks the parsed document collecting visible text nodes,
// skipping boilerplate containers, one trimmed line per text node.
func extractText(raw []byte) string {
	doc, err := html.Parse(strings.NewReader(string(raw)))
	if err != nil {
		return ""
	}

	var lines []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if _, skip := skippedElements[n.Data]; skip {
				return
			}
		}
		if n.Type == html.TextNode {
			if line := strings.TrimSpace(n.Data); line != "" {
				lines = append(lines, line)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(lines, "\n")
}
