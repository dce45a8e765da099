package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// Chat service metrics - using explicit registration
var (
	// Chat completion counters
	ChatCompletionsTotal *prometheus.CounterVec

	// RAG decision counters
	SearchDecisionsTotal *prometheus.CounterVec

	// Search request counters
	SearchRequestsTotal *prometheus.CounterVec

	// Page fetch counters
	PageFetchesTotal *prometheus.CounterVec

	// Model provider latency
	ProviderLatency *prometheus.HistogramVec
)

// init creates and registers all metrics with the default registry
func init() {
	ChatCompletionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chat",
			Subsystem: "api",
			Name:      "completions_total",
			Help:      "Total number of chat completion requests",
		},
		[]string{"model", "status"},
	)

	SearchDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chat",
			Subsystem: "rag",
			Name:      "search_decisions_total",
			Help:      "RAG decision stage outcomes",
		},
		[]string{"decision"},
	)

	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chat",
			Subsystem: "rag",
			Name:      "search_requests_total",
			Help:      "Search engine calls by engine and status",
		},
		[]string{"engine", "status"},
	)

	PageFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chat",
			Subsystem: "rag",
			Name:      "page_fetches_total",
			Help:      "Web page retrievals by status",
		},
		[]string{"status"},
	)

	ProviderLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "chat",
			Subsystem: "api",
			Name:      "provider_latency_seconds",
			Help:      "LLM provider call duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"provider"},
	)

	for name, collector := range map[string]prometheus.Collector{
		"chat_api_completions_total":        ChatCompletionsTotal,
		"chat_rag_search_decisions_total":   SearchDecisionsTotal,
		"chat_rag_search_requests_total":    SearchRequestsTotal,
		"chat_rag_page_fetches_total":       PageFetchesTotal,
		"chat_api_provider_latency_seconds": ProviderLatency,
	} {
		if err := prometheus.Register(collector); err != nil {
			if _, already := err.(prometheus.AlreadyRegisteredError); !already {
				log.Error().Err(err).Str("metric", name).Msg("failed to register metric")
			}
		}
	}
}
