package ai

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "novel_board_ai_requests_total",
			Help: "Total number of attempts sent to the AI API, by outcome.",
		},
		[]string{"model", "status"},
	)
	aiGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "novel_board_ai_generations_total",
			Help: "Total number of logical generation calls, after retries.",
		},
		[]string{"model", "outcome"},
	)
	aiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "novel_board_ai_request_duration_seconds",
			Help:    "Duration of single AI API attempts.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model"},
	)
	aiPromptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "novel_board_ai_prompt_tokens",
			Help:    "Prompt tokens per successful generation.",
			Buckets: prometheus.LinearBuckets(100, 100, 20), // 100, 200, ..., 2000
		},
		[]string{"model"},
	)
	aiCompletionTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "novel_board_ai_completion_tokens",
			Help:    "Completion tokens per successful generation.",
			Buckets: prometheus.LinearBuckets(50, 50, 20), // 50, 100, ..., 1000
		},
		[]string{"model"},
	)
)
