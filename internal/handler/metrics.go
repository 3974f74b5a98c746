package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storyRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "novel_board_story_requests_total",
			Help: "Total number of story generation requests by kind and status.",
		},
		[]string{"kind", "status"},
	)

	postsSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "novel_board_posts_submitted_total",
		Help: "Total number of posts created on the board.",
	})

	postDeletionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "novel_board_post_deletions_total",
			Help: "Total number of post deletion attempts by result.",
		},
		[]string{"result"},
	)
)
