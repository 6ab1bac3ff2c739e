// Package metrics defines the Prometheus instrumentation for the gateway and
// the chat session core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP gateway metrics
	ProxyRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pandacare_proxy_requests_total",
			Help: "Total requests forwarded to the care backend",
		},
		[]string{"method", "route", "status"},
	)

	ProxyRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pandacare_proxy_request_duration_seconds",
			Help:    "Gateway request duration",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	// Chat session metrics
	SessionsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pandacare_chat_sessions_started_total",
			Help: "Total chat sessions started",
		},
	)

	SessionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pandacare_chat_session_failures_total",
			Help: "Chat session failures by reason",
		},
		[]string{"reason"}, // "connect", "transport", "credential"
	)

	FramesReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pandacare_chat_frames_received_total",
			Help: "Inbound frames applied to the message sequence",
		},
		[]string{"channel"}, // "live" or "history"
	)

	FramesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pandacare_chat_frames_dropped_total",
			Help: "Inbound frames dropped because they failed to parse",
		},
	)

	MessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pandacare_chat_messages_sent_total",
			Help: "Outbound chat messages published",
		},
	)
)
