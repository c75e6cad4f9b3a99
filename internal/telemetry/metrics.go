package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics mirror the teacher's utils/metrics package, renamed to this
// service's domain: challenge issuance, verification outcomes, and request
// volume/latency.
var (
	RequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "proof_of_life_requests_total",
		Help: "The total number of HTTP requests received",
	})

	ResponsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "proof_of_life_responses_total",
		Help: "The total number of HTTP responses by status code",
	}, []string{"status"})

	RequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "proof_of_life_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	})

	ChallengesIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "proof_of_life_challenges_issued_total",
		Help: "The total number of challenges issued",
	})

	VerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "proof_of_life_verifications_total",
		Help: "The total number of verification attempts by outcome",
	}, []string{"outcome"})

	LivenessScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "proof_of_life_liveness_score",
		Help:    "Distribution of computed liveness scores",
		Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})

	TokensIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "proof_of_life_tokens_issued_total",
		Help: "The total number of bearer tokens issued",
	})
)
