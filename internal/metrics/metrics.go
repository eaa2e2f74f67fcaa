package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Auth metrics

	GuardOutcomesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "account",
		Name:      "auth_guard_outcomes_total",
		Help:      "Access guard decisions, by outcome and rejection kind.",
	}, []string{"outcome", "kind"})

	LoginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "account",
		Name:      "logins_total",
		Help:      "Login attempts, by result.",
	}, []string{"result"})

	// User metrics

	UsersCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "account",
		Name:      "users_created_total",
		Help:      "Users successfully created.",
	})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "account",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "account",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		GuardOutcomesTotal,
		LoginsTotal,
		UsersCreatedTotal,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}

func NewServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{Addr: addr, Handler: mux}
}
