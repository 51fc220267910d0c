package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "viralscout_searches_total",
			Help: "Total number of viral content searches executed",
		},
		[]string{"platform", "status"},
	)

	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "viralscout_search_duration_seconds",
			Help:    "Duration of the submit/poll/fetch chain in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
		},
		[]string{"platform"},
	)

	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "viralscout_provider_requests_total",
			Help: "Total HTTP requests issued to the job provider",
		},
		[]string{"endpoint", "status"},
	)

	PollAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "viralscout_poll_attempts_total",
			Help: "Run status poll attempts grouped by observed status",
		},
		[]string{"platform", "status"},
	)

	PagesDeliveredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "viralscout_pages_delivered_total",
			Help: "Result pages delivered to requesters",
		},
		[]string{"kind"},
	)
)

// RecordSearch updates the search metrics for one orchestration run.
func RecordSearch(platform string, results int, elapsed time.Duration) {
	status := "success"
	if results == 0 {
		status = "empty"
	}
	SearchesTotal.WithLabelValues(platform, status).Inc()
	SearchDuration.WithLabelValues(platform).Observe(elapsed.Seconds())
}

// Server encapsulates an HTTP server for Prometheus metrics.
type Server struct {
	srv *http.Server
}

// Start begins listening on the specified port and exposes /metrics.
func Start(port int) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	go func() {
		// Suppress the error from intentional shutdown
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("metrics server failed: %v\n", err)
		}
	}()

	return &Server{srv: srv}
}

// Stop gracefully shuts down the metrics server.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
