// Package metrics exposes Prometheus counters for bot activity.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"fitbot/core/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"log/slog"
)

var (
	// CommandsTotal counts handled commands by name and outcome.
	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fitbot_commands_total",
		Help: "Handled bot commands by command name and outcome.",
	}, []string{"command", "outcome"})

	// ProfilesCompletedTotal counts finished profile setups.
	ProfilesCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fitbot_profiles_completed_total",
		Help: "Profile setup dialogues completed successfully.",
	})

	// WaterLoggedMlTotal sums logged water across all users.
	WaterLoggedMlTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fitbot_water_logged_ml_total",
		Help: "Total milliliters of water logged.",
	})

	// ExternalRequestDuration tracks latency of weather and food lookups.
	ExternalRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fitbot_external_request_duration_seconds",
		Help:    "Latency of external provider calls.",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider", "outcome"})
)

// RegisterSessionsGauge exports the current session count via the given reader.
func RegisterSessionsGauge(count func() int) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "fitbot_active_sessions",
		Help: "User sessions currently held in memory.",
	}, func() float64 { return float64(count()) })
}

// ObserveExternal records one external provider call.
func ObserveExternal(provider string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "fail"
	}
	ExternalRequestDuration.WithLabelValues(provider, outcome).Observe(time.Since(start).Seconds())
}

// Serve runs the Prometheus scrape endpoint until ctx is canceled.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.L.With("component", "metrics").Info("metrics listening",
		slog.String("event", "listen"),
		slog.String("listen", addr),
	)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
