package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var (
	SearchTrials = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ldpc_search_trials_total",
			Help: "Number of candidate parity matrices evaluated by the design search",
		},
		[]string{"result"}, // scored, improved, failed
	)
	SearchBestCycles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ldpc_search_best_4cycles",
			Help: "Fewest length 4 cycles found so far",
		},
	)
	DecodedFrames = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ldpc_decoded_frames_total",
			Help: "Number of frames decoded",
		},
		[]string{"converged"},
	)
	DecodeIterations = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ldpc_decode_iterations",
			Help:    "Decoder iterations used per frame",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)
	BitErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ldpc_bit_errors_total",
			Help: "Bit errors remaining after decoding",
		},
		[]string{"part"}, // message, codeword
	)
)

// ObserveDecode records one decoded frame.
func ObserveDecode(iterations int, converged bool) {
	label := "false"
	if converged {
		label = "true"
	}
	DecodedFrames.WithLabelValues(label).Inc()
	DecodeIterations.Observe(float64(iterations))
}

// Serve exposes the metrics on addr under /metrics until ctx is done.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logrus.Warnf("metrics server shutdown: %v", err)
		}
	}()

	logrus.Infof("serving metrics on %v/metrics", addr)
	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
