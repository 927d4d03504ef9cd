package grover

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// circuitsBuilt counts compiled circuits by kind ("oracle", "grover").
	circuitsBuilt = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cubeq_circuits_built_total",
		Help: "Circuits compiled, by kind",
	}, []string{"kind"})

	circuitGates = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cubeq_circuit_gates",
		Help:    "Gate count of assembled search circuits",
		Buckets: prometheus.ExponentialBuckets(16, 4, 8),
	})

	backendErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cubeq_backend_errors_total",
		Help: "Backend runs that returned an error",
	})

	runSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cubeq_run_seconds",
		Help:    "Wall time of successful engine runs",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	})
)
