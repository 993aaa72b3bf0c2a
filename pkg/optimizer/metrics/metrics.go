// Package metrics exposes optimizer progress as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sigs.k8s.io/worthsplit/pkg/optimizer/algorithms"
)

const Namespace = "worthsplit"

// Recorder holds the optimizer metrics registered on one registry.
type Recorder struct {
	Generations        prometheus.Counter
	BestFitness        prometheus.Gauge
	AverageFitness     prometheus.Gauge
	Diversity          prometheus.Gauge
	GenerationDuration prometheus.Histogram
	Runs               *prometheus.CounterVec
}

// NewRecorder creates the metrics and registers them on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		Generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "generations_total",
			Help:      "Number of generations evaluated.",
		}),
		BestFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "best_fitness",
			Help:      "Best-known fitness of the current run.",
		}),
		AverageFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "average_fitness",
			Help:      "Mean fitness of the last evaluated generation.",
		}),
		Diversity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "population_diversity",
			Help:      "Mean pairwise fitness difference of the last evaluated generation.",
		}),
		GenerationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "generation_duration_seconds",
			Help:      "Wall time spent on one generation.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "runs_total",
			Help:      "Number of finished runs by terminal state.",
		}, []string{"result"}),
	}
	reg.MustRegister(r.Generations, r.BestFitness, r.AverageFitness, r.Diversity, r.GenerationDuration, r.Runs)
	return r
}

// ObserveGeneration is an algorithms.GenerationHook.
func (r *Recorder) ObserveGeneration(p algorithms.Progress) {
	r.Generations.Inc()
	if f, ok := p.Best.Score(); ok {
		r.BestFitness.Set(f)
	}
	r.AverageFitness.Set(p.Snapshot.AverageFitness)
	r.Diversity.Set(p.Snapshot.AverageDiff)
	r.GenerationDuration.Observe(p.Duration.Seconds())
}

// ObserveRun counts a finished run.
func (r *Recorder) ObserveRun(state algorithms.State) {
	r.Runs.WithLabelValues(state.String()).Inc()
}

// Hook returns an engine option feeding r.
func (r *Recorder) Hook() algorithms.Option {
	return algorithms.WithGenerationHook(r.ObserveGeneration)
}

// NewRegistry returns a registry with the Go and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// NewServer returns an unstarted server exposing Handler under /metrics.
func NewServer(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(reg))
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
