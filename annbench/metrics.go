package annbench

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds run counters in a private registry, so several runs
// in one process never collide
type Metrics struct {
	Registry     *prometheus.Registry
	Pairs        prometheus.Counter
	SkippedPairs prometheus.Counter
	Rounds       prometheus.Counter
	MinDistance  prometheus.Gauge
	GroupSize    prometheus.Histogram
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Pairs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hamtri_pairs_total",
			Help: "Total number of candidate pairs inside buckets",
		}),
		SkippedPairs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hamtri_pairs_skipped_total",
			Help: "Number of pairs skipped by the triangle inequality bound",
		}),
		Rounds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hamtri_rounds_total",
			Help: "Number of completed bucketing rounds",
		}),
		MinDistance: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hamtri_min_distance",
			Help: "Running minimum Hamming distance",
		}),
		GroupSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "hamtri_group_size",
			Help:    "Number of vectors per bucket",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
	}
	m.Registry.MustRegister(m.Pairs, m.SkippedPairs, m.Rounds, m.MinDistance, m.GroupSize)
	return m
}

// WriteTextfile dumps all metrics in the Prometheus text format
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}

func (m *Metrics) observeGroup(size int) {
	if m == nil {
		return
	}
	m.GroupSize.Observe(float64(size))
}

func (m *Metrics) observeRound(res GroupsResult, runningMin int) {
	if m == nil {
		return
	}
	m.Rounds.Inc()
	m.Pairs.Add(float64(res.TotalPairs))
	m.SkippedPairs.Add(float64(res.SkippedPairs))
	m.MinDistance.Set(float64(runningMin))
}
