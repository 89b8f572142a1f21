// SPDX-License-Identifier: MIT

package pipeline

import "github.com/prometheus/client_golang/prometheus"

// Outcome label values of lvmesh_channel_solves_total.
const (
	outcomeApplied = "applied"
	outcomeFailed  = "failed"
)

type metrics struct {
	solves    *prometheus.CounterVec
	decompose prometheus.Histogram
}

func newMetrics() *metrics {
	return &metrics{
		solves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lvmesh_channel_solves_total",
				Help: "Channel current solves by outcome",
			},
			[]string{"outcome"},
		),
		decompose: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lvmesh_decompose_duration_seconds",
				Help:    "Duration of unitary decomposition and label mapping",
				Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
			},
		),
	}
}

func (m *metrics) register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.solves, m.decompose} {
		if err := r.Register(c); err != nil {
			return err
		}
	}

	return nil
}
