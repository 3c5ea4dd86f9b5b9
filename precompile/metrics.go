// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package precompile

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/precompilevm/utils/metric"
	"github.com/ava-labs/precompilevm/utils/wrappers"
)

const (
	precompileLabel = "precompile"
	statusLabel     = "status"
)

// Metrics counts precompile dispatches. It is safe for concurrent use.
type Metrics struct {
	calls     *prometheus.CounterVec
	gasUsed   *prometheus.HistogramVec
	inputSize *prometheus.HistogramVec
}

func NewMetrics(namespace string, registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "precompile_calls",
				Help:      "Number of precompile invocations by outcome",
			},
			[]string{precompileLabel, statusLabel},
		),
		gasUsed: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "precompile_gas_used",
				Help:      "Gas consumed per precompile invocation",
				Buckets:   metric.GasBuckets,
			},
			[]string{precompileLabel},
		),
		inputSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "precompile_input_bytes",
				Help:      "Size of the input passed to a precompile",
				Buckets:   metric.BytesBuckets,
			},
			[]string{precompileLabel},
		),
	}

	errs := wrappers.Errs{}
	errs.Add(
		registerer.Register(m.calls),
		registerer.Register(m.gasUsed),
		registerer.Register(m.inputSize),
	)
	if errs.Errored() {
		return nil, errs.Err
	}
	return m, nil
}

func (m *Metrics) observe(key string, inputLen int, res *Result) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(key, res.Status.String()).Inc()
	m.gasUsed.WithLabelValues(key).Observe(float64(res.GasUsed))
	m.inputSize.WithLabelValues(key).Observe(float64(inputLen))
}
