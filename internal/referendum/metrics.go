package referendum

import (
	"github.com/prometheus/client_golang/prometheus"
)

const resultOK = "ok"

// Metrics counts operation outcomes. A nil *Metrics records nothing.
type Metrics struct {
	operations *prometheus.CounterVec
	halted     prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "referendum",
			Name:      "operations_total",
			Help:      "Referendum operations by operation and result (ok or error name).",
		}, []string{"operation", "result"}),
		halted: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "referendum",
			Name:      "halted",
			Help:      "1 while the emergency stop is active.",
		}),
	}
	for _, c := range []prometheus.Collector{m.operations, m.halted} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(op string, err error) {
	if m == nil {
		return
	}
	result := resultOK
	if err != nil {
		result = NameOf(err)
		if result == "" {
			result = "error"
		}
	}
	m.operations.WithLabelValues(op, result).Inc()
}

func (m *Metrics) setHalted(halted bool) {
	if m == nil {
		return
	}
	if halted {
		m.halted.Set(1)
		return
	}
	m.halted.Set(0)
}
