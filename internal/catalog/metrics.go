package catalog

import "github.com/prometheus/client_golang/prometheus"

// Mutations counts successful writes by operation. A nil *Mutations is a no-op.
type Mutations struct {
	total *prometheus.CounterVec
}

func NewMutations(reg prometheus.Registerer) *Mutations {
	m := &Mutations{
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_products_mutations_total",
				Help: "Product writes by operation",
			},
			[]string{"op"},
		),
	}
	reg.MustRegister(m.total)
	return m
}

func (m *Mutations) Inc(op string) {
	if m == nil {
		return
	}
	m.total.WithLabelValues(op).Inc()
}
