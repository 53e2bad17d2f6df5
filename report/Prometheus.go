package report

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus is a Reporter which exports the latest value of each
// result as a gauge labelled by its scope path and name, and counts
// entered scopes
type Prometheus struct {
	mu      sync.Mutex
	scopes  scopes
	results *prometheus.GaugeVec
	entered prometheus.Counter
}

// NewPrometheus returns a new Prometheus Reporter whose collectors are
// registered with reg
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	p := &Prometheus{
		results: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "smallmdp_result",
			Help: "Latest value of each reported result",
		}, []string{"scope", "name"}),
		entered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smallmdp_scopes_total",
			Help: "Number of scopes entered",
		}),
	}

	for _, c := range []prometheus.Collector{p.results, p.entered} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("newPrometheus: could not register "+
				"collector: %v", err)
		}
	}
	return p, nil
}

// EnterScope implements the Reporter interface
func (p *Prometheus) EnterScope(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.scopes.push(name)
	p.entered.Inc()
}

// LeaveScope implements the Reporter interface
func (p *Prometheus) LeaveScope() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scopes.pop()
}

// Result implements the Reporter interface
func (p *Prometheus) Result(name string, value float64) {
	p.mu.Lock()
	scope := p.scopes.String()
	p.mu.Unlock()

	p.results.WithLabelValues(scope, name).Set(value)
}

// Collectors returns the collectors of the Reporter
func (p *Prometheus) Collectors() []prometheus.Collector {
	return []prometheus.Collector{p.results, p.entered}
}
