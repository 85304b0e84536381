// Package metrics implements ports.Metrics with Prometheus collectors.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/layer-3/inkgate/ports"
)

// Prometheus records pipeline activity in Prometheus collectors
type Prometheus struct {
	authAttempts   *prometheus.CounterVec
	signedRequests *prometheus.CounterVec
	gateDecisions  *prometheus.CounterVec
}

// NewPrometheus creates the collectors and registers them with reg
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	p := &Prometheus{
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inkgate",
			Name:      "auth_attempts_total",
			Help:      "Credential flow submissions by flow and outcome.",
		}, []string{"flow", "outcome"}),
		signedRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inkgate",
			Name:      "outbound_requests_total",
			Help:      "Outbound API requests by whether a bearer token was attached.",
		}, []string{"signed"}),
		gateDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inkgate",
			Name:      "gate_decisions_total",
			Help:      "Access gate decisions by result.",
		}, []string{"decision"}),
	}

	for _, c := range []prometheus.Collector{p.authAttempts, p.signedRequests, p.gateDecisions} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (p *Prometheus) AuthAttempt(flow, outcome string) {
	p.authAttempts.WithLabelValues(flow, outcome).Inc()
}

func (p *Prometheus) RequestSigned(signed bool) {
	p.signedRequests.WithLabelValues(strconv.FormatBool(signed)).Inc()
}

func (p *Prometheus) GateDecision(allowed bool) {
	decision := "redirect"
	if allowed {
		decision = "render"
	}
	p.gateDecisions.WithLabelValues(decision).Inc()
}

// Nop discards every observation
type Nop struct{}

func (Nop) AuthAttempt(string, string) {}
func (Nop) RequestSigned(bool)         {}
func (Nop) GateDecision(bool)          {}

var (
	_ ports.Metrics = (*Prometheus)(nil)
	_ ports.Metrics = Nop{}
)
