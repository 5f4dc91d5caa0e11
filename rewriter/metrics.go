package rewriter

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus collectors for Transport.
type Metrics struct {
	rewrites *prometheus.CounterVec // Rewrites by result
	requests *prometheus.CounterVec // Forwarded requests by target host
}

// NewMetrics creates the collectors and registers them with reg. A nil
// registerer leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		rewrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gateway_rewriter",
			Name:      "rewrites_total",
			Help:      "Requests rewritten to the gateway, by result",
		}, []string{"result"}),

		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gateway_rewriter",
			Name:      "forwarded_requests_total",
			Help:      "Requests sent through the gateway, by original host",
		}, []string{"target_host"}),
	}

	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.rewrites, m.requests} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) recordRewrite(err error) {
	if m == nil {
		return
	}
	m.rewrites.WithLabelValues(resultLabel(err)).Inc()
}

func (m *Metrics) recordForward(targetHost string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(targetHost).Inc()
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidTargetURL):
		return "invalid_target_url"
	case errors.Is(err, ErrInvalidGatewayURL):
		return "invalid_gateway_url"
	case errors.Is(err, ErrURLReconstructionFailed):
		return "url_reconstruction_failed"
	default:
		return "error"
	}
}
