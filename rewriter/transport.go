package rewriter

import (
	"fmt"
	"net/http"
)

// Transport is an http.RoundTripper that sends every request through the
// gateway. A request that cannot be rewritten fails and is never sent to its
// original host.
type Transport struct {
	// Gateway is the gateway URL; only its host is used.
	Gateway string
	// Options apply to every request.
	Options Options
	// Base performs the rewritten request. Nil means http.DefaultTransport.
	Base http.RoundTripper

	logger  Logger
	metrics *Metrics
}

// NewTransport creates a Transport. A nil base uses http.DefaultTransport.
func NewTransport(gateway string, opts Options, base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{
		Gateway: gateway,
		Options: opts,
		Base:    base,
		logger:  NoOpLogger{},
	}
}

// SetLogger sets a custom logger
func (t *Transport) SetLogger(logger Logger) {
	if logger == nil {
		logger = NoOpLogger{}
	}
	t.logger = logger
}

// SetMetrics enables Prometheus metrics
func (t *Transport) SetMetrics(m *Metrics) {
	t.metrics = m
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	desc, err := Rewrite(t.Gateway, req.URL.String(), t.Options)
	t.metrics.recordRewrite(err)
	if err != nil {
		// RoundTrip must close the body, including on errors.
		if req.Body != nil {
			req.Body.Close()
		}
		t.log().Warn("refusing to send request that cannot be rewritten: ", err)
		return nil, fmt.Errorf("gateway rewrite: %w", err)
	}

	out := desc.Apply(req)
	t.log().Debug("routing ", req.Method, " ", req.URL.Redacted(), " via ", desc.URL.Host, " headers=", desc.RedactedHeaders())
	t.metrics.recordForward(desc.TargetHost())
	return t.base().RoundTrip(out)
}

func (t *Transport) base() http.RoundTripper {
	if t.Base == nil {
		return http.DefaultTransport
	}
	return t.Base
}

func (t *Transport) log() Logger {
	if t.logger == nil {
		return NoOpLogger{}
	}
	return t.logger
}

// NewClient returns an http.Client that routes all requests through the
// gateway and applies the options' timeout interval as the client timeout.
func NewClient(gateway string, opts Options, base http.RoundTripper) *http.Client {
	timeout := opts.TimeoutInterval
	if timeout <= 0 {
		timeout = DefaultTimeoutInterval
	}
	return &http.Client{
		Transport: NewTransport(gateway, opts, base),
		Timeout:   timeout,
	}
}
