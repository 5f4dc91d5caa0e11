package rewriter

import (
	"context"
	"io"
	"net/http"
)

// Header returns the gateway headers as an http.Header.
func (d *Descriptor) Header() http.Header {
	h := make(http.Header, len(d.Headers))
	for name, value := range d.Headers {
		h.Set(name, value)
	}
	return h
}

// NewRequest builds an *http.Request for the descriptor. The cache policy is
// expressed as Cache-Control (and Pragma) request directives.
func (d *Descriptor) NewRequest(ctx context.Context, method string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, d.URL.String(), body)
	if err != nil {
		return nil, err
	}
	d.applyHeaders(req.Header)
	return req, nil
}

// Apply returns a clone of req addressed to the gateway. Method, body and
// non-gateway headers of req are kept; gateway headers already on req are
// replaced by the descriptor's.
func (d *Descriptor) Apply(req *http.Request) *http.Request {
	out := req.Clone(req.Context())
	u := *d.URL
	out.URL = &u
	out.Host = ""
	d.applyHeaders(out.Header)
	return out
}

func (d *Descriptor) applyHeaders(h http.Header) {
	for key := range h {
		if IsGatewayHeader(key) {
			h.Del(key)
		}
	}
	for name, value := range d.Headers {
		h.Set(name, value)
	}

	cacheControl, pragma := d.CachePolicy.cacheControl()
	if cacheControl != "" && h.Get("Cache-Control") == "" {
		h.Set("Cache-Control", cacheControl)
	}
	if pragma != "" && h.Get("Pragma") == "" {
		h.Set("Pragma", pragma)
	}
}
