package optimizerclient

import (
	"net/http"

	"github.com/google/uuid"
)

const userAgent = "medalytics"

// headerTransport stamps every outgoing request with the client headers and a
// fresh request id so calls can be matched in the optimizer's logs.
type headerTransport struct {
	base         http.RoundTripper
	extraHeaders http.Header
}

func newHeaderTransport(base http.RoundTripper) *headerTransport {
	return &headerTransport{
		base:         base,
		extraHeaders: make(http.Header),
	}
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	t.injectHeaders(clone)

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(clone)
}

func (t *headerTransport) injectHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.New().String())
	}

	for k, vs := range t.extraHeaders {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}
}
