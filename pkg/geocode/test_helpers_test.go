package geocode

import (
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"
)

func unlimited() *rate.Limiter {
	return rate.NewLimiter(rate.Inf, 1)
}

// geocodeAPIRedirect sends requests aimed at the production geocode
// endpoint to srvURL instead, keeping the query string.
func geocodeAPIRedirect(srvURL string) *http.Client {
	return &http.Client{Transport: geocodeRedirect{to: srvURL}}
}

type geocodeRedirect struct {
	to string
}

func (g geocodeRedirect) RoundTrip(req *http.Request) (*http.Response, error) {
	target := req.URL.String()
	if !strings.HasPrefix(target, defaultBaseURL) {
		return http.DefaultTransport.RoundTrip(req)
	}
	u, err := url.Parse(g.to + strings.TrimPrefix(target, defaultBaseURL))
	if err != nil {
		return nil, err
	}
	out := req.Clone(req.Context())
	out.URL = u
	out.Host = u.Host
	return http.DefaultTransport.RoundTrip(out)
}
