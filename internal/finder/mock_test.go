package finder

import (
	"context"
	"time"

	"github.com/sells-group/venue-cli/pkg/geocode"
)

// mockGeocoder implements geocode.Client for testing.
type mockGeocoder struct {
	result    *geocode.Result
	err       error
	addresses []string
}

func (m *mockGeocoder) Geocode(_ context.Context, address string) (*geocode.Result, error) {
	m.addresses = append(m.addresses, address)
	return m.result, m.err
}

func matchedAt(lat, lng float64) *mockGeocoder {
	return &mockGeocoder{result: &geocode.Result{Latitude: lat, Longitude: lng, Quality: "rooftop", Matched: true}}
}

// recordingSleep captures page delays instead of blocking.
type recordingSleep struct {
	calls []time.Duration
}

func (r *recordingSleep) sleep(d time.Duration) {
	r.calls = append(r.calls, d)
}
