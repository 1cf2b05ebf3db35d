package google

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/place"

// DetailFields are the Place Details fields a venue lookup requests.
var DetailFields = []string{"name", "formatted_address", "formatted_phone_number", "rating"}

// Client performs Google Places API operations.
type Client interface {
	NearbySearch(ctx context.Context, req NearbySearchRequest) (*NearbySearchResponse, error)
	PlaceDetails(ctx context.Context, placeID string, fields []string) (*PlaceDetails, error)
}

// LatLng is a geographic coordinate pair.
type LatLng struct {
	Latitude  float64
	Longitude float64
}

// NearbySearchRequest scopes a Nearby Search call.
type NearbySearchRequest struct {
	Location     LatLng
	RadiusMeters int
	Keyword      string
	PageToken    string
}

// NearbySearchResponse is one page of Nearby Search results.
type NearbySearchResponse struct {
	Results       []PlaceSummary `json:"results"`
	NextPageToken string         `json:"next_page_token,omitempty"`
	Status        string         `json:"status"`
	ErrorMessage  string         `json:"error_message,omitempty"`
}

// PlaceSummary is a search candidate; only PlaceID is needed to fetch details.
type PlaceSummary struct {
	PlaceID string `json:"place_id"`
	Name    string `json:"name"`
}

// PlaceDetails holds the requested detail fields. Any field may be empty.
type PlaceDetails struct {
	Name                 string  `json:"name"`
	FormattedAddress     string  `json:"formatted_address"`
	FormattedPhoneNumber string  `json:"formatted_phone_number"`
	Rating               float64 `json:"rating"`

	// Status is the response status. A place that no longer resolves comes
	// back empty with NOT_FOUND, ZERO_RESULTS or INVALID_REQUEST here.
	Status string `json:"-"`
}

type placeDetailsResponse struct {
	Result       *PlaceDetails `json:"result"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit caps outbound requests per second. Zero or less disables limiting.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Google Places API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{},
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) NearbySearch(ctx context.Context, req NearbySearchRequest) (*NearbySearchResponse, error) {
	params := url.Values{
		"location": {formatLatLng(req.Location)},
		"radius":   {strconv.Itoa(req.RadiusMeters)},
		"key":      {c.apiKey},
	}
	if req.Keyword != "" {
		params.Set("keyword", req.Keyword)
	}
	if req.PageToken != "" {
		params.Set("pagetoken", req.PageToken)
	}

	var result NearbySearchResponse
	if err := c.get(ctx, "/nearbysearch/json", params, &result); err != nil {
		return nil, eris.Wrap(err, "google: nearby search")
	}
	if err := checkStatus(result.Status, result.ErrorMessage); err != nil {
		return nil, eris.Wrap(err, "google: nearby search")
	}
	return &result, nil
}

func (c *httpClient) PlaceDetails(ctx context.Context, placeID string, fields []string) (*PlaceDetails, error) {
	if placeID == "" {
		return nil, eris.New("google: place details: empty place id")
	}
	params := url.Values{
		"place_id": {placeID},
		"key":      {c.apiKey},
	}
	if len(fields) > 0 {
		params.Set("fields", strings.Join(fields, ","))
	}

	var result placeDetailsResponse
	if err := c.get(ctx, "/details/json", params, &result); err != nil {
		return nil, eris.Wrapf(err, "google: place details %s", placeID)
	}
	if !placeGone(result.Status) {
		if err := checkStatus(result.Status, result.ErrorMessage); err != nil {
			return nil, eris.Wrapf(err, "google: place details %s", placeID)
		}
	}

	details := result.Result
	if details == nil {
		details = &PlaceDetails{}
	}
	details.Status = result.Status
	return details, nil
}

// placeGone reports statuses that describe a place id that no longer
// resolves rather than a refused request.
func placeGone(status string) bool {
	switch status {
	case "NOT_FOUND", "ZERO_RESULTS", "INVALID_REQUEST":
		return true
	}
	return false
}

func (c *httpClient) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.apiKey == "" {
		return eris.New("api key not configured")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return eris.Wrap(err, "rate limit")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return eris.Wrap(err, "create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "read response")
	}

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return eris.Wrap(err, "unmarshal response")
	}
	return nil
}

// checkStatus maps the Places status field to an error. OK and ZERO_RESULTS
// are normal outcomes.
func checkStatus(status, message string) error {
	switch status {
	case "OK", "ZERO_RESULTS", "":
		return nil
	}
	if message != "" {
		return eris.Errorf("api status %s: %s", status, message)
	}
	return eris.Errorf("api status %s", status)
}

func formatLatLng(ll LatLng) string {
	return strconv.FormatFloat(ll.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(ll.Longitude, 'f', -1, 64)
}
