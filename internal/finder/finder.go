// Package finder geocodes an address, pages through nearby places and
// collects the ones with a published phone number.
package finder

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/venue-cli/internal/model"
	"github.com/sells-group/venue-cli/pkg/geocode"
	"github.com/sells-group/venue-cli/pkg/google"
)

// DefaultPageDelay is the wait before requesting the next page. Google
// rejects a next_page_token that is used before it becomes active.
const DefaultPageDelay = 2 * time.Second

// DefaultKeyword is the nearby search keyword used when a request has none.
const DefaultKeyword = "restaurant"

// Result is the outcome of a successful search.
type Result struct {
	Location    model.Coordinates
	Venues      []model.Venue
	Pages       int
	Candidates  int
	DetailCalls int
}

// Empty reports the "no matches" outcome.
func (r *Result) Empty() bool {
	return len(r.Venues) == 0
}

// Option configures a Finder.
type Option func(*Finder)

// WithPageDelay overrides DefaultPageDelay.
func WithPageDelay(d time.Duration) Option {
	return func(f *Finder) {
		f.pageDelay = d
	}
}

// WithKeyword sets the keyword used when a request does not carry one.
func WithKeyword(keyword string) Option {
	return func(f *Finder) {
		if keyword != "" {
			f.keyword = keyword
		}
	}
}

// Finder runs venue searches.
type Finder struct {
	geocoder  geocode.Client
	places    google.Client
	pageDelay time.Duration
	keyword   string
	sleep     func(time.Duration)
}

// New creates a Finder with the given collaborators.
func New(geocoder geocode.Client, places google.Client, opts ...Option) *Finder {
	f := &Finder{
		geocoder:  geocoder,
		places:    places,
		pageDelay: DefaultPageDelay,
		keyword:   DefaultKeyword,
		sleep:     time.Sleep,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Find resolves req.Address, walks every nearby search page and returns the
// venues whose details include a phone number, in page order. Any upstream
// failure aborts the search and discards what was collected.
func (f *Finder) Find(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	keyword := req.Keyword
	if keyword == "" {
		keyword = f.keyword
	}

	log := zap.L().With(
		zap.String("component", "finder"),
		zap.String("address", req.Address),
		zap.Int("radius_m", req.RadiusMeters),
	)

	loc, err := f.geocoder.Geocode(ctx, req.Address)
	if err != nil {
		return nil, &UpstreamError{Stage: StageGeocode, Err: err}
	}
	if loc == nil || !loc.Matched {
		return nil, ErrLocationNotFound
	}

	result := &Result{
		Location: model.Coordinates{Latitude: loc.Latitude, Longitude: loc.Longitude},
	}
	log.Info("address resolved",
		zap.Float64("lat", loc.Latitude),
		zap.Float64("lng", loc.Longitude),
		zap.String("quality", loc.Quality),
	)

	var pageToken string
	for {
		resp, err := f.places.NearbySearch(ctx, google.NearbySearchRequest{
			Location:     google.LatLng{Latitude: loc.Latitude, Longitude: loc.Longitude},
			RadiusMeters: req.RadiusMeters,
			Keyword:      keyword,
			PageToken:    pageToken,
		})
		if err != nil {
			return nil, &UpstreamError{Stage: StageSearch, Err: err}
		}
		result.Pages++
		result.Candidates += len(resp.Results)

		for _, candidate := range resp.Results {
			details, err := f.places.PlaceDetails(ctx, candidate.PlaceID, google.DetailFields)
			result.DetailCalls++
			if err != nil {
				return nil, &UpstreamError{Stage: StageDetails, Err: err}
			}
			if details == nil || details.FormattedPhoneNumber == "" {
				if details != nil && details.Status != "" && details.Status != "OK" {
					log.Debug("candidate no longer resolves",
						zap.String("place_id", candidate.PlaceID),
						zap.String("status", details.Status),
					)
				}
				continue
			}
			result.Venues = append(result.Venues, model.NewVenue(
				details.Name,
				details.FormattedAddress,
				details.FormattedPhoneNumber,
				details.Rating,
			))
		}

		log.Debug("page processed",
			zap.Int("page", result.Pages),
			zap.Int("candidates", len(resp.Results)),
			zap.Int("venues_total", len(result.Venues)),
		)

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken

		log.Info("fetching next page of results", zap.Duration("delay", f.pageDelay))
		f.sleep(f.pageDelay)
	}

	log.Info("search complete",
		zap.Int("pages", result.Pages),
		zap.Int("candidates", result.Candidates),
		zap.Int("venues", len(result.Venues)),
	)
	return result, nil
}
