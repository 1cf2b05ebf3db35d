package finder

import (
	"github.com/rotisserie/eris"
)

var (
	// ErrInvalidInput reports a request that failed validation. No network
	// call has been made when it is returned.
	ErrInvalidInput = eris.New("invalid input")

	// ErrLocationNotFound reports an address the geocoder could not resolve.
	ErrLocationNotFound = eris.New("location not found")
)

// Stage names the upstream call that failed.
type Stage string

const (
	StageGeocode Stage = "geocode"
	StageSearch  Stage = "nearby search"
	StageDetails Stage = "place details"
)

// UpstreamError wraps a network or decoding failure from one of the
// upstream APIs. The run is aborted and no partial result is returned.
type UpstreamError struct {
	Stage Stage
	Err   error
}

func (e *UpstreamError) Error() string {
	return string(e.Stage) + ": " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
