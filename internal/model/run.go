package model

import "time"

// RunStatus represents the state of a venue search run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusComplete  RunStatus = "complete"
	RunStatusNoMatches RunStatus = "no_matches"
	RunStatusFailed    RunStatus = "failed"
)

// Run is one recorded invocation of the venue search.
type Run struct {
	ID           string       `json:"id"`
	Address      string       `json:"address"`
	RadiusMeters int          `json:"radius_meters"`
	Keyword      string       `json:"keyword"`
	Output       string       `json:"output,omitempty"`
	Status       RunStatus    `json:"status"`
	Location     *Coordinates `json:"location,omitempty"`
	Venues       []Venue      `json:"venues,omitempty"`
	Error        string       `json:"error,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// IsTerminal reports whether the run has finished, successfully or not.
func (s RunStatus) IsTerminal() bool {
	return s == RunStatusComplete || s == RunStatusNoMatches || s == RunStatusFailed
}
