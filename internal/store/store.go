// Package store persists the history of venue search runs.
package store

import (
	"context"

	"github.com/sells-group/venue-cli/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// NewRun describes a run at the moment it starts.
type NewRun struct {
	Address      string
	RadiusMeters int
	Keyword      string
	Output       string
}

// Store defines the persistence interface for run history.
type Store interface {
	CreateRun(ctx context.Context, run NewRun) (*model.Run, error)
	CompleteRun(ctx context.Context, runID string, location model.Coordinates, venues []model.Venue) error
	MarkNoMatches(ctx context.Context, runID string, location model.Coordinates) error
	FailRun(ctx context.Context, runID string, message string) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	Migrate(ctx context.Context) error
	Close() error
}

const defaultListLimit = 100

func listLimit(filter RunFilter) int {
	if filter.Limit <= 0 {
		return defaultListLimit
	}
	return filter.Limit
}
