package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/venue-cli/internal/config"
	"github.com/sells-group/venue-cli/internal/export"
	"github.com/sells-group/venue-cli/internal/finder"
	"github.com/sells-group/venue-cli/internal/model"
	"github.com/sells-group/venue-cli/internal/store"
)

type fakeFinder struct {
	result *finder.Result
	err    error
	got    finder.Request
	calls  int
}

func (f *fakeFinder) Find(_ context.Context, req finder.Request) (*finder.Result, error) {
	f.calls++
	f.got = req
	return f.result, f.err
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := initStore(context.Background(), config.StoreConfig{
		Driver:      "sqlite",
		DatabaseURL: filepath.Join(t.TempDir(), "runs.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	return st
}

func onlyRun(t *testing.T, st store.Store) model.Run {
	t.Helper()
	runs, err := st.ListRuns(context.Background(), store.RunFilter{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	return runs[0]
}

func testInput(t *testing.T) findInput {
	return findInput{
		Request: finder.Request{Address: "1 Main St", RadiusMeters: 800, Keyword: "restaurant"},
		Output:  filepath.Join(t.TempDir(), "venues.xlsx"),
	}
}

func TestRunFind_ExportsVenues(t *testing.T) {
	st := newTestStore(t)
	input := testInput(t)
	f := &fakeFinder{result: &finder.Result{
		Location: model.Coordinates{Latitude: 40.7, Longitude: -74},
		Venues: []model.Venue{
			model.NewVenue("A", "1 St", "111", 4.5),
			model.NewVenue("B", "", "222", 0),
		},
		Pages: 1,
	}}

	var out bytes.Buffer
	require.NoError(t, runFind(context.Background(), f, st, input, &out))

	assert.Equal(t, 1, f.calls)
	assert.Equal(t, input.Request, f.got)
	assert.Contains(t, out.String(), "Coordinates: 40.7, -74")
	assert.Contains(t, out.String(), "Excel file saved at "+input.Output)

	rows, err := export.ReadXLSX(input.Output)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"name", "address", "phone", "rating"}, rows[0])
	assert.Equal(t, "A", rows[1][0])
	assert.Equal(t, "N/A", rows[2][1])

	run := onlyRun(t, st)
	assert.Equal(t, model.RunStatusComplete, run.Status)
	assert.Len(t, run.Venues, 2)
	assert.Equal(t, input.Output, run.Output)
}

func TestRunFind_NoMatchesSkipsExport(t *testing.T) {
	st := newTestStore(t)
	input := testInput(t)
	f := &fakeFinder{result: &finder.Result{Location: model.Coordinates{Latitude: 1, Longitude: 2}}}

	var out bytes.Buffer
	require.NoError(t, runFind(context.Background(), f, st, input, &out))

	assert.Contains(t, out.String(), "Coordinates: 1, 2")
	assert.Contains(t, out.String(), "No restaurants with phone numbers found in the specified radius.")
	assert.NotContains(t, out.String(), "Excel file saved")

	_, err := os.Stat(input.Output)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	run := onlyRun(t, st)
	assert.Equal(t, model.RunStatusNoMatches, run.Status)
	require.NotNil(t, run.Location)
	assert.InDelta(t, 1.0, run.Location.Latitude, 0.0001)
}

func TestRunFind_LocationNotFound(t *testing.T) {
	st := newTestStore(t)
	input := testInput(t)
	f := &fakeFinder{err: eris.Wrap(finder.ErrLocationNotFound, "geocode")}

	var out bytes.Buffer
	err := runFind(context.Background(), f, st, input, &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, finder.ErrLocationNotFound))
	assert.Contains(t, err.Error(), "address not found")
	assert.Empty(t, out.String())

	run := onlyRun(t, st)
	assert.Equal(t, model.RunStatusFailed, run.Status)
	assert.NotEmpty(t, run.Error)
}

func TestRunFind_UpstreamErrorDiscardsResults(t *testing.T) {
	input := testInput(t)
	upstream := &finder.UpstreamError{Stage: finder.StageDetails, Err: errors.New("connection reset")}
	f := &fakeFinder{err: upstream}

	var out bytes.Buffer
	err := runFind(context.Background(), f, nil, input, &out)
	require.Error(t, err)

	var ue *finder.UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, finder.StageDetails, ue.Stage)

	_, statErr := os.Stat(input.Output)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestRunFind_NilStore(t *testing.T) {
	input := testInput(t)
	f := &fakeFinder{result: &finder.Result{
		Venues: []model.Venue{model.NewVenue("A", "B", "C", 3)},
	}}

	var out bytes.Buffer
	require.NoError(t, runFind(context.Background(), f, nil, input, &out))
	assert.FileExists(t, input.Output)
}

func TestRunFind_ExportFailureMarksRunFailed(t *testing.T) {
	st := newTestStore(t)
	input := testInput(t)
	input.Output = filepath.Join(t.TempDir(), "missing-dir", "venues.xlsx")
	f := &fakeFinder{result: &finder.Result{
		Venues: []model.Venue{model.NewVenue("A", "B", "C", 3)},
	}}

	err := runFind(context.Background(), f, st, input, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export venues")

	run := onlyRun(t, st)
	assert.Equal(t, model.RunStatusFailed, run.Status)
}

func TestNewFinder_UsesConfig(t *testing.T) {
	c := &config.Config{
		Google: config.GoogleConfig{Key: "k", PlacesURL: "http://places", GeocodeURL: "http://geo"},
		Search: config.SearchConfig{Keyword: "cafe", PageDelayMS: 10},
	}
	assert.NotNil(t, newFinder(c))
}

func TestOpenHistory_UnopenableStoreIsSkipped(t *testing.T) {
	sc := config.StoreConfig{
		Driver:      "sqlite",
		DatabaseURL: filepath.Join(t.TempDir(), "missing", "sub", "venues.db"),
	}
	st := openHistory(context.Background(), sc)
	assert.Nil(t, st)

	input := testInput(t)
	f := &fakeFinder{result: &finder.Result{
		Venues: []model.Venue{model.NewVenue("A", "B", "C", 3)},
	}}

	var out bytes.Buffer
	require.NoError(t, runFind(context.Background(), f, st, input, &out))
	assert.Equal(t, 1, f.calls)
	assert.FileExists(t, input.Output)
}

func TestInitStore_None(t *testing.T) {
	st, err := initStore(context.Background(), config.StoreConfig{Driver: "none"})
	require.NoError(t, err)
	assert.Nil(t, st)
}

func TestInitStore_UnknownDriver(t *testing.T) {
	_, err := initStore(context.Background(), config.StoreConfig{Driver: "mongo"})
	assert.Error(t, err)
}
