package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/venue-cli/internal/export"
	"github.com/sells-group/venue-cli/internal/model"
	"github.com/sells-group/venue-cli/internal/store"
)

func TestFormatRunsList(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	runs := []model.Run{
		{
			ID:           "abc12345-6789-0000-0000-000000000000",
			Address:      "1600 Amphitheatre Parkway, Mountain View, CA",
			RadiusMeters: 1000,
			Status:       model.RunStatusComplete,
			Venues:       []model.Venue{model.NewVenue("A", "B", "C", 1)},
			CreatedAt:    now,
			UpdatedAt:    now.Add(10 * time.Second),
		},
		{
			ID:           "def12345-6789-0000-0000-000000000000",
			Address:      "Main St",
			RadiusMeters: 250,
			Status:       model.RunStatusNoMatches,
			CreatedAt:    now.Add(-time.Hour),
			UpdatedAt:    now.Add(-time.Hour),
		},
	}

	var buf bytes.Buffer
	formatRunsList(&buf, runs)

	output := buf.String()
	assert.Contains(t, output, "ADDRESS")
	assert.Contains(t, output, "STATUS")
	assert.Contains(t, output, "abc12345")
	assert.NotContains(t, output, "abc12345-6789")
	assert.Contains(t, output, "1600 Amphitheatre Parkway, ...")
	assert.Contains(t, output, "1000m")
	assert.Contains(t, output, "no_matches")
	assert.Contains(t, output, "2025-06-15 10:30")
}

func TestComputeRunStats(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	venues := []model.Venue{model.NewVenue("A", "", "1", 0), model.NewVenue("B", "", "2", 0)}

	runs := []model.Run{
		{Status: model.RunStatusComplete, Venues: venues, CreatedAt: now, UpdatedAt: now.Add(4 * time.Second)},
		{Status: model.RunStatusNoMatches, CreatedAt: now, UpdatedAt: now.Add(2 * time.Second)},
		{Status: model.RunStatusFailed, CreatedAt: now, UpdatedAt: now.Add(time.Minute)},
		{Status: model.RunStatusRunning, CreatedAt: now, UpdatedAt: now},
	}

	s := computeRunStats(runs)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.Complete)
	assert.Equal(t, 1, s.NoMatches)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 1, s.Other)
	assert.Equal(t, 2, s.Venues)
	assert.InDelta(t, 3.0, s.AvgDurSecs, 0.001)

	var buf bytes.Buffer
	formatRunStats(&buf, s)
	assert.Contains(t, buf.String(), "Total runs:")
	assert.Contains(t, buf.String(), "Avg duration:")
}

func TestComputeRunStats_Empty(t *testing.T) {
	s := computeRunStats(nil)
	assert.Zero(t, s.Total)
	assert.Zero(t, s.AvgDurSecs)

	var buf bytes.Buffer
	formatRunStats(&buf, s)
	assert.NotContains(t, buf.String(), "Avg duration")
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "abc12345", truncateID("abc12345-6789"))
	assert.Equal(t, "short", truncateID("short"))
}

func TestExportRun(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, store.NewRun{Address: "a", RadiusMeters: 10, Output: "first.xlsx"})
	require.NoError(t, err)
	venues := []model.Venue{model.NewVenue("Diner", "1 St", "555", 4.2)}
	require.NoError(t, st.CompleteRun(ctx, run.ID, model.Coordinates{Latitude: 1, Longitude: 2}, venues))

	target := filepath.Join(t.TempDir(), "again")
	path, err := exportRun(ctx, st, run.ID, target)
	require.NoError(t, err)
	assert.Equal(t, target+".xlsx", path)

	rows, err := export.ReadXLSX(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Diner", "1 St", "555", "4.2"}, rows[1])
}

func TestExportRun_NotComplete(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, store.NewRun{Address: "a", RadiusMeters: 10})
	require.NoError(t, err)
	require.NoError(t, st.MarkNoMatches(ctx, run.ID, model.Coordinates{}))

	_, err = exportRun(ctx, st, run.ID, filepath.Join(t.TempDir(), "x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no venues")
}

func TestExportRun_StillRunning(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, store.NewRun{Address: "a", RadiusMeters: 10})
	require.NoError(t, err)

	_, err = exportRun(ctx, st, run.ID, filepath.Join(t.TempDir(), "x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "still running")
}

func TestExportRun_DefaultsToRecordedOutput(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	recorded := filepath.Join(t.TempDir(), "Lunch.XLSX")
	run, err := st.CreateRun(ctx, store.NewRun{Address: "a", RadiusMeters: 10, Output: recorded})
	require.NoError(t, err)
	venues := []model.Venue{
		model.NewVenue("One", "1 St", "111", 3.5),
		model.NewVenue("Two", "2 St", "222", 0),
	}
	require.NoError(t, st.CompleteRun(ctx, run.ID, model.Coordinates{}, venues))

	path, err := exportRun(ctx, st, run.ID, "")
	require.NoError(t, err)
	assert.Equal(t, recorded, path)
	assert.FileExists(t, recorded)
}

func TestListRuns_OffsetSkipsNewest(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for _, addr := range []string{"first", "second", "third"} {
		_, err := st.CreateRun(ctx, store.NewRun{Address: addr, RadiusMeters: 10})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	runs, err := st.ListRuns(ctx, store.RunFilter{Limit: 10, Offset: 1})
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "second", runs[0].Address)
	assert.Equal(t, "first", runs[1].Address)
}

func TestExportRun_UnknownID(t *testing.T) {
	st := newTestStore(t)

	_, err := exportRun(context.Background(), st, "missing", "x")
	assert.Error(t, err)
}
