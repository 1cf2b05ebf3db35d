package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/venue-cli/internal/export"
	"github.com/sells-group/venue-cli/internal/finder"
	"github.com/sells-group/venue-cli/internal/model"
	"github.com/sells-group/venue-cli/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect search run history",
	Long:  "Commands for listing, viewing, exporting, and summarizing recorded venue searches.",
}

// openRunStore opens the history store for the runs subcommands, which
// cannot work with recording disabled.
func openRunStore(ctx context.Context) (store.Store, error) {
	if err := cfg.Validate("runs"); err != nil {
		return nil, err
	}
	return initStore(ctx, cfg.Store)
}

// -- runs list --

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List search runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openRunStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		runs, err := st.ListRuns(ctx, store.RunFilter{
			Status: model.RunStatus(status),
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			return eris.Wrap(err, "runs list")
		}

		if len(runs) == 0 {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "No runs found.")
			return nil
		}

		formatRunsList(cmd.OutOrStdout(), runs)
		return nil
	},
}

// -- runs show --

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show full details of a run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openRunStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		run, err := st.GetRun(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "runs show")
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	},
}

// -- runs export --

var runsExportCmd = &cobra.Command{
	Use:   "export <run-id>",
	Short: "Write the venues of a completed run to an Excel file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openRunStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		output, _ := cmd.Flags().GetString("output")
		path, err := exportRun(ctx, st, args[0], output)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Excel file saved at %s\n", path)
		return nil
	},
}

// exportRun rewrites a stored run's venues to a workbook and reads it back
// to confirm every venue landed. An empty output reuses the filename
// recorded with the run.
func exportRun(ctx context.Context, st store.Store, runID, output string) (string, error) {
	run, err := st.GetRun(ctx, runID)
	if err != nil {
		return "", eris.Wrap(err, "runs export")
	}
	if !run.Status.IsTerminal() {
		return "", eris.Errorf("runs export: run %s is still %s", runID, run.Status)
	}
	if run.Status != model.RunStatusComplete || len(run.Venues) == 0 {
		return "", eris.Errorf("runs export: run %s has no venues (status %s)", runID, run.Status)
	}

	if output == "" {
		output = run.Output
	}
	name, err := finder.ValidateOutput(output)
	if err != nil {
		return "", err
	}
	path := finder.OutputPath(name)

	if err := export.WriteXLSX(path, run.Venues); err != nil {
		return "", eris.Wrap(err, "runs export")
	}

	rows, err := export.ReadXLSX(path)
	if err != nil {
		return "", eris.Wrap(err, "runs export: verify")
	}
	if len(rows) != len(run.Venues)+1 {
		return "", eris.Errorf("runs export: %s has %d rows, want %d", path, len(rows), len(run.Venues)+1)
	}
	return path, nil
}

// -- runs stats --

var runsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate run statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openRunStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		runs, err := st.ListRuns(ctx, store.RunFilter{Limit: 10000})
		if err != nil {
			return eris.Wrap(err, "runs stats")
		}

		formatRunStats(cmd.OutOrStdout(), computeRunStats(runs))
		return nil
	},
}

func init() {
	runsListCmd.Flags().String("status", "", "filter by run status (running, complete, no_matches, failed)")
	runsListCmd.Flags().Int("limit", 50, "max number of runs to display")
	runsListCmd.Flags().Int("offset", 0, "number of newest runs to skip")

	runsExportCmd.Flags().String("output", "", "Excel filename, .xlsx appended unless present; defaults to the run's original output")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsStatsCmd)
	rootCmd.AddCommand(runsCmd)
}

// runStats holds aggregate statistics computed from a set of runs.
type runStats struct {
	Total      int
	Complete   int
	NoMatches  int
	Failed     int
	Other      int
	Venues     int
	AvgDurSecs float64
}

// computeRunStats computes aggregate statistics from a list of runs.
func computeRunStats(runs []model.Run) runStats {
	var s runStats
	s.Total = len(runs)

	var totalDur time.Duration
	var durCount int

	for _, r := range runs {
		switch r.Status {
		case model.RunStatusComplete:
			s.Complete++
			s.Venues += len(r.Venues)
			totalDur += r.UpdatedAt.Sub(r.CreatedAt)
			durCount++
		case model.RunStatusNoMatches:
			s.NoMatches++
			totalDur += r.UpdatedAt.Sub(r.CreatedAt)
			durCount++
		case model.RunStatusFailed:
			s.Failed++
		default:
			s.Other++
		}
	}

	if durCount > 0 {
		s.AvgDurSecs = totalDur.Seconds() / float64(durCount)
	}
	return s
}

// formatRunsList writes a tabular list of runs to w.
func formatRunsList(out io.Writer, runs []model.Run) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tADDRESS\tRADIUS\tSTATUS\tVENUES\tCREATED")
	_, _ = fmt.Fprintln(w, "--\t-------\t------\t------\t------\t-------")

	for _, r := range runs {
		address := r.Address
		if len(address) > 30 {
			address = address[:27] + "..."
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%dm\t%s\t%d\t%s\n",
			truncateID(r.ID),
			address,
			r.RadiusMeters,
			r.Status,
			len(r.Venues),
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	_ = w.Flush()
}

// formatRunStats writes aggregate stats to w.
func formatRunStats(out io.Writer, s runStats) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Total runs:\t%d\n", s.Total)
	_, _ = fmt.Fprintf(w, "Complete:\t%d\n", s.Complete)
	_, _ = fmt.Fprintf(w, "No matches:\t%d\n", s.NoMatches)
	_, _ = fmt.Fprintf(w, "Failed:\t%d\n", s.Failed)
	_, _ = fmt.Fprintf(w, "Other:\t%d\n", s.Other)
	_, _ = fmt.Fprintf(w, "Venues exported:\t%d\n", s.Venues)
	if s.AvgDurSecs > 0 {
		_, _ = fmt.Fprintf(w, "Avg duration:\t%.1fs\n", s.AvgDurSecs)
	}
	_ = w.Flush()
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
