package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/venue-cli/internal/config"
	"github.com/sells-group/venue-cli/internal/export"
	"github.com/sells-group/venue-cli/internal/finder"
	"github.com/sells-group/venue-cli/internal/model"
	"github.com/sells-group/venue-cli/internal/store"
	"github.com/sells-group/venue-cli/pkg/geocode"
	"github.com/sells-group/venue-cli/pkg/google"
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find nearby restaurants with phone numbers and save them to Excel",
	Long:  "Prompts for any of address, radius and output filename not given as flags, then searches and exports the venues that list a phone number.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("find"); err != nil {
			return err
		}

		address, _ := cmd.Flags().GetString("address")
		radius, _ := cmd.Flags().GetString("radius")
		output, _ := cmd.Flags().GetString("output")
		keyword, _ := cmd.Flags().GetString("keyword")

		input, err := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()).collect(address, radius, output)
		if err != nil {
			return err
		}
		input.Request.Keyword = keyword

		st := openHistory(ctx, cfg.Store)
		if st != nil {
			defer st.Close() //nolint:errcheck
		}

		return runFind(ctx, newFinder(cfg), st, input, cmd.OutOrStdout())
	},
}

// venueFinder is satisfied by *finder.Finder.
type venueFinder interface {
	Find(ctx context.Context, req finder.Request) (*finder.Result, error)
}

func newFinder(c *config.Config) *finder.Finder {
	hc := &http.Client{Timeout: c.Google.Timeout()}

	geo := geocode.NewClient(c.Google.Key,
		geocode.WithBaseURL(c.Google.GeocodeURL),
		geocode.WithHTTPClient(hc),
		geocode.WithRateLimit(c.Google.RateLimit),
	)
	places := google.NewClient(c.Google.Key,
		google.WithBaseURL(c.Google.PlacesURL),
		google.WithHTTPClient(hc),
		google.WithRateLimit(c.Google.RateLimit),
	)

	return finder.New(geo, places,
		finder.WithPageDelay(c.Search.PageDelay()),
		finder.WithKeyword(c.Search.Keyword),
	)
}

// openHistory opens the run history store for find. A store that cannot be
// opened is logged and the search runs without history.
func openHistory(ctx context.Context, sc config.StoreConfig) store.Store {
	st, err := initStore(ctx, sc)
	if err != nil {
		zap.L().Warn("run history unavailable, continuing without it",
			zap.String("driver", sc.Driver),
			zap.Error(err),
		)
		return nil
	}
	return st
}

// runFind executes one search, exports the venues and records the run when
// st is non-nil. Run history failures are logged and never fail the search.
func runFind(ctx context.Context, f venueFinder, st store.Store, input findInput, out io.Writer) error {
	log := zap.L().With(zap.String("command", "find"))
	rec := &runRecorder{st: st, log: log}

	rec.start(ctx, store.NewRun{
		Address:      input.Request.Address,
		RadiusMeters: input.Request.RadiusMeters,
		Keyword:      input.Request.Keyword,
		Output:       input.Output,
	})

	result, err := f.Find(ctx, input.Request)
	if err != nil {
		rec.fail(ctx, err)
		if errors.Is(err, finder.ErrLocationNotFound) {
			return eris.Wrap(err, "address not found, please check the input")
		}
		return eris.Wrap(err, "find venues")
	}

	_, _ = fmt.Fprintf(out, "Coordinates: %v, %v\n", result.Location.Latitude, result.Location.Longitude)

	if result.Empty() {
		rec.noMatches(ctx, result.Location)
		_, _ = fmt.Fprintln(out, "No restaurants with phone numbers found in the specified radius.")
		return nil
	}

	if err := export.WriteXLSX(input.Output, result.Venues); err != nil {
		rec.fail(ctx, err)
		return eris.Wrap(err, "export venues")
	}
	rec.complete(ctx, result.Location, result.Venues)

	log.Info("venues exported",
		zap.String("path", input.Output),
		zap.Int("venues", len(result.Venues)),
		zap.Int("pages", result.Pages),
	)
	_, _ = fmt.Fprintf(out, "Excel file saved at %s (%d venues)\n", input.Output, len(result.Venues))
	return nil
}

// runRecorder writes run history, tolerating a nil store.
type runRecorder struct {
	st    store.Store
	log   *zap.Logger
	runID string
}

func (r *runRecorder) start(ctx context.Context, run store.NewRun) {
	if r.st == nil {
		return
	}
	created, err := r.st.CreateRun(ctx, run)
	if err != nil {
		r.log.Warn("record run start failed", zap.Error(err))
		return
	}
	r.runID = created.ID
	r.log = r.log.With(zap.String("run_id", created.ID))
}

func (r *runRecorder) fail(ctx context.Context, cause error) {
	if r.runID == "" {
		return
	}
	if err := r.st.FailRun(ctx, r.runID, cause.Error()); err != nil {
		r.log.Warn("record run failure failed", zap.Error(err))
	}
}

func (r *runRecorder) noMatches(ctx context.Context, loc model.Coordinates) {
	if r.runID == "" {
		return
	}
	if err := r.st.MarkNoMatches(ctx, r.runID, loc); err != nil {
		r.log.Warn("record no matches failed", zap.Error(err))
	}
}

func (r *runRecorder) complete(ctx context.Context, loc model.Coordinates, venues []model.Venue) {
	if r.runID == "" {
		return
	}
	if err := r.st.CompleteRun(ctx, r.runID, loc, venues); err != nil {
		r.log.Warn("record run completion failed", zap.Error(err))
	}
}

func init() {
	findCmd.Flags().String("address", "", "street address to search around (prompted if empty)")
	findCmd.Flags().String("radius", "", "search radius in meters (prompted if empty)")
	findCmd.Flags().String("output", "", "Excel filename; .xlsx is appended unless the name already ends in .xlsx (prompted if empty)")
	findCmd.Flags().String("keyword", "", "nearby search keyword (defaults to search.keyword)")
	rootCmd.AddCommand(findCmd)
}
