package store

import (
	"database/sql"
	"encoding/json"

	"github.com/rotisserie/eris"

	"github.com/sells-group/venue-cli/internal/model"
)

// scannable is satisfied by *sql.Row, *sql.Rows, pgx.Row and pgx.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanRun(row scannable) (*model.Run, error) {
	var (
		r          model.Run
		status     string
		lat, lng   sql.NullFloat64
		venuesJSON sql.NullString
	)
	if err := row.Scan(
		&r.ID, &r.Address, &r.RadiusMeters, &r.Keyword, &r.Output, &status,
		&lat, &lng, &venuesJSON, &r.Error, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	r.Status = model.RunStatus(status)
	if lat.Valid && lng.Valid {
		r.Location = &model.Coordinates{Latitude: lat.Float64, Longitude: lng.Float64}
	}
	if venuesJSON.Valid && venuesJSON.String != "" {
		if err := json.Unmarshal([]byte(venuesJSON.String), &r.Venues); err != nil {
			return nil, eris.Wrap(err, "unmarshal venues")
		}
	}
	r.CreatedAt = r.CreatedAt.UTC()
	r.UpdatedAt = r.UpdatedAt.UTC()
	return &r, nil
}

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrapf(err, "rows affected for %s %s", entity, id)
	}
	if n == 0 {
		return eris.Errorf("%s %s not found", entity, id)
	}
	return nil
}
