package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/itinera/internal/domain"
)

// directionColumns is the canonical SELECT column list for route_directions.
const directionColumns = `id, uuid, country_code, name, name_cn, name_en,
		tags, regions, entry_hubs, seasonality, hard_constraints, soft_constraints,
		objectives, risk_profile, signature_pois, skeleton, corridor, buffer_meters,
		status, is_active, version, rollout_percent, audience, extensions,
		created_at, updated_at`

// SQLiteDirectionRepo implements DirectionRepo using a SQLite database.
type SQLiteDirectionRepo struct {
	db *sql.DB
}

// NewSQLiteDirectionRepo creates a new SQLiteDirectionRepo.
func NewSQLiteDirectionRepo(db *sql.DB) *SQLiteDirectionRepo {
	return &SQLiteDirectionRepo{db: db}
}

func (r *SQLiteDirectionRepo) Create(ctx context.Context, d *domain.RouteDirection) error {
	if err := d.Validate(); err != nil {
		return err
	}
	cols := []struct {
		v    any
		zero string
	}{
		{d.Tags, "[]"}, {d.Regions, "[]"}, {d.EntryHubs, "[]"},
		{d.Seasonality, "{}"}, {d.Hard, "{}"}, {d.Soft, "{}"},
		{d.Objectives, "{}"}, {d.RiskProfile, "{}"}, {d.SignaturePois, "{}"},
		{d.Skeleton, "{}"}, {d.Audience, "{}"}, {d.Extensions, "{}"},
	}
	encoded := make([]string, len(cols))
	for i, c := range cols {
		s, err := marshalJSON(c.v, c.zero)
		if err != nil {
			return err
		}
		encoded[i] = s
	}

	var corridor any
	if d.Corridor != nil {
		s, err := marshalJSON(d.Corridor, "null")
		if err != nil {
			return err
		}
		corridor = s
	}

	query := `INSERT INTO route_directions (` + directionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.UUID, d.CountryCode, d.Name, d.NameCN, d.NameEN,
		encoded[0], encoded[1], encoded[2], encoded[3], encoded[4], encoded[5],
		encoded[6], encoded[7], encoded[8], encoded[9],
		corridor, d.BufferMeters,
		string(d.Status), boolToInt(d.IsActiveLegacy), d.Version, d.RolloutPercent,
		encoded[10], encoded[11],
		d.CreatedAt.Format(time.RFC3339), d.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting route direction: %w", err)
	}
	return nil
}

func (r *SQLiteDirectionRepo) GetByID(ctx context.Context, id string) (*domain.RouteDirection, error) {
	query := `SELECT ` + directionColumns + ` FROM route_directions WHERE id = ?`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("getting direction %s: %w", id, err)
	}
	defer rows.Close()
	dirs, err := r.scanDirections(rows)
	if err != nil {
		return nil, err
	}
	if len(dirs) == 0 {
		return nil, sql.ErrNoRows
	}
	return dirs[0], nil
}

// FindByCountry returns active directions for the country (legacy is_active
// rows included), optionally with deprecated ones, newest version first.
func (r *SQLiteDirectionRepo) FindByCountry(ctx context.Context, countryCode string, q DirectionQuery) ([]*domain.RouteDirection, error) {
	query := `SELECT ` + directionColumns + ` FROM route_directions
		WHERE country_code = ?`
	args := []any{countryCode}
	if !q.IncludeDeprecated {
		query += ` AND (status = 'active' OR (status = 'draft' AND is_active = 1))`
	}
	query += ` ORDER BY version DESC, id`
	if q.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, q.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finding directions for %s: %w", countryCode, err)
	}
	defer rows.Close()

	dirs, err := r.scanDirections(rows)
	if err != nil {
		return nil, err
	}
	if len(q.Tags) > 0 {
		dirs = filterByTags(dirs, q.Tags)
	}
	return dirs, nil
}

// filterByTags keeps directions sharing at least one tag with want.
func filterByTags(dirs []*domain.RouteDirection, want []string) []*domain.RouteDirection {
	wanted := make(map[string]bool, len(want))
	for _, t := range want {
		wanted[t] = true
	}
	var out []*domain.RouteDirection
	for _, d := range dirs {
		for _, t := range d.Tags {
			if wanted[t] {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

func (r *SQLiteDirectionRepo) scanDirections(rows *sql.Rows) ([]*domain.RouteDirection, error) {
	var dirs []*domain.RouteDirection
	for rows.Next() {
		d, err := scanDirectionRow(rows)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating direction rows: %w", err)
	}
	return dirs, nil
}

func scanDirectionRow(rows *sql.Rows) (*domain.RouteDirection, error) {
	var d domain.RouteDirection
	var tags, regions, hubs, season, hard, soft, objectives, risk, sig, skeleton, audience, ext string
	var corridor sql.NullString
	var status string
	var isActive int
	var createdAt, updatedAt string

	if err := rows.Scan(
		&d.ID, &d.UUID, &d.CountryCode, &d.Name, &d.NameCN, &d.NameEN,
		&tags, &regions, &hubs, &season, &hard, &soft,
		&objectives, &risk, &sig, &skeleton, &corridor, &d.BufferMeters,
		&status, &isActive, &d.Version, &d.RolloutPercent, &audience, &ext,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, fmt.Errorf("scanning direction: %w", err)
	}

	d.Status = domain.DirectionStatus(status)
	d.IsActiveLegacy = isActive == 1

	for _, col := range []struct {
		data string
		out  any
	}{
		{tags, &d.Tags}, {regions, &d.Regions}, {hubs, &d.EntryHubs},
		{season, &d.Seasonality}, {hard, &d.Hard}, {soft, &d.Soft},
		{objectives, &d.Objectives}, {risk, &d.RiskProfile},
		{sig, &d.SignaturePois}, {skeleton, &d.Skeleton},
		{audience, &d.Audience}, {ext, &d.Extensions},
	} {
		if err := unmarshalJSON(col.data, col.out); err != nil {
			return nil, err
		}
	}
	if corridor.Valid && corridor.String != "" && corridor.String != "null" {
		d.Corridor = &domain.Corridor{}
		if err := unmarshalJSON(corridor.String, d.Corridor); err != nil {
			return nil, err
		}
	}

	var err error
	if d.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing direction created_at: %w", err)
	}
	if d.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing direction updated_at: %w", err)
	}
	return &d, nil
}
