package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/itinera/internal/domain"
)

// placeColumns is the canonical SELECT column list for places.
const placeColumns = `uuid, name, name_en, country_code, lat, lng, metadata, extensions,
		created_at, updated_at`

// SQLitePlaceRepo implements PlaceRepo using a SQLite database. Spatial
// corridor filtering happens in Go after the SQL prefilter: SQLite carries no
// geography predicate, and candidate sets at this stage are small.
type SQLitePlaceRepo struct {
	db *sql.DB
}

// NewSQLitePlaceRepo creates a new SQLitePlaceRepo.
func NewSQLitePlaceRepo(db *sql.DB) *SQLitePlaceRepo {
	return &SQLitePlaceRepo{db: db}
}

func (r *SQLitePlaceRepo) Create(ctx context.Context, p *domain.Place) error {
	meta, err := marshalJSON(p.Metadata, "{}")
	if err != nil {
		return err
	}
	ext, err := marshalJSON(p.Extensions, "{}")
	if err != nil {
		return err
	}
	query := `INSERT INTO places (uuid, name, name_en, country_code, lat, lng, metadata, extensions,
		created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.UUID,
		p.Name,
		p.NameEN,
		p.CountryCode,
		p.Geo.Lat,
		p.Geo.Lng,
		meta,
		ext,
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting place: %w", err)
	}
	return nil
}

func (r *SQLitePlaceRepo) FindByUUIDs(ctx context.Context, uuids []string) ([]*domain.Place, error) {
	if len(uuids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + placeColumns + ` FROM places WHERE uuid IN (` + placeholders(len(uuids)) + `)`
	args := make([]any, len(uuids))
	for i, u := range uuids {
		args[i] = u
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finding places by uuid: %w", err)
	}
	defer rows.Close()
	return r.scanPlaces(rows)
}

func (r *SQLitePlaceRepo) FindByTypeAndCorridor(ctx context.Context, types []string, regions []string, corridor *domain.Corridor, bufferMeters float64, limit int) ([]*domain.Place, error) {
	if len(types) == 0 {
		return nil, nil
	}
	query := `SELECT ` + placeColumns + ` FROM places
		WHERE json_extract(metadata, '$.canonical_type') IN (` + placeholders(len(types)) + `)`
	args := make([]any, 0, len(types)+len(regions))
	for _, t := range types {
		args = append(args, t)
	}
	if len(regions) > 0 {
		query += ` AND json_extract(metadata, '$.region_key') IN (` + placeholders(len(regions)) + `)`
		for _, rg := range regions {
			args = append(args, rg)
		}
	}
	query += ` ORDER BY uuid`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finding places by type: %w", err)
	}
	defer rows.Close()

	places, err := r.scanPlaces(rows)
	if err != nil {
		return nil, err
	}
	return clipToCorridor(places, corridor, bufferMeters, limit), nil
}

func (r *SQLitePlaceRepo) FindByRegionsAndCorridor(ctx context.Context, regions []string, corridor *domain.Corridor, bufferMeters float64, limit int) ([]*domain.Place, error) {
	if len(regions) == 0 {
		return nil, nil
	}
	query := `SELECT ` + placeColumns + ` FROM places
		WHERE json_extract(metadata, '$.region_key') IN (` + placeholders(len(regions)) + `)
		ORDER BY uuid`
	args := make([]any, len(regions))
	for i, rg := range regions {
		args[i] = rg
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finding places by region: %w", err)
	}
	defer rows.Close()

	places, err := r.scanPlaces(rows)
	if err != nil {
		return nil, err
	}
	return clipToCorridor(places, corridor, bufferMeters, limit), nil
}

// clipToCorridor applies the great-circle buffer predicate and the result cap.
// A nil corridor keeps everything.
func clipToCorridor(places []*domain.Place, corridor *domain.Corridor, bufferMeters float64, limit int) []*domain.Place {
	var out []*domain.Place
	for _, p := range places {
		if corridor != nil && corridor.DistanceMeters(p.Geo) > bufferMeters {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

func (r *SQLitePlaceRepo) scanPlaces(rows *sql.Rows) ([]*domain.Place, error) {
	var places []*domain.Place
	for rows.Next() {
		p, err := scanPlaceRow(rows)
		if err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating place rows: %w", err)
	}
	return places, nil
}

func scanPlaceRow(rows *sql.Rows) (*domain.Place, error) {
	var p domain.Place
	var meta, ext, createdAt, updatedAt string
	if err := rows.Scan(
		&p.UUID, &p.Name, &p.NameEN, &p.CountryCode,
		&p.Geo.Lat, &p.Geo.Lng, &meta, &ext,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, fmt.Errorf("scanning place: %w", err)
	}
	if err := unmarshalJSON(meta, &p.Metadata); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(ext, &p.Extensions); err != nil {
		return nil, err
	}
	var err error
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing place created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing place updated_at: %w", err)
	}
	return &p, nil
}
