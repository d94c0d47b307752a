// Package pgstore serves facility snapshots from a shared Postgres database.
//
// The map tables are written by the ingest pipeline; this store only reads.
// The version column of parknav_buildings must increase with every content
// change, which is what keys cache invalidation downstream.
package pgstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	_ "github.com/lib/pq" // postgres driver
	"go.trai.ch/zerr"

	"github.com/parknav/parknav/internal/core/domain"
	"github.com/parknav/parknav/internal/core/ports"
)

// Store implements ports.MapSource over a Postgres database.
type Store struct {
	db     *sql.DB
	logger ports.Logger
}

// Open creates a Store for the given DSN. The connection is established
// lazily; use Ping to verify it eagerly.
func Open(dsn string, logger ports.Logger) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open map database")
	}
	return &Store{db: db, logger: logger}, nil
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return zerr.Wrap(err, domain.ErrStoreQueryFailed.Error())
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// InitSchema creates the map tables when absent. The reading paths never
// call this; it exists for provisioning and tests.
func (s *Store) InitSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS parknav_buildings (
		building   TEXT PRIMARY KEY,
		version    BIGINT NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS parknav_levels (
		building TEXT NOT NULL REFERENCES parknav_buildings(building) ON DELETE CASCADE,
		level    INTEGER NOT NULL,
		grid     JSONB NOT NULL,
		PRIMARY KEY (building, level)
	);

	CREATE TABLE IF NOT EXISTS parknav_ramps (
		building   TEXT NOT NULL REFERENCES parknav_buildings(building) ON DELETE CASCADE,
		id         TEXT NOT NULL,
		from_level INTEGER NOT NULL,
		from_row   INTEGER NOT NULL,
		from_col   INTEGER NOT NULL,
		to_level   INTEGER NOT NULL,
		to_row     INTEGER NOT NULL,
		to_col     INTEGER NOT NULL,
		PRIMARY KEY (building, id)
	);

	CREATE TABLE IF NOT EXISTS parknav_slots (
		building TEXT NOT NULL REFERENCES parknav_buildings(building) ON DELETE CASCADE,
		id       TEXT NOT NULL,
		level    INTEGER NOT NULL,
		grid_row INTEGER NOT NULL,
		grid_col INTEGER NOT NULL,
		PRIMARY KEY (building, id)
	);
	`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return zerr.Wrap(err, domain.ErrStoreQueryFailed.Error())
	}
	return nil
}

// LoadCurrent returns the current snapshot of a building as stored by the
// ingest pipeline.
func (s *Store) LoadCurrent(ctx context.Context, building string) (*domain.Facility, error) {
	var version int64
	err := s.db.QueryRowContext(ctx,
		`SELECT version FROM parknav_buildings WHERE building = $1`, building,
	).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(building)
	}
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreQueryFailed.Error())
	}

	names, err := s.loadSlotNames(ctx, building)
	if err != nil {
		return nil, err
	}

	levels, err := s.loadLevels(ctx, building, names)
	if err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		return nil, domain.MalformedMap(building, 0, zerr.New("building has no levels"))
	}

	declared := make(map[int]bool, len(levels))
	for _, m := range levels {
		declared[m.Level()] = true
	}
	for level, levelNames := range names {
		if !declared[level] {
			err := zerr.With(domain.ErrSlotNameMismatch, "id", levelNames[0].ID)
			return nil, domain.MalformedMap(building, level, err)
		}
	}

	links, err := s.loadRampLinks(ctx, building)
	if err != nil {
		return nil, err
	}

	return domain.NewFacility(building, version, levels, links)
}

// Buildings lists the ids of all stored buildings in sorted order.
func (s *Store) Buildings(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT building FROM parknav_buildings ORDER BY building`)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreQueryFailed.Error())
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, zerr.Wrap(err, domain.ErrStoreQueryFailed.Error())
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreQueryFailed.Error())
	}
	return ids, nil
}

// Invalidate is a no-op. The store holds no memoized state; versions come
// from the database on every load.
func (s *Store) Invalidate(string) {}

func (s *Store) loadLevels(ctx context.Context, building string, names map[int][]domain.SlotName) ([]*domain.ParkingMap, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT level, grid FROM parknav_levels WHERE building = $1 ORDER BY level`, building)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreQueryFailed.Error())
	}
	defer func() { _ = rows.Close() }()

	var levels []*domain.ParkingMap
	for rows.Next() {
		var (
			level   int
			payload []byte
		)
		if err := rows.Scan(&level, &payload); err != nil {
			return nil, zerr.Wrap(err, domain.ErrStoreQueryFailed.Error())
		}

		cells, rowCount, colCount, err := parseGridPayload(building, level, payload)
		if err != nil {
			return nil, err
		}

		m, err := domain.NewParkingMap(building, level, rowCount, colCount, cells, names[level])
		if err != nil {
			return nil, err
		}
		levels = append(levels, m)
	}
	if err := rows.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreQueryFailed.Error())
	}
	return levels, nil
}

func (s *Store) loadSlotNames(ctx context.Context, building string) (map[int][]domain.SlotName, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, level, grid_row, grid_col FROM parknav_slots WHERE building = $1 ORDER BY id`, building)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreQueryFailed.Error())
	}
	defer func() { _ = rows.Close() }()

	names := make(map[int][]domain.SlotName)
	for rows.Next() {
		var (
			id              string
			level, row, col int
		)
		if err := rows.Scan(&id, &level, &row, &col); err != nil {
			return nil, zerr.Wrap(err, domain.ErrStoreQueryFailed.Error())
		}
		names[level] = append(names[level], domain.SlotName{
			ID: id,
			At: domain.Coord{Level: level, Row: row, Col: col},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreQueryFailed.Error())
	}
	return names, nil
}

func (s *Store) loadRampLinks(ctx context.Context, building string) ([]domain.RampLink, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, from_level, from_row, from_col, to_level, to_row, to_col
		 FROM parknav_ramps WHERE building = $1 ORDER BY id`, building)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreQueryFailed.Error())
	}
	defer func() { _ = rows.Close() }()

	var links []domain.RampLink
	for rows.Next() {
		var (
			id                     string
			fl, fr, fc, tl, tr, tc int
		)
		if err := rows.Scan(&id, &fl, &fr, &fc, &tl, &tr, &tc); err != nil {
			return nil, zerr.Wrap(err, domain.ErrStoreQueryFailed.Error())
		}
		links = append(links, domain.RampLink{
			ID:   id,
			From: domain.Coord{Level: fl, Row: fr, Col: fc},
			To:   domain.Coord{Level: tl, Row: tr, Col: tc},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreQueryFailed.Error())
	}
	return links, nil
}

// parseGridPayload decodes a JSONB grid column, an array of legend rows,
// into the cell list of one level.
func parseGridPayload(building string, level int, payload []byte) ([]domain.Cell, int, int, error) {
	var grid []string
	if err := json.Unmarshal(payload, &grid); err != nil {
		return nil, 0, 0, domain.MalformedMap(building, level, zerr.Wrap(err, "grid payload is not a row array"))
	}

	cells, err := domain.ParseGrid(level, grid)
	if err != nil {
		return nil, 0, 0, domain.MalformedMap(building, level, err)
	}
	return cells, len(grid), len([]rune(grid[0])), nil
}

// notFound tags an unknown building with the taxonomy sentinel.
func notFound(building string) error {
	return errors.Join(
		domain.ErrMapNotFound,
		zerr.With(zerr.New("no stored map for building"), "building", building),
	)
}
