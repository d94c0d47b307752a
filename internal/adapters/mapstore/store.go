// Package mapstore serves facility snapshots from YAML map files in a local
// directory, one file per building.
package mapstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"sync"
	"time"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/parknav/parknav/internal/core/domain"
	"github.com/parknav/parknav/internal/core/ports"
)

// Store implements ports.MapSource over a maps directory.
//
// Each building keeps an in-process snapshot with a content fingerprint.
// Repeated loads take a stat fast path; when the file changed, the map is
// reparsed and the facility version advances by one. Versions therefore
// increase strictly with content changes for the lifetime of the process.
type Store struct {
	dir    string
	logger ports.Logger

	mu    sync.Mutex
	state map[string]*snapshot
}

type snapshot struct {
	facility    *domain.Facility
	fingerprint uint64

	// Stat memo for the fast path. Zero after Invalidate.
	modTime time.Time
	size    int64
	statOK  bool
}

// NewStore creates a Store over the given maps directory.
func NewStore(dir string, logger ports.Logger) *Store {
	return &Store{
		dir:    dir,
		logger: logger,
		state:  make(map[string]*snapshot),
	}
}

// Dir returns the maps directory the store reads from.
func (s *Store) Dir() string { return s.dir }

// LoadCurrent returns the current snapshot of a building, reloading the map
// file when its content changed.
func (s *Store) LoadCurrent(ctx context.Context, building string) (*domain.Facility, error) {
	if err := ctx.Err(); err != nil {
		return nil, zerr.Wrap(err, "map load canceled")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := domain.MapFilePath(s.dir, building)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(building)
		}
		return nil, zerr.Wrap(err, domain.ErrMapReadFailed.Error())
	}

	cached := s.state[building]
	if cached != nil && cached.statOK && info.ModTime().Equal(cached.modTime) && info.Size() == cached.size {
		return cached.facility, nil
	}

	// #nosec G304 -- path is derived from the configured maps directory
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrMapReadFailed.Error())
	}

	sum := Fingerprint(data)
	if cached != nil && sum == cached.fingerprint {
		// Touched but unchanged. Refresh the stat memo so the fast path
		// applies again; the version must not advance.
		cached.modTime = info.ModTime()
		cached.size = info.Size()
		cached.statOK = true
		return cached.facility, nil
	}

	version := int64(1)
	if cached != nil {
		version = cached.facility.Version() + 1
	}

	facility, err := decodeFacility(building, version, data)
	if err != nil {
		// The previous snapshot stays in place so the version does not
		// advance on failed reloads.
		return nil, err
	}

	s.state[building] = &snapshot{
		facility:    facility,
		fingerprint: sum,
		modTime:     info.ModTime(),
		size:        info.Size(),
		statOK:      true,
	}
	s.logger.Info(fmt.Sprintf("loaded map %s version %d (%s)", building, version, FormatFingerprint(sum)))
	return facility, nil
}

// Buildings lists the ids of all map files in the maps directory in sorted
// order. A missing directory means no buildings.
func (s *Store) Buildings(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, zerr.Wrap(err, "map listing canceled")
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrMapReadFailed.Error())
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if id := domain.BuildingFromMapFile(entry.Name()); id != "" {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

// Invalidate drops the stat memo of a building so the next LoadCurrent
// rereads and refingerprints the file. The fingerprint itself is kept, so an
// unchanged file still resolves to the cached snapshot at the same version.
func (s *Store) Invalidate(building string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cached, ok := s.state[building]; ok {
		cached.statOK = false
	}
}

// decodeFacility parses raw map file content into a facility snapshot.
func decodeFacility(building string, version int64, data []byte) (*domain.Facility, error) {
	var doc MapFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, zerr.Wrap(err, domain.ErrMapParseFailed.Error())
	}

	if doc.Building != "" && doc.Building != building {
		err := zerr.With(zerr.New("map file declares a different building"), "declared", doc.Building)
		return nil, domain.MalformedMap(building, 0, zerr.With(err, "expected", building))
	}
	if len(doc.Levels) == 0 {
		return nil, domain.MalformedMap(building, 0, zerr.New("map file declares no levels"))
	}

	declared := make(map[int]bool, len(doc.Levels))
	for _, l := range doc.Levels {
		declared[l.Level] = true
	}
	// A slot id pointing at an undeclared level would otherwise vanish in
	// the per-level filter below.
	for _, sl := range doc.Slots {
		if !declared[sl.At.Level] {
			err := zerr.With(domain.ErrSlotNameMismatch, "id", sl.ID)
			return nil, domain.MalformedMap(building, sl.At.Level, zerr.With(err, "at", sl.At.coord().String()))
		}
	}

	levels := make([]*domain.ParkingMap, 0, len(doc.Levels))
	for _, l := range doc.Levels {
		cells, err := domain.ParseGrid(l.Level, l.Grid)
		if err != nil {
			return nil, domain.MalformedMap(building, l.Level, err)
		}

		m, err := domain.NewParkingMap(building, l.Level, len(l.Grid), len([]rune(l.Grid[0])), cells, slotNames(doc.Slots, l.Level))
		if err != nil {
			return nil, err
		}
		levels = append(levels, m)
	}

	links := make([]domain.RampLink, 0, len(doc.Ramps))
	for _, r := range doc.Ramps {
		links = append(links, domain.RampLink{
			ID:   r.ID,
			From: r.From.coord(),
			To:   r.To.coord(),
		})
	}

	return domain.NewFacility(building, version, levels, links)
}

// slotNames filters the declared slot ids down to one level.
func slotNames(slots []SlotDTO, level int) []domain.SlotName {
	var names []domain.SlotName
	for _, s := range slots {
		if s.At.Level == level {
			names = append(names, domain.SlotName{ID: s.ID, At: s.At.coord()})
		}
	}
	return names
}

func (c CoordDTO) coord() domain.Coord {
	return domain.Coord{Level: c.Level, Row: c.Row, Col: c.Col}
}

// notFound tags an unknown building with the taxonomy sentinel.
func notFound(building string) error {
	return errors.Join(
		domain.ErrMapNotFound,
		zerr.With(zerr.New("no map file for building"), "building", building),
	)
}
