package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/parknav/parknav/internal/adapters/config"
	"github.com/parknav/parknav/internal/core/domain"
	"github.com/parknav/parknav/internal/core/ports/mocks"
)

func newTestLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	return config.NewLoader(mocks.NewMockLogger(ctrl))
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, domain.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_Load_DefaultsWhenAbsent(t *testing.T) {
	tmpDir := t.TempDir()
	loader := newTestLoader(t)

	cfg, err := loader.Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, domain.DriverFile, cfg.Storage.Driver)
	assert.Equal(t, domain.DefaultRampCost, cfg.Routing.RampCost)
	assert.Equal(t, domain.DefaultRouteCacheSize, cfg.Cache.Routes)
	assert.Equal(t, domain.DefaultGraphCacheSize, cfg.Cache.Graphs)
	assert.Equal(t, domain.DefaultEmissionFactor, cfg.Emission.FactorGramsPerMeter)
	assert.Equal(t, "pretty", cfg.Log.Format)
	assert.Equal(t, filepath.Join(tmpDir, domain.DefaultMapsDirName), cfg.MapsDir)
}

func TestLoader_Load_FullFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `
version: "1"
maps_dir: floors
storage:
  driver: postgres
  dsn: "postgres://parknav@localhost/parknav?sslmode=disable"
routing:
  ramp_cost: 4.5
cache:
  routes: 256
  graphs: 8
emission:
  factor_grams_per_meter: 0.12
log:
  format: json
`)

	loader := newTestLoader(t)
	cfg, err := loader.Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, domain.DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "postgres://parknav@localhost/parknav?sslmode=disable", cfg.Storage.DSN)
	assert.Equal(t, 4.5, cfg.Routing.RampCost)
	assert.Equal(t, 256, cfg.Cache.Routes)
	assert.Equal(t, 8, cfg.Cache.Graphs)
	assert.Equal(t, 0.12, cfg.Emission.FactorGramsPerMeter)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, filepath.Join(tmpDir, "floors"), cfg.MapsDir)
}

func TestLoader_Load_PartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `
cache:
  routes: 64
`)

	loader := newTestLoader(t)
	cfg, err := loader.Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.Cache.Routes)
	assert.Equal(t, domain.DefaultGraphCacheSize, cfg.Cache.Graphs)
	assert.Equal(t, domain.DriverFile, cfg.Storage.Driver)
	assert.Equal(t, domain.DefaultRampCost, cfg.Routing.RampCost)
}

func TestLoader_Load_ZeroValueIsExplicit(t *testing.T) {
	// An explicit zero emission factor disables savings and must not be
	// mistaken for an absent setting.
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `
emission:
  factor_grams_per_meter: 0
`)

	loader := newTestLoader(t)
	cfg, err := loader.Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 0.0, cfg.Emission.FactorGramsPerMeter)
}

func TestLoader_Load_WalksUpToParent(t *testing.T) {
	rootDir := t.TempDir()
	writeConfig(t, rootDir, `
maps_dir: maps
`)

	nestedDir := filepath.Join(rootDir, "garages", "north")
	require.NoError(t, os.MkdirAll(nestedDir, domain.DirPerm))

	loader := newTestLoader(t)
	cfg, err := loader.Load(nestedDir)
	require.NoError(t, err)

	// The maps directory is anchored at the config file, not at cwd.
	assert.Equal(t, filepath.Join(rootDir, "maps"), cfg.MapsDir)
}

func TestLoader_Load_NearestFileWins(t *testing.T) {
	rootDir := t.TempDir()
	writeConfig(t, rootDir, `
routing:
  ramp_cost: 9
`)

	innerDir := filepath.Join(rootDir, "inner")
	require.NoError(t, os.MkdirAll(innerDir, domain.DirPerm))
	writeConfig(t, innerDir, `
routing:
  ramp_cost: 2
`)

	loader := newTestLoader(t)
	cfg, err := loader.Load(innerDir)
	require.NoError(t, err)

	assert.Equal(t, 2.0, cfg.Routing.RampCost)
}

func TestLoader_Load_AbsoluteMapsDir(t *testing.T) {
	tmpDir := t.TempDir()
	mapsDir := filepath.Join(tmpDir, "shared", "maps")
	writeConfig(t, tmpDir, "maps_dir: "+mapsDir+"\n")

	loader := newTestLoader(t)
	cfg, err := loader.Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, mapsDir, cfg.MapsDir)
}

func TestLoader_Load_ReadError(t *testing.T) {
	tmpDir := t.TempDir()

	// A directory by the config file name makes the read fail after
	// discovery succeeds.
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, domain.ConfigFileName), domain.DirPerm))

	loader := newTestLoader(t)
	_, err := loader.Load(tmpDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrConfigReadFailed.Error())
}

func TestLoader_Load_ParseError(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "routing: [not, a, mapping]\n")

	loader := newTestLoader(t)
	_, err := loader.Load(tmpDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrConfigParseFailed.Error())
}

func TestLoader_Load_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "unknown driver",
			content: "storage:\n  driver: redis\n",
			wantErr: domain.ErrUnknownStorageDriver,
		},
		{
			name:    "postgres without dsn",
			content: "storage:\n  driver: postgres\n",
			wantErr: domain.ErrMissingDSN,
		},
		{
			name:    "ramp cost not above flat weight",
			content: "routing:\n  ramp_cost: 1\n",
			wantErr: domain.ErrInvalidRampCost,
		},
		{
			name:    "zero route capacity",
			content: "cache:\n  routes: 0\n",
			wantErr: domain.ErrInvalidCacheCapacity,
		},
		{
			name:    "negative emission factor",
			content: "emission:\n  factor_grams_per_meter: -0.1\n",
			wantErr: domain.ErrInvalidEmissionFactor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			writeConfig(t, tmpDir, tt.content)

			loader := newTestLoader(t)
			_, err := loader.Load(tmpDir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr.Error())
		})
	}
}

func TestLoader_Load_WarnsOnUnusedDSN(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `
storage:
  driver: file
  dsn: "postgres://parknav@localhost/parknav"
`)

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "storage.dsn")
	})

	loader := config.NewLoader(mockLogger)
	_, err := loader.Load(tmpDir)
	require.NoError(t, err)
}

func TestLoader_DiscoverRoot(t *testing.T) {
	rootDir := t.TempDir()
	writeConfig(t, rootDir, "version: \"1\"\n")

	nestedDir := filepath.Join(rootDir, "a", "b")
	require.NoError(t, os.MkdirAll(nestedDir, domain.DirPerm))

	loader := newTestLoader(t)

	got, err := loader.DiscoverRoot(nestedDir)
	require.NoError(t, err)
	assert.Equal(t, rootDir, got)
}

func TestLoader_DiscoverRoot_FallsBackToCwd(t *testing.T) {
	tmpDir := t.TempDir()
	loader := newTestLoader(t)

	got, err := loader.DiscoverRoot(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, tmpDir, got)
}

func TestLoader_Load_MapFS(t *testing.T) {
	fsys := fstest.MapFS{
		"site/parknav.yaml": &fstest.MapFile{Data: []byte("routing:\n  ramp_cost: 5\n")},
		"site/garage/.keep": &fstest.MapFile{},
	}

	ctrl := gomock.NewController(t)
	loader := config.NewLoaderWithFS(
		config.NewMapFSAdapter("/work", fsys),
		mocks.NewMockLogger(ctrl),
	)

	cfg, err := loader.Load("/work/site/garage")
	require.NoError(t, err)
	assert.Equal(t, 5.0, cfg.Routing.RampCost)
	assert.Equal(t, "/work/site/maps", cfg.MapsDir)

	root, err := loader.DiscoverRoot("/work/site/garage")
	require.NoError(t, err)
	assert.Equal(t, "/work/site", root)
}
