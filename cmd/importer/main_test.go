package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const twoRoadsGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"osm_id": 1, "fclass": "residential", "name": "Jalan Malioboro"},
      "geometry": {"type": "LineString", "coordinates": [[110.3650, -7.7930], [110.3660, -7.7920]]}
    },
    {
      "type": "Feature",
      "properties": {"osm_id": 2, "fclass": "residential"},
      "geometry": {"type": "LineString", "coordinates": [[110.3660, -7.7920], [110.3670, -7.7910], [110.3680, -7.7900]]}
    }
  ]
}`

func testImportConfig(dir string, files ...string) Config {
	return Config{
		Source:             SOURCE_GEOJSON,
		Files:              files,
		Dir:                dir,
		IDAttribute:        "osm_id",
		Procs:              1,
		TagsToCopy:         []string{"name"},
		ClassifierCapacity: 16,
		StoreCapacity:      16,
		UseMaxSpeed:        true,
		ParallelImports:    2,
		BoundingBoxRadius:  0.05,
	}
}

func TestImportAll(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"solo", "jogja", "klaten"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".geojson"), []byte(twoRoadsGeoJSON), 0o644))
	}

	results, err := importAll(context.Background(), testImportConfig(dir, "solo", "jogja", "klaten"), zap.NewNop())
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, file := range []string{"solo", "jogja", "klaten"} {
		res := results[i]
		assert.Equal(t, file, res.file)
		assert.Equal(t, 3, res.store.NumberOfNodes())
		assert.Equal(t, 2, res.store.NumberOfEdges())
		assert.Equal(t, 2, res.rtree.Len())
		assert.Equal(t, 0.0, res.counters["edges_rejected"])
	}
	// every file is imported into its own graph
	assert.NotSame(t, results[0].store, results[1].store)
}

func TestImportAllFailure(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "solo.geojson"), []byte(twoRoadsGeoJSON), 0o644))

	_, err := importAll(context.Background(), testImportConfig(dir, "solo", "missing"), zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import missing")
}
