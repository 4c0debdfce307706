package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const countiesGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"GEOID": "31055", "NAME": "Douglas"},
      "geometry": {"type": "Polygon", "coordinates": [[[-96.5,41.2],[-95.9,41.2],[-95.9,41.4],[-96.5,41.4],[-96.5,41.2]]]}
    },
    {
      "type": "Feature",
      "properties": {"GEOID": "31007", "NAME": "Banner"},
      "geometry": {"type": "Polygon", "coordinates": [[[-104.1,41.4],[-103.4,41.4],[-103.4,41.7],[-104.1,41.7],[-104.1,41.4]]]}
    }
  ]
}`

func TestEnrichFeatures(t *testing.T) {
	rs := buildRecordSet(t)

	enriched, matched, err := EnrichFeatures([]byte(countiesGeoJSON), rs)
	require.NoError(t, err)
	assert.Equal(t, 1, matched)

	fc, err := geojson.UnmarshalFeatureCollection(enriched)
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)

	var douglas, banner *geojson.Feature
	for _, f := range fc.Features {
		switch f.Properties["GEOID"] {
		case "31055":
			douglas = f
		case "31007":
			banner = f
		}
	}
	require.NotNil(t, douglas)
	require.NotNil(t, banner)

	assert.Equal(t, 10.0, douglas.Properties["claims_percent"])
	assert.Equal(t, float64(1), douglas.Properties["claims_rank"])
	assert.Equal(t, "first", douglas.Properties["claims_rank_label"])

	// A county with no record passes through untouched.
	assert.NotContains(t, banner.Properties, "claims_percent")
	assert.Equal(t, "Banner", banner.Properties["NAME"])
}

func TestEnrichFeatures_BadGeoJSON(t *testing.T) {
	_, _, err := EnrichFeatures([]byte("{not geojson"), buildRecordSet(t))
	require.Error(t, err)
}

func TestChoroplethWriter_Write(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "counties.geojson")
	require.NoError(t, os.WriteFile(src, []byte(countiesGeoJSON), 0o644))

	outDir := filepath.Join(dir, "out")
	n, err := NewChoroplethWriter(src, outDir).Write(runOutputFixture(t))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	data, err := os.ReadFile(filepath.Join(outDir, ChoroplethName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "claims_rank_label")
}
