package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/orb/geojson"

	"github.com/couchcryptid/county-claims-report/internal/domain"
	"github.com/couchcryptid/county-claims-report/internal/pipeline"
)

// geoidProperty is the feature property carrying the county's composite
// FIPS identifier in Census TIGER/cartographic boundary files.
const geoidProperty = "GEOID"

// ChoroplethName is the file name of the enriched state-wide GeoJSON.
const ChoroplethName = "claims_choropleth.geojson"

// ChoroplethWriter joins derived records onto county polygons by composite
// identifier and writes one enriched state-wide GeoJSON.
type ChoroplethWriter struct {
	sourcePath string
	dir        string
}

// NewChoroplethWriter creates a choropleth writer reading polygons from
// sourcePath and writing the enriched file into dir.
func NewChoroplethWriter(sourcePath, dir string) *ChoroplethWriter {
	return &ChoroplethWriter{sourcePath: sourcePath, dir: dir}
}

// Kind implements pipeline.ArtifactWriter.
func (w *ChoroplethWriter) Kind() string { return "choropleth" }

// Write produces the single enriched GeoJSON artifact.
func (w *ChoroplethWriter) Write(out pipeline.RunOutput) (int, error) {
	data, err := os.ReadFile(w.sourcePath)
	if err != nil {
		return 0, fmt.Errorf("read county polygons: %w", err)
	}

	enriched, _, err := EnrichFeatures(data, out.RecordSet)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return 0, fmt.Errorf("create choropleth dir: %w", err)
	}
	path := filepath.Join(w.dir, ChoroplethName)
	if err := os.WriteFile(path, enriched, 0o644); err != nil {
		return 0, fmt.Errorf("write choropleth: %w", err)
	}
	return 1, nil
}

// EnrichFeatures attaches claims_total, claims_percent, claims_rank, and
// claims_rank_label properties to each feature whose GEOID matches a
// derived record's composite identifier. Features without a match pass
// through untouched: a county missing from the record set means "no data",
// not an error. Returns the enriched GeoJSON and the match count.
func EnrichFeatures(data []byte, rs *domain.RecordSet) ([]byte, int, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, 0, fmt.Errorf("parse county polygons: %w", err)
	}

	byComposite := make(map[string]domain.DerivedRecord, rs.Len())
	for _, rec := range rs.Records() {
		byComposite[rec.CompositeID] = rec
	}

	matched := 0
	for _, f := range fc.Features {
		geoid, ok := f.Properties[geoidProperty].(string)
		if !ok {
			continue
		}
		rec, ok := byComposite[geoid]
		if !ok {
			continue
		}
		f.Properties["claims_total"] = rec.Total
		f.Properties["claims_percent"] = rec.Percent
		f.Properties["claims_rank"] = rec.Rank
		f.Properties["claims_rank_label"] = rec.OrdinalLabel
		matched++
	}

	enriched, err := fc.MarshalJSON()
	if err != nil {
		return nil, 0, fmt.Errorf("marshal enriched polygons: %w", err)
	}
	return enriched, matched, nil
}
