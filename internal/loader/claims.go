// Package loader reads the two raw statistical tables the pipeline joins:
// the weekly claims CSV extract and the LAUS labor-force workbook. Loaders
// are thin collaborators: they locate columns, mark bad cells, and hand
// immutable slices to the core; all filtering and derivation happens there.
package loader

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/county-claims-report/internal/domain"
)

// Claims column headers in the NE DOL extract. Matching is
// case-insensitive; order in the file does not matter.
const (
	claimsColCounty = "county"
	claimsColWeek   = "week"
	claimsColClaims = "claims"
)

// ClaimsFile loads weekly claim observations from a CSV extract.
type ClaimsFile struct {
	path string
}

// NewClaimsFile creates a claims source for the given CSV path.
func NewClaimsFile(path string) *ClaimsFile {
	return &ClaimsFile{path: path}
}

// Claims reads all observations. County keys are returned as they appear
// in the file; normalization is the pipeline's job. Blank or non-numeric
// claim counts become NaN markers so the aggregator can drop them row-wise
// instead of zero-filling.
func (c *ClaimsFile) Claims() ([]domain.RawObservation, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("open claims file: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read claims csv: %w", err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("claims file %s has no header row", c.path)
	}

	cols, err := headerIndex(rows[0], claimsColCounty, claimsColWeek, claimsColClaims)
	if err != nil {
		return nil, fmt.Errorf("claims file %s: %w", c.path, err)
	}

	observations := make([]domain.RawObservation, 0, len(rows)-1)
	for _, row := range rows[1:] {
		observations = append(observations, domain.RawObservation{
			UnitKey: field(row, cols[claimsColCounty]),
			Period:  field(row, cols[claimsColWeek]),
			Value:   parseCount(field(row, cols[claimsColClaims])),
		})
	}
	return observations, nil
}

// headerIndex maps required header names (lowercased) to column positions.
func headerIndex(header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return idx, nil
}

func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseCount parses a statistical count cell. Thousands separators are
// tolerated ("1,234"). Anything unparseable becomes NaN, the marker the
// aggregator drops.
func parseCount(s string) float64 {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
