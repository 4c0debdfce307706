package loader

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/county-claims-report/internal/domain"
)

// Labor-force column headers in the LAUS export shape.
const (
	lfColArea       = "area"
	lfColStateFIPS  = "state_fips"
	lfColCountyFIPS = "county_fips"
	lfColPeriod     = "period"
	lfColLaborForce = "labor_force"
)

// LaborForceFile loads labor-force estimates from a LAUS export, either an
// XLSX workbook (the form BLS publishes) or a CSV with the same columns.
// Rows are filtered to a single reporting period here, before the core
// ever sees them.
type LaborForceFile struct {
	path   string
	period string
}

// NewLaborForceFile creates a labor-force source for the given path,
// pre-filtered to the given reporting period.
func NewLaborForceFile(path, period string) *LaborForceFile {
	return &LaborForceFile{path: path, period: period}
}

// LaborForce reads the records for the configured period. Rows with an
// unparseable labor-force cell are skipped; the positive-denominator
// filter in the rank builder handles zeros and negatives.
func (l *LaborForceFile) LaborForce() ([]domain.LaborForceRecord, error) {
	var rows [][]string
	var err error

	if strings.EqualFold(filepath.Ext(l.path), ".xlsx") {
		rows, err = readWorkbookRows(l.path)
	} else {
		rows, err = readCSVRows(l.path)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("labor-force file %s has no header row", l.path)
	}

	cols, err := headerIndex(rows[0], lfColArea, lfColStateFIPS, lfColCountyFIPS, lfColPeriod, lfColLaborForce)
	if err != nil {
		return nil, fmt.Errorf("labor-force file %s: %w", l.path, err)
	}

	var records []domain.LaborForceRecord
	for _, row := range rows[1:] {
		if field(row, cols[lfColPeriod]) != l.period {
			continue
		}
		lf := parseCount(field(row, cols[lfColLaborForce]))
		if math.IsNaN(lf) {
			continue
		}
		records = append(records, domain.LaborForceRecord{
			UnitKey:    field(row, cols[lfColArea]),
			StateCode:  field(row, cols[lfColStateFIPS]),
			CountyCode: field(row, cols[lfColCountyFIPS]),
			Period:     l.period,
			LaborForce: lf,
		})
	}
	return records, nil
}

// readWorkbookRows reads the first sheet of an XLSX workbook.
func readWorkbookRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read workbook rows: %w", err)
	}
	return rows, nil
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open labor-force file: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read labor-force csv: %w", err)
	}
	return rows, nil
}
