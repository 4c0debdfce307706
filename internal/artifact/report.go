// Package artifact renders the downstream outputs of a pipeline run. Every
// writer here consumes only the derived record set (plus the normalized
// weekly observations for charts); none of them reach back into raw inputs.
package artifact

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/couchcryptid/county-claims-report/internal/domain"
	"github.com/couchcryptid/county-claims-report/internal/pipeline"
)

// reportText is the fixed per-county narrative. Substitutions come straight
// off the DerivedRecord; the count of ranked counties is the only context
// added.
const reportText = `{{.UnitKey}} County — Initial Unemployment Claims

Workers in {{.UnitKey}} County filed {{printf "%.0f" .Total}} initial unemployment claims over the covered weeks. That equals {{printf "%.1f" .Percent}}% of the county's labor force of {{printf "%.0f" .LaborForce}} ({{.Period}} estimate) and is the {{.OrdinalLabel}} highest share among the {{.CountyCount}} Nebraska counties ranked in this report.
`

var reportTmpl = template.Must(template.New("report").Parse(reportText))

type reportData struct {
	domain.DerivedRecord
	Period      string
	CountyCount int
}

// ReportWriter renders one narrative text file per ranked county.
type ReportWriter struct {
	dir string
}

// NewReportWriter creates a report writer targeting the given directory.
func NewReportWriter(dir string) *ReportWriter {
	return &ReportWriter{dir: dir}
}

// Kind implements pipeline.ArtifactWriter.
func (w *ReportWriter) Kind() string { return "report" }

// Write renders a report per county and returns how many were written.
func (w *ReportWriter) Write(out pipeline.RunOutput) (int, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return 0, fmt.Errorf("create report dir: %w", err)
	}

	records := out.RecordSet.Records()
	for _, rec := range records {
		var buf bytes.Buffer
		if err := renderReport(&buf, rec, out.Period, len(records)); err != nil {
			return 0, err
		}
		path := filepath.Join(w.dir, slug(rec.UnitKey)+"_report.txt")
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return 0, fmt.Errorf("write report for %s: %w", rec.UnitKey, err)
		}
	}
	return len(records), nil
}

func renderReport(w io.Writer, rec domain.DerivedRecord, period string, countyCount int) error {
	data := reportData{DerivedRecord: rec, Period: period, CountyCount: countyCount}
	if err := reportTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render report for %s: %w", rec.UnitKey, err)
	}
	return nil
}

// slug turns a county name into a safe lowercase file stem
// ("Box Butte" -> "box_butte").
func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}
