package artifact

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/couchcryptid/county-claims-report/internal/domain"
	"github.com/couchcryptid/county-claims-report/internal/pipeline"
)

// ChartWriter renders one weekly-claims line chart PNG per ranked county.
type ChartWriter struct {
	dir string
}

// NewChartWriter creates a chart writer targeting the given directory.
func NewChartWriter(dir string) *ChartWriter {
	return &ChartWriter{dir: dir}
}

// Kind implements pipeline.ArtifactWriter.
func (w *ChartWriter) Kind() string { return "chart" }

// Write renders a chart per county that has at least one numeric weekly
// observation, keyed through the record set so only ranked counties get
// charts.
func (w *ChartWriter) Write(out pipeline.RunOutput) (int, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return 0, fmt.Errorf("create chart dir: %w", err)
	}

	series := groupSeries(out.Observations)
	written := 0
	for _, rec := range out.RecordSet.Records() {
		weeks := series[rec.UnitKey]
		if len(weeks) == 0 {
			continue
		}
		path := filepath.Join(w.dir, slug(rec.UnitKey)+"_claims.png")
		if err := writeChart(path, rec, weeks); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// groupSeries collects numeric observations per county, ordered by week
// label. Week labels are ISO dates, so lexical order is chronological.
func groupSeries(observations []domain.RawObservation) map[string][]domain.RawObservation {
	series := make(map[string][]domain.RawObservation)
	for _, obs := range observations {
		if math.IsNaN(obs.Value) || math.IsInf(obs.Value, 0) {
			continue
		}
		series[obs.UnitKey] = append(series[obs.UnitKey], obs)
	}
	for key := range series {
		s := series[key]
		sort.Slice(s, func(i, j int) bool { return s[i].Period < s[j].Period })
	}
	return series
}

func writeChart(path string, rec domain.DerivedRecord, weeks []domain.RawObservation) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s County — weekly initial unemployment claims", rec.UnitKey)
	p.X.Label.Text = "week"
	p.Y.Label.Text = "initial claims"
	p.Y.Min = 0

	pts := make(plotter.XYs, len(weeks))
	labels := make([]string, len(weeks))
	for i, obs := range weeks {
		pts[i] = plotter.XY{X: float64(i), Y: obs.Value}
		labels[i] = obs.Period
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("chart for %s: %w", rec.UnitKey, err)
	}
	p.Add(plotter.NewGrid(), line)
	p.NominalX(labels...)

	if err := p.Save(20*vg.Centimeter, 10*vg.Centimeter, path); err != nil {
		return fmt.Errorf("save chart for %s: %w", rec.UnitKey, err)
	}
	return nil
}
