package artifact

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/county-claims-report/internal/domain"
	"github.com/couchcryptid/county-claims-report/internal/pipeline"
)

// buildRecordSet derives a small ranked record set for artifact tests:
// Douglas 1st (10.0%), Sarpy 2nd (5.0%), Lancaster 3rd (2.5%).
func buildRecordSet(t *testing.T) *domain.RecordSet {
	t.Helper()

	totals := []domain.UnitTotal{
		{UnitKey: "Douglas", Total: 100},
		{UnitKey: "Sarpy", Total: 50},
		{UnitKey: "Lancaster", Total: 25},
	}
	laborForce := []domain.LaborForceRecord{
		{UnitKey: "Douglas", StateCode: "31", CountyCode: "055", LaborForce: 1000},
		{UnitKey: "Sarpy", StateCode: "31", CountyCode: "153", LaborForce: 1000},
		{UnitKey: "Lancaster", StateCode: "31", CountyCode: "109", LaborForce: 1000},
	}

	rs, _, err := domain.BuildRecordSet(totals, laborForce)
	require.NoError(t, err)
	return rs
}

func runOutputFixture(t *testing.T) pipeline.RunOutput {
	t.Helper()
	return pipeline.RunOutput{
		RunID:       "run-1",
		Period:      "2020-03",
		GeneratedAt: time.Date(2020, 4, 11, 6, 0, 0, 0, time.UTC),
		RecordSet:   buildRecordSet(t),
		Observations: []domain.RawObservation{
			{UnitKey: "Douglas", Period: "2020-03-21", Value: 40},
			{UnitKey: "Douglas", Period: "2020-03-28", Value: 60},
			{UnitKey: "Sarpy", Period: "2020-03-21", Value: 50},
			{UnitKey: "Lancaster", Period: "2020-03-21", Value: 25},
		},
	}
}

func TestRenderReport(t *testing.T) {
	rec := domain.DerivedRecord{
		UnitKey:      "Douglas",
		CompositeID:  "31055",
		Total:        100,
		LaborForce:   1000,
		Percent:      10.0,
		Rank:         1,
		OrdinalLabel: "first",
	}

	var buf bytes.Buffer
	require.NoError(t, renderReport(&buf, rec, "2020-03", 93))

	text := buf.String()
	assert.Contains(t, text, "Douglas County")
	assert.Contains(t, text, "filed 100 initial unemployment claims")
	assert.Contains(t, text, "10.0% of the county's labor force of 1000")
	assert.Contains(t, text, "(2020-03 estimate)")
	assert.Contains(t, text, "the first highest share among the 93 Nebraska counties")
}

func TestReportWriter_Write(t *testing.T) {
	dir := t.TempDir()
	out := runOutputFixture(t)

	n, err := NewReportWriter(dir).Write(out)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	data, err := os.ReadFile(filepath.Join(dir, "sarpy_report.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "the second highest share")
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "box_butte", slug("Box Butte"))
	assert.Equal(t, "douglas", slug("Douglas"))
}
