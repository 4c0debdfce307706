package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/county-claims-report/internal/domain"
	"github.com/couchcryptid/county-claims-report/internal/pipeline"
)

// SummaryName is the file name of the machine-readable run summary.
const SummaryName = "run_summary.json"

// RunSummary is the machine-readable account of one pipeline run: what was
// built, what was dropped, and the full ranked table for cross-checking.
type RunSummary struct {
	RunID                 string                 `json:"run_id"`
	GeneratedAt           time.Time              `json:"generated_at"`
	Period                string                 `json:"period"`
	Counties              int                    `json:"counties"`
	JoinMisses            int                    `json:"join_misses"`
	NonPositiveLaborForce int                    `json:"non_positive_labor_force"`
	TopCounty             string                 `json:"top_county,omitempty"`
	Records               []domain.DerivedRecord `json:"records"`
}

// SummaryWriter writes the run summary JSON.
type SummaryWriter struct {
	dir string
}

// NewSummaryWriter creates a summary writer targeting the given directory.
func NewSummaryWriter(dir string) *SummaryWriter {
	return &SummaryWriter{dir: dir}
}

// Kind implements pipeline.ArtifactWriter.
func (w *SummaryWriter) Kind() string { return "summary" }

// Write produces the single run-summary artifact.
func (w *SummaryWriter) Write(out pipeline.RunOutput) (int, error) {
	summary := NewRunSummary(out)

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("marshal run summary: %w", err)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return 0, fmt.Errorf("create summary dir: %w", err)
	}
	path := filepath.Join(w.dir, SummaryName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("write run summary: %w", err)
	}
	return 1, nil
}

// NewRunSummary flattens a run output into its summary form.
func NewRunSummary(out pipeline.RunOutput) RunSummary {
	summary := RunSummary{
		RunID:                 out.RunID,
		GeneratedAt:           out.GeneratedAt,
		Period:                out.Period,
		Counties:              out.RecordSet.Len(),
		JoinMisses:            out.Stats.JoinMisses,
		NonPositiveLaborForce: out.Stats.NonPositiveLaborForce,
		Records:               out.RecordSet.Records(),
	}
	if len(summary.Records) > 0 {
		summary.TopCounty = summary.Records[0].UnitKey
	}
	return summary
}
