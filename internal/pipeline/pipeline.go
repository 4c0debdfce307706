// Package pipeline orchestrates one load-derive-write pass: read both raw
// tables, normalize claims keys, aggregate weekly observations, join and
// rank, then hand the record set to the artifact writers.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/county-claims-report/internal/domain"
	"github.com/couchcryptid/county-claims-report/internal/observability"
)

// ClaimsSource produces the raw weekly claim observations.
type ClaimsSource interface {
	Claims() ([]domain.RawObservation, error)
}

// LaborForceSource produces labor-force records for a single period.
type LaborForceSource interface {
	LaborForce() ([]domain.LaborForceRecord, error)
}

// RunOutput is everything a single successful derivation produced, handed
// to each artifact writer. Observations carry normalized county keys.
type RunOutput struct {
	RunID        string
	Period       string
	GeneratedAt  time.Time
	RecordSet    *domain.RecordSet
	Observations []domain.RawObservation
	Stats        domain.JoinStats
}

// ArtifactWriter renders one kind of output artifact from a run.
// A write failure fails the run; partially written artifact sets are
// regenerated wholesale on the next run.
type ArtifactWriter interface {
	Kind() string
	Write(out RunOutput) (int, error)
}

// Pipeline wires sources, the derivation core, and artifact writers.
type Pipeline struct {
	claims  ClaimsSource
	labor   LaborForceSource
	writers []ArtifactWriter
	period  string
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
	ready   atomic.Bool
}

// New creates a Pipeline with the given stages and observability.
func New(claims ClaimsSource, labor LaborForceSource, writers []ArtifactWriter,
	period string, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Pipeline {
	return &Pipeline{
		claims:  claims,
		labor:   labor,
		writers: writers,
		period:  period,
		logger:  logger,
		metrics: metrics,
		clock:   clock,
	}
}

// CheckReadiness returns nil once at least one build has completed, or an
// error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no record set has been built yet")
	}
	return nil
}

// Run executes the pipeline. With a non-positive interval it runs once and
// returns; otherwise it re-runs on the interval until the context is
// cancelled, logging failed builds and keeping the previous artifacts.
func (p *Pipeline) Run(ctx context.Context, interval time.Duration) error {
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	if interval <= 0 {
		_, err := p.RunOnce(ctx)
		return err
	}

	if _, err := p.RunOnce(ctx); err != nil {
		p.logger.Error("build failed, keeping previous artifacts", "error", err)
	}

	ticker := p.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			if _, err := p.RunOnce(ctx); err != nil {
				p.logger.Error("build failed, keeping previous artifacts", "error", err)
			}
		}
	}
}

// RunOnce performs one complete load-derive-write pass and returns the
// record set it built. Data-quality drops are logged and counted, never
// fatal; rank-range and composite-id violations abort the whole pass so a
// partially correct record set is never published.
func (p *Pipeline) RunOnce(ctx context.Context) (*domain.RecordSet, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := p.logger.With("run_id", runID)

	rs, out, err := p.derive(ctx, runID, logger)
	if err != nil {
		p.metrics.BuildsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	for _, w := range p.writers {
		if err := ctx.Err(); err != nil {
			p.metrics.BuildsTotal.WithLabelValues("error").Inc()
			return nil, err
		}
		n, err := w.Write(out)
		if err != nil {
			p.metrics.BuildsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("write %s artifacts: %w", w.Kind(), err)
		}
		p.metrics.ArtifactsWritten.WithLabelValues(w.Kind()).Add(float64(n))
		logger.Info("artifacts written", "kind", w.Kind(), "count", n)
	}

	p.metrics.BuildDuration.Observe(time.Since(start).Seconds())
	p.metrics.BuildsTotal.WithLabelValues("success").Inc()
	p.metrics.LastBuildTime.Set(float64(out.GeneratedAt.Unix()))
	p.ready.Store(true)

	logger.Info("run complete",
		"counties", rs.Len(),
		"duration", time.Since(start),
	)
	return rs, nil
}

// derive runs the core join-and-rank computation for one pass.
func (p *Pipeline) derive(ctx context.Context, runID string, logger *slog.Logger) (*domain.RecordSet, RunOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, RunOutput{}, err
	}

	observations, err := p.claims.Claims()
	if err != nil {
		return nil, RunOutput{}, fmt.Errorf("load claims: %w", err)
	}
	p.metrics.ObservationsRead.Add(float64(len(observations)))

	laborForce, err := p.labor.LaborForce()
	if err != nil {
		return nil, RunOutput{}, fmt.Errorf("load labor force: %w", err)
	}
	p.metrics.LaborForceRows.Add(float64(len(laborForce)))

	normalized, nonNumeric := normalizeObservations(observations)
	if nonNumeric > 0 {
		p.metrics.RowsDropped.WithLabelValues("non_numeric").Add(float64(nonNumeric))
		logger.Info("non-numeric claim cells dropped", "count", nonNumeric)
	}

	totals := domain.AggregateClaims(normalized)
	if dropped := countiesWithData(normalized) - len(totals); dropped > 0 {
		p.metrics.RowsDropped.WithLabelValues("non_positive_total").Add(float64(dropped))
		logger.Info("counties with non-positive totals dropped", "count", dropped)
	}

	// Aggregation order is map order; fix it so tie-breaks are stable
	// across runs, not just within one.
	sort.Slice(totals, func(i, j int) bool { return totals[i].UnitKey < totals[j].UnitKey })

	rs, stats, err := domain.BuildRecordSet(totals, laborForce)
	if err != nil {
		return nil, RunOutput{}, fmt.Errorf("build record set: %w", err)
	}
	if stats.JoinMisses > 0 {
		p.metrics.RowsDropped.WithLabelValues("join_miss").Add(float64(stats.JoinMisses))
		logger.Info("counties without labor-force data dropped", "count", stats.JoinMisses)
	}
	if stats.NonPositiveLaborForce > 0 {
		p.metrics.RowsDropped.WithLabelValues("non_positive_labor_force").Add(float64(stats.NonPositiveLaborForce))
		logger.Info("rows with non-positive labor force dropped", "count", stats.NonPositiveLaborForce)
	}
	p.metrics.RecordsBuilt.Set(float64(rs.Len()))

	out := RunOutput{
		RunID:        runID,
		Period:       p.period,
		GeneratedAt:  p.clock.Now(),
		RecordSet:    rs,
		Observations: normalized,
		Stats:        stats,
	}
	return rs, out, nil
}

// normalizeObservations rewrites claims keys to their canonical form and
// counts the non-numeric markers for metrics. The marker rows stay in the
// slice; the aggregator is what drops them.
func normalizeObservations(observations []domain.RawObservation) ([]domain.RawObservation, int) {
	normalized := make([]domain.RawObservation, len(observations))
	nonNumeric := 0
	for i, obs := range observations {
		obs.UnitKey = domain.NormalizeClaimsKey(obs.UnitKey)
		if math.IsNaN(obs.Value) || math.IsInf(obs.Value, 0) {
			nonNumeric++
		}
		normalized[i] = obs
	}
	return normalized, nonNumeric
}

// countiesWithData counts distinct keys holding at least one numeric
// observation, the baseline for the non-positive-total drop tally.
func countiesWithData(observations []domain.RawObservation) int {
	seen := make(map[string]bool)
	for _, obs := range observations {
		if math.IsNaN(obs.Value) || math.IsInf(obs.Value, 0) {
			continue
		}
		seen[obs.UnitKey] = true
	}
	return len(seen)
}
