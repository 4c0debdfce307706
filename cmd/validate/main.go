// Command validate performs end-to-end integrity checks on a completed
// report run. It reloads the raw claims and labor-force inputs, recomputes
// the derivation through the domain package, and cross-checks the run
// summary and choropleth artifacts against the recomputed values.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -claims data/mock/weekly_claims.csv \
//	  -laborforce data/mock/laus_laborforce.xlsx \
//	  -period 2020-03 \
//	  -summary out/run_summary.json \
//	  -choropleth out/claims_choropleth.geojson
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/paulmach/orb/geojson"

	"github.com/couchcryptid/county-claims-report/internal/artifact"
	"github.com/couchcryptid/county-claims-report/internal/domain"
	"github.com/couchcryptid/county-claims-report/internal/loader"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	claimsPath := flag.String("claims", "", "path to the weekly claims CSV")
	laborPath := flag.String("laborforce", "", "path to the labor-force workbook")
	period := flag.String("period", "", "labor-force reporting period used for the run")
	summaryPath := flag.String("summary", "", "path to the run_summary.json artifact")
	choroplethPath := flag.String("choropleth", "", "path to the choropleth GeoJSON artifact (optional)")
	flag.Parse()

	if *claimsPath == "" || *laborPath == "" || *period == "" || *summaryPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(*claimsPath, *laborPath, *period, *summaryPath, *choroplethPath))
}

func run(claimsPath, laborPath, period, summaryPath, choroplethPath string) int {
	fmt.Println("=== County Claims Report Validation ===")
	fmt.Println()

	rs, stats, err := recompute(claimsPath, laborPath, period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: recompute derivation: %v\n", err)
		return 1
	}

	summary, err := loadSummary(summaryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load run summary: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateRankingInvariants(rs),
		validateSummary(summary, rs, stats),
	}
	if choroplethPath != "" {
		p, err := validateChoropleth(choroplethPath, rs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load choropleth: %v\n", err)
			return 1
		}
		phases = append(phases, p)
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-44s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Counties: %d recomputed, %d in summary; join misses: %d, non-positive labor force: %d\n",
		rs.Len(), summary.Counties, stats.JoinMisses, stats.NonPositiveLaborForce)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// recompute reruns the full derivation from the raw inputs, matching the
// pipeline's normalize, aggregate, sort, and join sequence.
func recompute(claimsPath, laborPath, period string) (*domain.RecordSet, domain.JoinStats, error) {
	observations, err := loader.NewClaimsFile(claimsPath).Claims()
	if err != nil {
		return nil, domain.JoinStats{}, fmt.Errorf("load claims: %w", err)
	}
	laborRecords, err := loader.NewLaborForceFile(laborPath, period).LaborForce()
	if err != nil {
		return nil, domain.JoinStats{}, fmt.Errorf("load labor force: %w", err)
	}

	for i := range observations {
		observations[i].UnitKey = domain.NormalizeClaimsKey(observations[i].UnitKey)
	}

	totals := domain.AggregateClaims(observations)
	sort.Slice(totals, func(i, j int) bool { return totals[i].UnitKey < totals[j].UnitKey })

	return domain.BuildRecordSet(totals, laborRecords)
}

func loadSummary(path string) (artifact.RunSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return artifact.RunSummary{}, err
	}
	var s artifact.RunSummary
	if err := json.Unmarshal(data, &s); err != nil {
		return artifact.RunSummary{}, err
	}
	return s, nil
}

// ── Phase 1: Ranking Invariants ──
// Percents non-increasing, ranks dense from 1, ordinal labels consistent.

func validateRankingInvariants(rs *domain.RecordSet) *phase {
	p := &phase{name: "Phase 1: Ranking Invariants"}

	records := rs.Records()
	for i, r := range records {
		if i > 0 && r.Percent > records[i-1].Percent {
			p.errorf("%s: percent %.1f exceeds preceding %.1f", r.UnitKey, r.Percent, records[i-1].Percent)
		}
		if want := i + 1; r.Rank != want {
			p.errorf("%s: rank %d, expected %d at position %d", r.UnitKey, r.Rank, want, i)
		}

		label, err := domain.FormatOrdinal(r.Rank)
		if err != nil {
			p.errorf("%s: rank %d has no ordinal: %v", r.UnitKey, r.Rank, err)
		} else if label != r.OrdinalLabel {
			p.errorf("%s: ordinal %q, expected %q for rank %d", r.UnitKey, r.OrdinalLabel, label, r.Rank)
		}

		if len(r.CompositeID) != 5 {
			p.errorf("%s: composite ID %q is not 5 digits", r.UnitKey, r.CompositeID)
		}
		if r.LaborForce <= 0 {
			p.errorf("%s: non-positive labor force %g survived the join", r.UnitKey, r.LaborForce)
		}
	}
	return p
}

// ── Phase 2: Summary Consistency ──
// The persisted run summary must match the recomputed derivation.

func validateSummary(s artifact.RunSummary, rs *domain.RecordSet, stats domain.JoinStats) *phase {
	p := &phase{name: "Phase 2: Summary Consistency"}

	records := rs.Records()
	if s.Counties != len(records) {
		p.errorf("county count: summary has %d, recomputed %d", s.Counties, len(records))
	}
	if s.JoinMisses != stats.JoinMisses {
		p.errorf("join misses: summary has %d, recomputed %d", s.JoinMisses, stats.JoinMisses)
	}
	if s.NonPositiveLaborForce != stats.NonPositiveLaborForce {
		p.errorf("non-positive labor force: summary has %d, recomputed %d", s.NonPositiveLaborForce, stats.NonPositiveLaborForce)
	}
	if len(records) > 0 && s.TopCounty != records[0].UnitKey {
		p.errorf("top county: summary has %q, recomputed %q", s.TopCounty, records[0].UnitKey)
	}

	if len(s.Records) != len(records) {
		p.errorf("record count: summary has %d, recomputed %d", len(s.Records), len(records))
		return p
	}

	for i, got := range s.Records {
		want := records[i]
		if got.UnitKey != want.UnitKey {
			p.errorf("record %d: county %q, expected %q", i, got.UnitKey, want.UnitKey)
			continue
		}
		if got.CompositeID != want.CompositeID {
			p.errorf("%s: composite ID %q, expected %q", want.UnitKey, got.CompositeID, want.CompositeID)
		}
		if !floatEq(got.Total, want.Total) {
			p.errorf("%s: total %g, expected %g", want.UnitKey, got.Total, want.Total)
		}
		if !floatEq(got.Percent, want.Percent) {
			p.errorf("%s: percent %g, expected %g", want.UnitKey, got.Percent, want.Percent)
		}
		if got.Rank != want.Rank {
			p.errorf("%s: rank %d, expected %d", want.UnitKey, got.Rank, want.Rank)
		}
		if got.OrdinalLabel != want.OrdinalLabel {
			p.errorf("%s: ordinal %q, expected %q", want.UnitKey, got.OrdinalLabel, want.OrdinalLabel)
		}
	}
	return p
}

// ── Phase 3: Choropleth Alignment ──
// Every ranked county with a matching GEOID feature must carry the derived
// properties; GeoJSON numbers come back as float64.

func validateChoropleth(path string, rs *domain.RecordSet) (*phase, error) {
	p := &phase{name: "Phase 3: Choropleth Alignment"}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.DerivedRecord, rs.Len())
	for _, r := range rs.Records() {
		byID[r.CompositeID] = r
	}

	var matched int
	for _, f := range fc.Features {
		geoid, _ := f.Properties["GEOID"].(string)
		if geoid == "" {
			p.errorf("feature without a GEOID property")
			continue
		}

		r, ok := byID[geoid]
		if !ok {
			if _, has := f.Properties["claims_rank"]; has {
				p.errorf("GEOID %s: has claims properties but no recomputed record", geoid)
			}
			continue
		}
		matched++

		checkNumProp(p, f.Properties, geoid, "claims_total", r.Total)
		checkNumProp(p, f.Properties, geoid, "claims_percent", r.Percent)
		checkNumProp(p, f.Properties, geoid, "claims_rank", float64(r.Rank))
		if label, _ := f.Properties["claims_rank_label"].(string); label != r.OrdinalLabel {
			p.errorf("GEOID %s: claims_rank_label %q, expected %q", geoid, label, r.OrdinalLabel)
		}
	}

	if matched == 0 && rs.Len() > 0 {
		p.errorf("no ranked county matched any feature GEOID")
	}
	return p, nil
}

func checkNumProp(p *phase, props geojson.Properties, geoid, key string, want float64) {
	got, ok := props[key].(float64)
	if !ok {
		p.errorf("GEOID %s: %s missing or not numeric", geoid, key)
		return
	}
	if !floatEq(got, want) {
		p.errorf("GEOID %s: %s %g, expected %g", geoid, key, got, want)
	}
}

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
