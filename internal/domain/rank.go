package domain

import (
	"fmt"
	"math"
	"sort"
)

// JoinStats tallies rows dropped during the join. Drops are data-quality
// events, not errors: the caller logs them as informational and feeds them
// to metrics, and the build carries on.
type JoinStats struct {
	// JoinMisses counts totals with no labor-force row for the same key.
	JoinMisses int
	// NonPositiveLaborForce counts joined rows excluded because the
	// labor-force denominator was zero or negative.
	NonPositiveLaborForce int
}

// BuildRecordSet inner-joins claims totals with labor-force records on the
// county key and derives the ranked record set:
//
//  1. Join misses on either side are dropped silently (no data, not an error).
//  2. Rows with labor_force <= 0 are excluded before any percent math, so no
//     infinite or NaN percent ever reaches ranking.
//  3. percent = 100 * total / labor_force, rounded to one decimal, half away
//     from zero.
//  4. Stable sort descending by percent; ties keep the pre-sort order, which
//     is the iteration order of the totals argument.
//  5. Dense 1-based ranks: equal percents get consecutive distinct ranks.
//  6. Each rank gets its ordinal label; a rank outside the supported range
//     fails the whole build rather than producing a partial record set.
//
// Composite identifiers are validated before the join; a malformed state or
// county code aborts the build with a CompositeIDError.
//
// Empty inputs yield an empty record set and a nil error.
func BuildRecordSet(totals []UnitTotal, laborForce []LaborForceRecord) (*RecordSet, JoinStats, error) {
	var stats JoinStats

	// Index labor force by key, first occurrence wins on duplicates.
	// Composite IDs are validated up front so a bad row fails the run
	// before any join output exists.
	byKey := make(map[string]LaborForceRecord, len(laborForce))
	compositeIDs := make(map[string]string, len(laborForce))
	for _, lf := range laborForce {
		if _, ok := byKey[lf.UnitKey]; ok {
			continue
		}
		id, err := BuildCompositeID(lf.StateCode, lf.CountyCode)
		if err != nil {
			return nil, stats, fmt.Errorf("labor force row %q: %w", lf.UnitKey, err)
		}
		byKey[lf.UnitKey] = lf
		compositeIDs[lf.UnitKey] = id
	}

	records := make([]DerivedRecord, 0, len(totals))
	for _, t := range totals {
		lf, ok := byKey[t.UnitKey]
		if !ok {
			stats.JoinMisses++
			continue
		}
		if lf.LaborForce <= 0 {
			stats.NonPositiveLaborForce++
			continue
		}
		records = append(records, DerivedRecord{
			UnitKey:     t.UnitKey,
			CompositeID: compositeIDs[t.UnitKey],
			Total:       t.Total,
			LaborForce:  lf.LaborForce,
			Percent:     roundPercent(100 * t.Total / lf.LaborForce),
		})
	}

	// Stable: equal percents keep the order the totals came in.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Percent > records[j].Percent
	})

	for i := range records {
		records[i].Rank = i + 1
		label, err := FormatOrdinal(records[i].Rank)
		if err != nil {
			return nil, stats, fmt.Errorf("county %q: %w", records[i].UnitKey, err)
		}
		records[i].OrdinalLabel = label
	}

	return newRecordSet(records), stats, nil
}

// roundPercent rounds to one decimal place, half away from zero.
func roundPercent(v float64) float64 {
	return math.Round(v*10) / 10
}
