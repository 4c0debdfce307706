// Package domain models Nebraska county unemployment-claims statistics.
//
// # Data Sources
//
// Weekly initial unemployment claims come from the Nebraska Department of
// Labor's county-level claims extract, one row per (county, week). County
// names in that extract carry a trailing " County, NE" suffix which is
// stripped during normalization so the claims table joins against the
// labor-force table on the bare county name.
//
// Monthly labor-force estimates come from the BLS Local Area Unemployment
// Statistics (LAUS) program, one row per (county, month), carrying the
// two-digit state FIPS code and three-digit county FIPS code alongside the
// estimate. Callers select a single reporting period before the join runs.
//
// # Derivation
//
// The pipeline reduces both tables to one DerivedRecord per county:
//
//	total   = sum of weekly claim counts across all weeks
//	percent = 100 * total / labor_force, rounded to one decimal
//	          (half away from zero)
//	rank    = dense 1-based position after sorting descending by percent
//	ordinal = AP-style ordinal label for the rank ("first", "21st", ...)
//
// Counties with a non-positive claims total, a non-positive labor force, or
// no match on the other side of the join are dropped, not errored: a missing
// county means "no data", and two statewide summary rows in the labor-force
// source are expected casualties of the positive-labor-force filter.
//
// # Composite identifiers
//
// The composite geographic identifier is the state FIPS code concatenated
// with the county FIPS code ("31" + "055" = "31055"). Concatenation without
// a separator is unambiguous only because both codes are fixed-width, so
// widths are validated before the join and a violation aborts the run.
//
// # Ordinal labels
//
// Ranks 1-9 render as irregular words ("first".."ninth"). Ranks 10 and
// above default to a "th" suffix, with the tens-decade exceptions 21/31/../91
// ("st"), 22/32/../92 ("nd"), and 23/33/../93 ("rd") held in fixed membership
// tables. 11th, 12th, and 13th fall through to the default, which matches AP
// style. Ranks of 100 or more are outside the supported range and fail the
// build; Nebraska has 93 counties.
package domain
