package domain

// RawObservation is one (county, week) row from the claims extract.
// Value is NaN when the source cell was blank or non-numeric; the
// aggregator drops such rows instead of treating them as zero.
type RawObservation struct {
	UnitKey string  `json:"unit_key"`
	Period  string  `json:"period"`
	Value   float64 `json:"value"`
}

// LaborForceRecord is one (county, month) row from the LAUS extract,
// already filtered to a single reporting period by the loader.
type LaborForceRecord struct {
	UnitKey    string  `json:"unit_key"`
	StateCode  string  `json:"state_code"`  // two-digit state FIPS
	CountyCode string  `json:"county_code"` // three-digit county FIPS
	Period     string  `json:"period"`
	LaborForce float64 `json:"labor_force"`
}

// UnitTotal is a county's summed claims across all weeks. Totals of zero
// or below never appear; the aggregator filters them out.
type UnitTotal struct {
	UnitKey string  `json:"unit_key"`
	Total   float64 `json:"total"`
}

// DerivedRecord is the authoritative per-county row. Every downstream
// artifact (report, chart, choropleth) reads only this type.
type DerivedRecord struct {
	UnitKey      string  `json:"unit_key"`
	CompositeID  string  `json:"composite_id"`
	Total        float64 `json:"total"`
	LaborForce   float64 `json:"labor_force"`
	Percent      float64 `json:"percent"`
	Rank         int     `json:"rank"`
	OrdinalLabel string  `json:"ordinal_label"`
}
