package domain

import "strings"

// claimsKeySuffix is the decoration the claims extract appends to county
// names ("Washington County, NE"); the labor-force table uses bare names.
const claimsKeySuffix = " County, NE"

const (
	stateCodeWidth  = 2
	countyCodeWidth = 3
)

// NormalizeClaimsKey strips the fixed " County, NE" suffix from a claims
// county name so it matches the labor-force table's bare names. Keys
// without the suffix pass through unchanged.
func NormalizeClaimsKey(raw string) string {
	return strings.TrimSuffix(raw, claimsKeySuffix)
}

// BuildCompositeID concatenates a state FIPS code and county FIPS code
// into a single geographic identifier ("31" + "055" = "31055").
//
// Concatenation with no separator is only unambiguous because both codes
// are fixed-width, so widths are validated here rather than trusted; a
// violation is a CompositeIDError and aborts the run before the join.
func BuildCompositeID(stateCode, countyCode string) (string, error) {
	if len(stateCode) != stateCodeWidth || len(countyCode) != countyCodeWidth ||
		!allDigits(stateCode) || !allDigits(countyCode) {
		return "", &CompositeIDError{StateCode: stateCode, CountyCode: countyCode}
	}
	return stateCode + countyCode, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
