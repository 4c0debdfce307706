package domain

import "fmt"

// RankRangeError reports a rank outside the supported ordinal range.
// It aborts the whole build: a partially ranked record set is worse than
// no record set, since consumers cannot interpret a partial rank sequence.
type RankRangeError struct {
	Rank int
}

func (e *RankRangeError) Error() string {
	return fmt.Sprintf("rank %d outside supported ordinal range [1, %d]", e.Rank, maxOrdinalRank)
}

// CompositeIDError reports a state or county code that violates the
// fixed-width contract of composite identifiers. Raised before the join
// so a malformed labor-force row cannot silently produce a bad GEOID.
type CompositeIDError struct {
	StateCode  string
	CountyCode string
}

func (e *CompositeIDError) Error() string {
	return fmt.Sprintf("composite id requires a 2-digit state code and 3-digit county code, got state=%q county=%q",
		e.StateCode, e.CountyCode)
}
