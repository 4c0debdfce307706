package domain

import "slices"

// RecordSet is the immutable result of a build: derived records sorted
// descending by percent with dense ranks 1..N. There is no mutation API;
// rebuilding from the raw inputs is the only way to change it.
type RecordSet struct {
	records []DerivedRecord
	index   map[string]int // unit key -> position in records
}

func newRecordSet(records []DerivedRecord) *RecordSet {
	index := make(map[string]int, len(records))
	for i, r := range records {
		index[r.UnitKey] = i
	}
	return &RecordSet{records: records, index: index}
}

// Records returns the derived records in rank order. The slice is a copy;
// callers cannot reach into the record set through it.
func (rs *RecordSet) Records() []DerivedRecord {
	return slices.Clone(rs.records)
}

// Lookup returns the record for a county key, if present.
func (rs *RecordSet) Lookup(unitKey string) (DerivedRecord, bool) {
	i, ok := rs.index[unitKey]
	if !ok {
		return DerivedRecord{}, false
	}
	return rs.records[i], true
}

// Len reports the number of records.
func (rs *RecordSet) Len() int {
	return len(rs.records)
}
