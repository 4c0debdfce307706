package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSet_Lookup(t *testing.T) {
	rs := newRecordSet([]DerivedRecord{
		{UnitKey: "Douglas", Rank: 1, Percent: 12.3},
		{UnitKey: "Sarpy", Rank: 2, Percent: 8.1},
	})

	rec, ok := rs.Lookup("Sarpy")
	require.True(t, ok)
	assert.Equal(t, 2, rec.Rank)

	_, ok = rs.Lookup("Lancaster")
	assert.False(t, ok)
}

func TestRecordSet_RecordsReturnsCopy(t *testing.T) {
	rs := newRecordSet([]DerivedRecord{{UnitKey: "Douglas", Rank: 1}})

	records := rs.Records()
	records[0].Rank = 99

	rec, ok := rs.Lookup("Douglas")
	require.True(t, ok)
	assert.Equal(t, 1, rec.Rank)
}

func TestRecordSet_Empty(t *testing.T) {
	rs := newRecordSet(nil)
	assert.Zero(t, rs.Len())
	assert.Empty(t, rs.Records())
}
