package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateClaims(t *testing.T) {
	t.Run("sums across weeks per county", func(t *testing.T) {
		obs := []RawObservation{
			{UnitKey: "Douglas", Period: "2020-03-21", Value: 100},
			{UnitKey: "Douglas", Period: "2020-03-28", Value: 250},
			{UnitKey: "Sarpy", Period: "2020-03-21", Value: 80},
		}

		totals := AggregateClaims(obs)
		require.Len(t, totals, 2)

		byKey := totalsByKey(totals)
		assert.Equal(t, 350.0, byKey["Douglas"])
		assert.Equal(t, 80.0, byKey["Sarpy"])
	})

	t.Run("drops non-numeric rows without zero-filling", func(t *testing.T) {
		obs := []RawObservation{
			{UnitKey: "Lancaster", Period: "2020-03-21", Value: math.NaN()},
			{UnitKey: "Lancaster", Period: "2020-03-28", Value: 40},
		}

		totals := AggregateClaims(obs)
		require.Len(t, totals, 1)
		assert.Equal(t, 40.0, totals[0].Total)
	})

	t.Run("county with only invalid rows has no total", func(t *testing.T) {
		obs := []RawObservation{
			{UnitKey: "Hooker", Period: "2020-03-21", Value: math.NaN()},
			{UnitKey: "Hooker", Period: "2020-03-28", Value: math.Inf(1)},
		}

		assert.Empty(t, AggregateClaims(obs))
	})

	t.Run("filters zero and negative totals", func(t *testing.T) {
		obs := []RawObservation{
			{UnitKey: "Blaine", Period: "2020-03-21", Value: 0},
			{UnitKey: "Loup", Period: "2020-03-21", Value: 5},
			{UnitKey: "Loup", Period: "2020-03-28", Value: -5},
			{UnitKey: "Thomas", Period: "2020-03-21", Value: 3},
		}

		totals := AggregateClaims(obs)
		require.Len(t, totals, 1)
		assert.Equal(t, "Thomas", totals[0].UnitKey)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Empty(t, AggregateClaims(nil))
	})
}

func totalsByKey(totals []UnitTotal) map[string]float64 {
	m := make(map[string]float64, len(totals))
	for _, t := range totals {
		m[t.UnitKey] = t.Total
	}
	return m
}
