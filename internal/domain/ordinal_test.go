package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatOrdinal_Words(t *testing.T) {
	words := []string{"first", "second", "third", "fourth", "fifth", "sixth", "seventh", "eighth", "ninth"}
	for rank, want := range words {
		label, err := FormatOrdinal(rank + 1)
		require.NoError(t, err)
		assert.Equal(t, want, label)
	}
}

func TestFormatOrdinal_Suffixes(t *testing.T) {
	tests := []struct {
		rank int
		want string
	}{
		{10, "10th"},
		{11, "11th"}, // AP style: teens take "th"
		{12, "12th"},
		{13, "13th"},
		{14, "14th"},
		{20, "20th"},
		{21, "21st"},
		{22, "22nd"},
		{23, "23rd"},
		{24, "24th"},
		{31, "31st"},
		{42, "42nd"},
		{53, "53rd"},
		{90, "90th"},
		{91, "91st"},
		{92, "92nd"},
		{93, "93rd"},
		{99, "99th"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			label, err := FormatOrdinal(tt.rank)
			require.NoError(t, err)
			assert.Equal(t, tt.want, label)
		})
	}
}

func TestFormatOrdinal_OutOfRange(t *testing.T) {
	for _, rank := range []int{0, -1, 100, 250} {
		_, err := FormatOrdinal(rank)
		require.Error(t, err)

		var rangeErr *RankRangeError
		require.True(t, errors.As(err, &rangeErr))
		assert.Equal(t, rank, rangeErr.Rank)
	}
}
