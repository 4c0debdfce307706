package domain

import "strconv"

// maxOrdinalRank is the largest rank FormatOrdinal supports. Nebraska has
// 93 counties, so three digits never occur in practice; crossing the limit
// means the input data is wrong, not that the formatter needs extending.
const maxOrdinalRank = 99

// ordinalWords maps ranks 1-9 to their irregular word forms. A literal
// lookup table, not a rule: "first" is not derivable from "1st".
var ordinalWords = map[int]string{
	1: "first",
	2: "second",
	3: "third",
	4: "fourth",
	5: "fifth",
	6: "sixth",
	7: "seventh",
	8: "eighth",
	9: "ninth",
}

// ordinalSuffixes holds the tens-decade exceptions to the default "th"
// suffix as fixed membership sets. 11-20 are intentionally absent from all
// three sets: 11th/12th/13th take "th" per AP style, and keeping the sets
// enumerated makes that edge coverage auditable.
var ordinalSuffixes = []struct {
	suffix string
	ranks  map[int]bool
}{
	{"st", setOf(21, 31, 41, 51, 61, 71, 81, 91)},
	{"nd", setOf(22, 32, 42, 52, 62, 72, 82, 92)},
	{"rd", setOf(23, 33, 43, 53, 63, 73, 83, 93)},
}

func setOf(ranks ...int) map[int]bool {
	s := make(map[int]bool, len(ranks))
	for _, r := range ranks {
		s[r] = true
	}
	return s
}

// FormatOrdinal renders a rank as its AP-style ordinal label: a word for
// 1-9, a number plus suffix for 10-99. Ranks outside [1, 99] return a
// RankRangeError. Pure function, no side effects.
func FormatOrdinal(rank int) (string, error) {
	if rank < 1 || rank > maxOrdinalRank {
		return "", &RankRangeError{Rank: rank}
	}

	if word, ok := ordinalWords[rank]; ok {
		return word, nil
	}

	suffix := "th"
	for _, s := range ordinalSuffixes {
		if s.ranks[rank] {
			suffix = s.suffix
			break
		}
	}
	return strconv.Itoa(rank) + suffix, nil
}
