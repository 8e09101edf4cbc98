// Handles summations of recognized tests by author.
package tally

import (
	"cmp"
	"maps"
	"slices"
)

// Number of tests attributed to each author identity.
//
// The empty identity is a valid key; it collects tests whose blame metadata
// could not be parsed.
type Counts map[string]int

// Adds n tests to the given identity.
func (c Counts) Add(identity string, n int) {
	c[identity] += n
}

// Sum over all identities.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}

	return total
}

// Merges contribution into total and returns total.
//
// Merging is commutative and associative, so contributions from different
// files can be folded in any order. A nil total is allocated.
func Merge(total Counts, contribution Counts) Counts {
	if total == nil {
		total = Counts{}
	}

	for identity, n := range contribution {
		total[identity] += n
	}

	return total
}

// An author's final position in the ranking.
type Ranked struct {
	Rank     int // 1-based
	Identity string
	Count    int
	Percent  float64 // Share of all tests, 0-100
}

func (a Ranked) Compare(b Ranked) int {
	if a.Count != b.Count {
		return cmp.Compare(b.Count, a.Count)
	}

	// Break ties by name so output is deterministic
	return cmp.Compare(a.Identity, b.Identity)
}

// Orders authors by test count, most tests first.
//
// Ties are broken by identity in ascending byte order. When there are no
// tests at all the ranking is empty.
func Rank(counts Counts) []Ranked {
	total := counts.Total()

	ranked := []Ranked{}
	for _, identity := range slices.Sorted(maps.Keys(counts)) {
		n := counts[identity]
		ranked = append(ranked, Ranked{
			Identity: identity,
			Count:    n,
			Percent:  percent(n, total),
		})
	}

	slices.SortStableFunc(ranked, Ranked.Compare)

	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked
}

func percent(n int, total int) float64 {
	if total == 0 {
		return 0
	}

	return float64(n) / float64(total) * 100.0
}
