// Package match finds close spellings of unknown names.
package match

import (
	"sort"
	"strings"
)

// Distance is the Levenshtein edit distance between a and b, compared
// case-insensitively.
func Distance(a, b string) int {
	ra, rb := []rune(strings.ToLower(a)), []rune(strings.ToLower(b))
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}

	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		diag := row[0]
		row[0] = i

		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			next := min(row[j]+1, row[j-1]+1, diag+cost)
			diag, row[j] = row[j], next
		}
	}

	return row[len(rb)]
}

// MinSimilarity is the lowest Similarity at which a candidate is suggested.
const MinSimilarity = 0.6

// Similarity normalises Distance into [0, 1] by the longer name's length;
// 1 means equal ignoring case.
func Similarity(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}

	return 1 - float64(Distance(a, b))/float64(longest)
}

// Suggest returns the candidates at least MinSimilarity close to name,
// closest first, at most limit of them.
func Suggest(name string, candidates []string, limit int) []string {
	type scored struct {
		name string
		dist int
	}

	var hits []scored
	for _, c := range candidates {
		if c == name || Similarity(name, c) < MinSimilarity {
			continue
		}

		hits = append(hits, scored{name: c, dist: Distance(name, c)})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}

		return hits[i].name < hits[j].name
	})

	out := make([]string, 0, min(limit, len(hits)))
	for _, h := range hits {
		if len(out) == limit {
			break
		}

		out = append(out, h.name)
	}

	return out
}
