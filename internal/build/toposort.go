package build

import (
	"fmt"
	"slices"

	"riveter/internal/loader"
)

// sortEntities returns entity indices with every parent before its
// children. Among entities ready at the same time the one declared first
// goes first, so the order is stable across runs.
func sortEntities(defs []loader.EntityDef) ([]int, error) {
	index := make(map[string]int, len(defs))
	for i := range defs {
		index[defs[i].Name] = i
	}

	pending := make([]int, len(defs))
	children := make([][]int, len(defs))

	for i := range defs {
		if defs[i].Extends == "" {
			continue
		}

		p, ok := index[defs[i].Extends]
		if !ok {
			return nil, fmt.Errorf("entity %q extends unknown entity %q", defs[i].Name, defs[i].Extends)
		}

		pending[i]++
		children[p] = append(children[p], i)
	}

	var ready []int

	for i, n := range pending {
		if n == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, len(defs))

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]
		order = append(order, i)

		for _, c := range children[i] {
			pending[c]--
			if pending[c] == 0 {
				at, _ := slices.BinarySearch(ready, c)
				ready = slices.Insert(ready, at, c)
			}
		}
	}

	if len(order) != len(defs) {
		return nil, fmt.Errorf("inheritance cycle among %d entities", len(defs)-len(order))
	}

	return order, nil
}
