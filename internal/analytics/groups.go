package analytics

import (
	"slices"

	"github.com/shopspring/decimal"
)

// groups is an insertion-ordered map: keys keep first-seen order so
// unsorted views are deterministic.
type groups[V any] struct {
	keys []string
	vals []V
	idx  map[string]int
}

func (g *groups[V]) at(key string) *V {
	if g.idx == nil {
		g.idx = make(map[string]int)
	}
	i, ok := g.idx[key]
	if !ok {
		var zero V
		i = len(g.keys)
		g.idx[key] = i
		g.keys = append(g.keys, key)
		g.vals = append(g.vals, zero)
	}
	return &g.vals[i]
}

func counts(g *groups[int]) []Count {
	out := make([]Count, 0, len(g.keys))
	for i, k := range g.keys {
		out = append(out, Count{Name: k, Value: g.vals[i]})
	}
	return out
}

func sortStableDesc[T any](s []T, key func(T) int) {
	slices.SortStableFunc(s, func(a, b T) int { return key(b) - key(a) })
}

func sortStableDescDecimal[T any](s []T, key func(T) decimal.Decimal) {
	slices.SortStableFunc(s, func(a, b T) int { return key(b).Cmp(key(a)) })
}
