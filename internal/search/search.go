// Package search filters the order list by status and free-text query.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mrussa/order-insights/internal/order"
)

const StatusAll = "all"

// Fold lowercases s and strips combining marks so that "João" and "joao"
// compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(out)
}

// Filter keeps orders whose status matches (or status is "all") and whose
// customer name, id or e-mail contains the query after folding. Input order
// is preserved.
func Filter(orders []order.Order, query, status string) []order.Order {
	q := Fold(strings.TrimSpace(query))
	out := make([]order.Order, 0, len(orders))
	for _, o := range orders {
		if status != "" && status != StatusAll && o.Status != status {
			continue
		}
		if q != "" && !matches(o, q) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func matches(o order.Order, q string) bool {
	for _, field := range []string{o.Name, o.OrderID, o.Email} {
		if strings.Contains(Fold(field), q) {
			return true
		}
	}
	return false
}

// StatusOptions lists "all" followed by each distinct status in the order
// it first appears.
func StatusOptions(orders []order.Order) []string {
	out := []string{StatusAll}
	seen := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		if _, ok := seen[o.Status]; ok {
			continue
		}
		seen[o.Status] = struct{}{}
		out = append(out, o.Status)
	}
	return out
}
