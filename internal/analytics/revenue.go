package analytics

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mrussa/order-insights/internal/order"
)

const dayLayout = "2006-01-02"

// RevenueByDay sums revenue per PlacedAt date and sorts points by calendar
// date. Dates that do not parse go last, in first-seen order.
func RevenueByDay(orders []order.Order) []RevenuePoint {
	var g groups[decimal.Decimal]
	for _, o := range orders {
		r := g.at(o.Day())
		*r = r.Add(o.Revenue())
	}

	type point struct {
		RevenuePoint
		at time.Time
		ok bool
	}
	pts := make([]point, 0, len(g.keys))
	for i, k := range g.keys {
		at, err := time.Parse(dayLayout, k)
		pts = append(pts, point{RevenuePoint{Date: k, Revenue: g.vals[i]}, at, err == nil})
	}
	slices.SortStableFunc(pts, func(a, b point) int {
		switch {
		case a.ok && b.ok:
			return a.at.Compare(b.at)
		case a.ok:
			return -1
		case b.ok:
			return 1
		default:
			return 0
		}
	})

	out := make([]RevenuePoint, len(pts))
	for i, p := range pts {
		out[i] = p.RevenuePoint
	}
	return out
}
