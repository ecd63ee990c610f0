// Package analytics derives dashboard views from an order snapshot.
//
// Every function here is pure: it reads the slice it is given, never writes
// to it, keeps no state between calls and cannot fail. Prices that do not
// parse count as zero so one bad record never breaks a view. Revenue is
// summed as decimal.Decimal to avoid float drift over the textual prices.
package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/mrussa/order-insights/internal/order"
)

const (
	DirectLabel     = "Direct"
	NoCampaignLabel = "None"

	// TopCampaigns is the default ranking size of the dashboard widget.
	TopCampaigns = 5
)

type Summary struct {
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	Orders        int             `json:"orders"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
}

type RevenuePoint struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

type Count struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type CampaignRevenue struct {
	Name    string          `json:"name"`
	Revenue decimal.Decimal `json:"revenue"`
}

type CityStat struct {
	City    string          `json:"city"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// Summarize computes the headline KPIs. The average ticket is rounded to
// cents and is zero for an empty snapshot.
func Summarize(orders []order.Order) Summary {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Revenue())
	}
	s := Summary{TotalRevenue: total, Orders: len(orders), AverageTicket: decimal.Zero}
	if len(orders) > 0 {
		s.AverageTicket = total.Div(decimal.NewFromInt(int64(len(orders)))).Round(2)
	}
	return s
}

// StatusDistribution counts orders per verbatim status in first-seen order.
func StatusDistribution(orders []order.Order) []Count {
	var g groups[int]
	for _, o := range orders {
		*g.at(o.Status)++
	}
	return counts(&g)
}

// ChannelDistribution counts orders per utm_source, most orders first.
// Orders without a source are reported under DirectLabel.
func ChannelDistribution(orders []order.Order) []Count {
	var g groups[int]
	for _, o := range orders {
		*g.at(labelOr(o.UTM.Source, DirectLabel))++
	}
	out := counts(&g)
	sortStableDesc(out, func(c Count) int { return c.Value })
	return out
}

// StateDistribution counts deliveries per client state, most orders first.
func StateDistribution(orders []order.Order) []Count {
	var g groups[int]
	for _, o := range orders {
		*g.at(o.State)++
	}
	out := counts(&g)
	sortStableDesc(out, func(c Count) int { return c.Value })
	return out
}

// CampaignRanking sums revenue per utm_campaign and keeps the best limit
// entries. A limit <= 0 returns every campaign.
func CampaignRanking(orders []order.Order, limit int) []CampaignRevenue {
	var g groups[decimal.Decimal]
	for _, o := range orders {
		r := g.at(labelOr(o.UTM.Campaign, NoCampaignLabel))
		*r = r.Add(o.Revenue())
	}
	out := make([]CampaignRevenue, 0, len(g.keys))
	for i, k := range g.keys {
		out = append(out, CampaignRevenue{Name: k, Revenue: g.vals[i]})
	}
	sortStableDescDecimal(out, func(c CampaignRevenue) decimal.Decimal { return c.Revenue })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// CityRollup accumulates orders and revenue per exact city name, in
// first-seen order. No normalization is applied to the key.
func CityRollup(orders []order.Order) []CityStat {
	type acc struct {
		n   int
		rev decimal.Decimal
	}
	var g groups[acc]
	for _, o := range orders {
		a := g.at(o.City)
		a.n++
		a.rev = a.rev.Add(o.Revenue())
	}
	out := make([]CityStat, 0, len(g.keys))
	for i, k := range g.keys {
		out = append(out, CityStat{City: k, Orders: g.vals[i].n, Revenue: g.vals[i].rev})
	}
	return out
}

func labelOr(v, label string) string {
	if v == "" {
		return label
	}
	return v
}
