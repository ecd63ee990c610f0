package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/mrussa/order-insights/internal/order"
)

// Labels used by the marketing report, which names missing tags differently
// from the overview widgets.
const (
	OrganicLabel      = "Direto/Orgânico"
	NotSetLabel       = "(not set)"
	UnknownSourceMark = "-"
)

type SourceStat struct {
	Name    string          `json:"name"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

type CampaignStat struct {
	Name          string          `json:"name"`
	Source        string          `json:"source"`
	Orders        int             `json:"orders"`
	Revenue       decimal.Decimal `json:"revenue"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
}

type Marketing struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	Sources      []SourceStat    `json:"sources"`
	Campaigns    []CampaignStat  `json:"campaigns"`
}

// SourcePerformance reports orders and revenue per utm_source, highest
// revenue first.
func SourcePerformance(orders []order.Order) []SourceStat {
	var g groups[SourceStat]
	for _, o := range orders {
		s := g.at(labelOr(o.UTM.Source, OrganicLabel))
		s.Orders++
		s.Revenue = s.Revenue.Add(o.Revenue())
	}
	out := make([]SourceStat, 0, len(g.keys))
	for i, k := range g.keys {
		s := g.vals[i]
		s.Name = k
		out = append(out, s)
	}
	sortStableDescDecimal(out, func(s SourceStat) decimal.Decimal { return s.Revenue })
	return out
}

// CampaignPerformance is the full campaign table. Source is the utm_source
// of the first order seen for the campaign.
func CampaignPerformance(orders []order.Order) []CampaignStat {
	var g groups[CampaignStat]
	for _, o := range orders {
		c := g.at(labelOr(o.UTM.Campaign, NotSetLabel))
		if c.Orders == 0 {
			c.Source = labelOr(o.UTM.Source, UnknownSourceMark)
		}
		c.Orders++
		c.Revenue = c.Revenue.Add(o.Revenue())
	}
	out := make([]CampaignStat, 0, len(g.keys))
	for i, k := range g.keys {
		c := g.vals[i]
		c.Name = k
		c.AverageTicket = c.Revenue.Div(decimal.NewFromInt(int64(c.Orders))).Round(2)
		out = append(out, c)
	}
	sortStableDescDecimal(out, func(c CampaignStat) decimal.Decimal { return c.Revenue })
	return out
}

func MarketingReport(orders []order.Order) Marketing {
	return Marketing{
		TotalRevenue: Summarize(orders).TotalRevenue,
		Sources:      SourcePerformance(orders),
		Campaigns:    CampaignPerformance(orders),
	}
}
