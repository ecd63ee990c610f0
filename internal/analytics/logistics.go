package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/mrussa/order-insights/internal/order"
)

type Band string

const (
	BandOptimal  Band = "optimal"
	BandRegular  Band = "regular"
	BandCritical Band = "critical"
)

type CarrierStat struct {
	Name      string  `json:"name"`
	Total     int     `json:"total"`
	Delivered int     `json:"delivered"`
	Rate      float64 `json:"rate"`
	Band      Band    `json:"band"`
}

type Funnel struct {
	Total       int    `json:"total"`
	Delivered   int    `json:"delivered"`
	InTransit   int    `json:"in_transit"`
	Failed      int    `json:"failed"`
	SuccessRate string `json:"success_rate"`
}

// Classify maps a delivery rate in percent to its display band:
// above 80 is optimal, (50, 80] regular, 50 and below critical.
func Classify(rate float64) Band {
	switch {
	case rate > 80:
		return BandOptimal
	case rate > 50:
		return BandRegular
	default:
		return BandCritical
	}
}

// CarrierPerformance groups orders by logistic operator and reports the
// share delivered, busiest carriers first.
func CarrierPerformance(orders []order.Order) []CarrierStat {
	var g groups[CarrierStat]
	for _, o := range orders {
		c := g.at(o.LogisticOperator)
		c.Total++
		if o.Status == order.StatusDelivered {
			c.Delivered++
		}
	}

	out := make([]CarrierStat, 0, len(g.keys))
	for i, k := range g.keys {
		c := g.vals[i]
		c.Name = k
		c.Rate = percent(c.Delivered, c.Total)
		c.Band = Classify(c.Rate)
		out = append(out, c)
	}
	sortStableDesc(out, func(c CarrierStat) int { return c.Total })
	return out
}

// DeliveryFunnel counts delivered, in-transit and failed orders. Canceled
// orders count as failed here. SuccessRate has one decimal, "0" when empty.
func DeliveryFunnel(orders []order.Order) Funnel {
	f := Funnel{Total: len(orders), SuccessRate: "0"}
	for _, o := range orders {
		switch o.Status {
		case order.StatusDelivered:
			f.Delivered++
		case order.StatusShipped:
			f.InTransit++
		case order.StatusFailed, order.StatusCanceled:
			f.Failed++
		}
	}
	if f.Total > 0 {
		f.SuccessRate = decimal.NewFromInt(int64(f.Delivered) * 100).
			Div(decimal.NewFromInt(int64(f.Total))).
			StringFixed(1)
	}
	return f
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part*100) / float64(total)
}
