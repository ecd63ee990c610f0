// Package dashboard assembles every analytics view for one snapshot of the
// order list.
package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mrussa/order-insights/internal/analytics"
	"github.com/mrussa/order-insights/internal/geo"
	"github.com/mrussa/order-insights/internal/order"
)

const RecentOrders = 5

type Options struct {
	Campaigns int
	Recent    int
	Lookup    geo.Lookup
}

func (o Options) withDefaults() Options {
	if o.Campaigns == 0 {
		o.Campaigns = analytics.TopCampaigns
	}
	if o.Recent <= 0 {
		o.Recent = RecentOrders
	}
	if o.Lookup == nil {
		o.Lookup = geo.Cities
	}
	return o
}

type Dashboard struct {
	Summary   analytics.Summary           `json:"summary"`
	Revenue   []analytics.RevenuePoint    `json:"revenue"`
	Statuses  []analytics.Count           `json:"statuses"`
	Channels  []analytics.Count           `json:"channels"`
	States    []analytics.Count           `json:"states"`
	Campaigns []analytics.CampaignRevenue `json:"campaigns"`
	Carriers  []analytics.CarrierStat     `json:"carriers"`
	Funnel    analytics.Funnel            `json:"funnel"`
	Cities    []analytics.CityStat        `json:"cities"`
	Markers   []geo.Marker                `json:"markers"`
	Marketing analytics.Marketing         `json:"marketing"`
	Recent    []order.Order               `json:"recent"`
}

// Build computes the views concurrently. The views only read orders, so the
// same slice is shared by every goroutine. The only error is ctx's.
func Build(ctx context.Context, orders []order.Order, opts Options) (Dashboard, error) {
	opts = opts.withDefaults()
	d := Dashboard{Recent: orders[:min(opts.Recent, len(orders))]}

	g, ctx := errgroup.WithContext(ctx)
	run := func(f func()) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f()
			return nil
		})
	}

	run(func() { d.Summary = analytics.Summarize(orders) })
	run(func() { d.Revenue = analytics.RevenueByDay(orders) })
	run(func() { d.Statuses = analytics.StatusDistribution(orders) })
	run(func() { d.Channels = analytics.ChannelDistribution(orders) })
	run(func() { d.States = analytics.StateDistribution(orders) })
	run(func() { d.Campaigns = analytics.CampaignRanking(orders, opts.Campaigns) })
	run(func() { d.Carriers = analytics.CarrierPerformance(orders) })
	run(func() { d.Funnel = analytics.DeliveryFunnel(orders) })
	run(func() {
		d.Cities = analytics.CityRollup(orders)
		d.Markers = geo.Markers(d.Cities, opts.Lookup)
	})
	run(func() { d.Marketing = analytics.MarketingReport(orders) })

	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}
