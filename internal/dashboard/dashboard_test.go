package dashboard_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mrussa/order-insights/internal/analytics"
	"github.com/mrussa/order-insights/internal/dashboard"
	"github.com/mrussa/order-insights/internal/geo"
	"github.com/mrussa/order-insights/internal/order"
)

func orders() []order.Order {
	mk := func(id, city, campaign, price, status string) order.Order {
		o := order.Order{OrderID: id, PlacedAt: "2024-05-01 08:00:00", FinalPrice: price, Status: status, Quantity: 1}
		o.City = city
		o.UTM.Campaign = campaign
		return o
	}
	return []order.Order{
		mk("1", "São Paulo", "a", "10.00", order.StatusDelivered),
		mk("2", "Recife", "b", "20.00", order.StatusShipped),
		mk("3", "Lugar Nenhum", "c", "30.00", order.StatusDelivered),
		mk("4", "São Paulo", "d", "40.00", order.StatusFailed),
		mk("5", "Recife", "e", "50.00", order.StatusDelivered),
		mk("6", "Recife", "f", "60.00", order.StatusDelivered),
	}
}

func TestBuild_MatchesSequentialViews(t *testing.T) {
	t.Parallel()

	in := orders()
	d, err := dashboard.Build(context.Background(), in, dashboard.Options{})
	require.NoError(t, err)

	require.Equal(t, analytics.Summarize(in), d.Summary)
	require.Equal(t, analytics.RevenueByDay(in), d.Revenue)
	require.Equal(t, analytics.StatusDistribution(in), d.Statuses)
	require.Equal(t, analytics.ChannelDistribution(in), d.Channels)
	require.Equal(t, analytics.StateDistribution(in), d.States)
	require.Equal(t, analytics.CarrierPerformance(in), d.Carriers)
	require.Equal(t, analytics.DeliveryFunnel(in), d.Funnel)
	require.Equal(t, analytics.CityRollup(in), d.Cities)
	require.Equal(t, analytics.MarketingReport(in), d.Marketing)

	require.Len(t, d.Campaigns, analytics.TopCampaigns)
	require.Len(t, d.Cities, 3)
	require.Len(t, d.Markers, 2, "Lugar Nenhum has no coordinates")
	require.Len(t, d.Recent, dashboard.RecentOrders)
	require.Equal(t, "1", d.Recent[0].OrderID)
}

func TestBuild_Options(t *testing.T) {
	t.Parallel()

	d, err := dashboard.Build(context.Background(), orders(), dashboard.Options{
		Campaigns: 2,
		Recent:    10,
		Lookup:    geo.Table{"Lugar Nenhum": {Lat: 0, Lng: 0}},
	})
	require.NoError(t, err)
	require.Len(t, d.Campaigns, 2)
	require.Equal(t, "f", d.Campaigns[0].Name)
	require.Len(t, d.Markers, 1)
	require.Equal(t, "Lugar Nenhum", d.Markers[0].City)
	require.Len(t, d.Recent, 6)
}

func TestBuild_Empty(t *testing.T) {
	t.Parallel()

	d, err := dashboard.Build(context.Background(), nil, dashboard.Options{})
	require.NoError(t, err)
	require.Equal(t, 0, d.Summary.Orders)
	require.Equal(t, "0", d.Funnel.SuccessRate)
	require.Empty(t, d.Markers)
	require.Empty(t, d.Recent)
}

func TestBuild_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := dashboard.Build(ctx, orders(), dashboard.Options{})
	require.ErrorIs(t, err, context.Canceled)
}
