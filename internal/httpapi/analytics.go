package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/mrussa/order-insights/internal/analytics"
	"github.com/mrussa/order-insights/internal/dashboard"
	"github.com/mrussa/order-insights/internal/geo"
	"github.com/mrussa/order-insights/internal/respond"
)

var errBadLimit = errors.New("limit must be an integer")

func (a *API) summary(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, analytics.Summarize(a.store.List()))
}

func (a *API) revenue(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, analytics.RevenueByDay(a.store.List()))
}

func (a *API) statuses(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, analytics.StatusDistribution(a.store.List()))
}

func (a *API) channels(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, analytics.ChannelDistribution(a.store.List()))
}

func (a *API) campaigns(w http.ResponseWriter, r *http.Request) {
	limit, err := campaignLimit(r)
	if err != nil {
		respond.BadRequest(w, err.Error(), RequestID(r))
		return
	}
	respond.JSON(w, http.StatusOK, analytics.CampaignRanking(a.store.List(), limit))
}

func (a *API) carriers(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, analytics.CarrierPerformance(a.store.List()))
}

func (a *API) funnel(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, analytics.DeliveryFunnel(a.store.List()))
}

func (a *API) states(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, analytics.StateDistribution(a.store.List()))
}

func (a *API) cityRollup(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, analytics.CityRollup(a.store.List()))
}

func (a *API) geoMarkers(w http.ResponseWriter, r *http.Request) {
	rollup := analytics.CityRollup(a.store.List())
	respond.JSON(w, http.StatusOK, geo.Markers(rollup, geo.Cities))
}

func (a *API) marketing(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, analytics.MarketingReport(a.store.List()))
}

func (a *API) dashboard(w http.ResponseWriter, r *http.Request) {
	reqID := RequestID(r)
	limit, err := campaignLimit(r)
	if err != nil {
		respond.BadRequest(w, err.Error(), reqID)
		return
	}
	d, err := dashboard.Build(r.Context(), a.store.List(), dashboard.Options{Campaigns: limit})
	if err != nil {
		a.logf("[HTTP] dashboard: %v", err)
		respond.Unavailable(w, "request canceled", reqID)
		return
	}
	respond.JSON(w, http.StatusOK, d)
}

// campaignLimit reads ?limit=. Missing means the default top five; zero or
// a negative value returns every campaign.
func campaignLimit(r *http.Request) (int, error) {
	s := r.URL.Query().Get("limit")
	if s == "" {
		return analytics.TopCampaigns, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errBadLimit
	}
	if n == 0 {
		n = -1
	}
	return n, nil
}
