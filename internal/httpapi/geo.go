package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mrussa/order-insights/internal/geo"
	"github.com/mrussa/order-insights/internal/ibge"
	"github.com/mrussa/order-insights/internal/respond"
)

func (a *API) listStates(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, geo.States)
}

func (a *API) stateCities(w http.ResponseWriter, r *http.Request) {
	reqID := RequestID(r)
	uf := chi.URLParam(r, "uf")
	if !geo.IsState(uf) {
		respond.BadRequest(w, "unknown state code", reqID)
		return
	}
	if a.cities == nil {
		respond.Unavailable(w, "city lookup disabled", reqID)
		return
	}

	names, err := a.cities.Cities(r.Context(), uf)
	if err != nil {
		if errors.Is(err, ibge.ErrBadState) {
			respond.BadRequest(w, "unknown state code", reqID)
			return
		}
		a.logf("[HTTP] city lookup uf=%s: %v", uf, err)
		respond.BadGateway(w, "city lookup failed", reqID)
		return
	}
	respond.JSON(w, http.StatusOK, names)
}
