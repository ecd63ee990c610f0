package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mrussa/order-insights/internal/dashboard"
	"github.com/mrussa/order-insights/internal/factory"
	"github.com/mrussa/order-insights/internal/order"
	"github.com/mrussa/order-insights/internal/respond"
	"github.com/mrussa/order-insights/internal/search"
	"github.com/mrussa/order-insights/internal/store"
)

const (
	maxIDLen   = 100
	maxBodyLen = 1 << 20
)

type statusInput struct {
	Status string `json:"status"`
}

func (a *API) listOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := q.Get("status")
	if status == "" {
		status = search.StatusAll
	}
	respond.JSON(w, http.StatusOK, search.Filter(a.store.List(), q.Get("q"), status))
}

func (a *API) recentOrders(w http.ResponseWriter, r *http.Request) {
	n := dashboard.RecentOrders
	if s := r.URL.Query().Get("n"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			respond.BadRequest(w, "n must be a non-negative integer", RequestID(r))
			return
		}
		n = v
	}
	respond.JSON(w, http.StatusOK, a.store.Head(n))
}

func (a *API) statusOptions(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, search.StatusOptions(a.store.List()))
}

func (a *API) getOrder(w http.ResponseWriter, r *http.Request) {
	reqID := RequestID(r)
	id, ok := orderID(r)
	if !ok {
		respond.BadRequest(w, "bad order id", reqID)
		return
	}
	o, found := a.store.Get(id)
	if !found {
		respond.NotFound(w, "order not found", reqID)
		return
	}
	respond.JSON(w, http.StatusOK, o)
}

func (a *API) createOrder(w http.ResponseWriter, r *http.Request) {
	reqID := RequestID(r)
	var in factory.FormInput
	if err := decodeBody(r, &in); err != nil {
		respond.BadRequest(w, err.Error(), reqID)
		return
	}

	o, err := a.factory.CreateFromForm(in)
	if err != nil {
		a.formError(w, err, reqID)
		return
	}
	a.store.InsertFront(o)
	a.logf("[HTTP] order created id=%s", o.OrderID)
	respond.Created(w, "/orders/"+url.PathEscape(o.OrderID), o)
}

func (a *API) updateOrder(w http.ResponseWriter, r *http.Request) {
	reqID := RequestID(r)
	id, ok := orderID(r)
	if !ok {
		respond.BadRequest(w, "bad order id", reqID)
		return
	}
	var in factory.FormInput
	if err := decodeBody(r, &in); err != nil {
		respond.BadRequest(w, err.Error(), reqID)
		return
	}

	next, err := a.store.Update(id, func(prev order.Order) (order.Order, error) {
		return a.factory.ApplyEdit(prev, in)
	})
	if err != nil {
		a.formError(w, err, reqID)
		return
	}
	a.logf("[HTTP] order updated id=%s", id)
	respond.JSON(w, http.StatusOK, next)
}

// updateStatus writes any status over any other; there is no transition
// graph.
func (a *API) updateStatus(w http.ResponseWriter, r *http.Request) {
	reqID := RequestID(r)
	id, ok := orderID(r)
	if !ok {
		respond.BadRequest(w, "bad order id", reqID)
		return
	}
	var in statusInput
	if err := decodeBody(r, &in); err != nil {
		respond.BadRequest(w, err.Error(), reqID)
		return
	}
	in.Status = strings.TrimSpace(in.Status)
	if in.Status == "" {
		respond.BadRequest(w, "field status: required", reqID)
		return
	}

	o, err := a.store.Update(id, func(o order.Order) (order.Order, error) {
		o.Status = in.Status
		return o, nil
	})
	if err != nil {
		a.formError(w, err, reqID)
		return
	}
	if !order.IsKnownStatus(in.Status) {
		a.logf("[HTTP] order %s set to unlisted status %q", id, in.Status)
	}
	respond.JSON(w, http.StatusOK, o)
}

func (a *API) formError(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respond.NotFound(w, "order not found", reqID)
		return
	case errors.Is(err, factory.ErrValidation):
		respond.BadRequest(w, err.Error(), reqID)
		return
	}
	a.logf("[HTTP] form error: %v", err)
	respond.Internal(w, "internal error", reqID)
}

func orderID(r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if id == "" || len(id) > maxIDLen {
		return "", false
	}
	return id, true
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyLen))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.New("invalid json body")
	}
	return nil
}
