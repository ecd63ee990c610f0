package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mrussa/order-insights/internal/factory"
	"github.com/mrussa/order-insights/internal/respond"
	"github.com/mrussa/order-insights/internal/store"
)

type CityLookup interface {
	Cities(ctx context.Context, uf string) ([]string, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Store   *store.OrdersStore
	Factory *factory.Factory
	Cities  CityLookup
	DB      Pinger
	Logf    func(string, ...any)
	Version string
	Origins []string
}

type API struct {
	store   *store.OrdersStore
	factory *factory.Factory
	cities  CityLookup
	db      Pinger
	logf    func(string, ...any)
	version string
	origins []string
}

const requestTimeout = 30 * time.Second

func New(d Deps) *API {
	if d.Logf == nil {
		d.Logf = func(string, ...any) {}
	}
	if d.Factory == nil {
		d.Factory = factory.New()
	}
	if len(d.Origins) == 0 {
		d.Origins = []string{"*"}
	}
	return &API{
		store:   d.Store,
		factory: d.Factory,
		cities:  d.Cities,
		db:      d.DB,
		logf:    d.Logf,
		version: d.Version,
		origins: d.Origins,
	}
}

func (a *API) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(WithRequestID)
	r.Use(middleware.RealIP)
	r.Use(a.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", headerRequestID},
		ExposedHeaders: []string{headerRequestID, "Location"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.NotFound(w, "not found", RequestID(r))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.MethodNotAllowed(w, RequestID(r))
	})

	r.Get("/healthz", a.healthz)
	r.Head("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", a.listOrders)
		r.Post("/", a.createOrder)
		r.Get("/statuses", a.statusOptions)
		r.Get("/recent", a.recentOrders)
		r.Get("/{id}", a.getOrder)
		r.Put("/{id}", a.updateOrder)
		r.Put("/{id}/status", a.updateStatus)
	})

	r.Route("/analytics", func(r chi.Router) {
		r.Get("/summary", a.summary)
		r.Get("/revenue", a.revenue)
		r.Get("/statuses", a.statuses)
		r.Get("/channels", a.channels)
		r.Get("/campaigns", a.campaigns)
		r.Get("/carriers", a.carriers)
		r.Get("/funnel", a.funnel)
		r.Get("/states", a.states)
		r.Get("/cities", a.cityRollup)
		r.Get("/geo", a.geoMarkers)
		r.Get("/marketing", a.marketing)
	})
	r.Get("/dashboard", a.dashboard)

	r.Route("/geo", func(r chi.Router) {
		r.Get("/states", a.listStates)
		r.Get("/states/{uf}/cities", a.stateCities)
	})

	return r
}

func (a *API) healthz(w http.ResponseWriter, r *http.Request) {
	reqID := RequestID(r)
	body := map[string]any{
		"status":     "ok",
		"orders":     a.store.Len(),
		"version":    a.version,
		"request_id": reqID,
	}
	if a.db != nil {
		if err := a.db.Ping(r.Context()); err != nil {
			a.logf("[HTTP] healthz postgres: %v", err)
			body["status"] = "degraded"
			body["postgres"] = "down"
		} else {
			body["postgres"] = "ok"
		}
	}
	respond.JSON(w, http.StatusOK, body)
}

func (a *API) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		a.logf("[HTTP] %s %s %d %dB %s rid=%s",
			r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(), time.Since(start).Round(time.Microsecond), RequestID(r))
	})
}
