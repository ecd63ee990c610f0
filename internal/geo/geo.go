package geo

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/mrussa/order-insights/internal/analytics"
)

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Lookup interface {
	Coordinates(city string) (Point, bool)
}

// Table is a read-only city name to coordinates lookup. Keys are exact city
// names as they appear on orders.
type Table map[string]Point

func (t Table) Coordinates(city string) (Point, bool) {
	p, ok := t[city]
	return p, ok
}

var Cities = Table{
	"São Paulo":      {Lat: -23.5505, Lng: -46.6333},
	"Rio de Janeiro": {Lat: -22.9068, Lng: -43.1729},
	"Belo Horizonte": {Lat: -19.9167, Lng: -43.9345},
	"Curitiba":       {Lat: -25.4284, Lng: -49.2733},
	"Porto Alegre":   {Lat: -30.0346, Lng: -51.2177},
	"Brasília":       {Lat: -15.7975, Lng: -47.8919},
	"Salvador":       {Lat: -12.9777, Lng: -38.5016},
	"Fortaleza":      {Lat: -3.7172, Lng: -38.5434},
	"Recife":         {Lat: -8.0476, Lng: -34.8770},
	"Manaus":         {Lat: -3.1190, Lng: -60.0217},
	"Belém":          {Lat: -1.4558, Lng: -48.4902},
	"Goiânia":        {Lat: -16.6869, Lng: -49.2648},
	"Campinas":       {Lat: -22.9099, Lng: -47.0626},
	"São Luís":       {Lat: -2.5391, Lng: -44.2829},
	"Maceió":         {Lat: -9.6662, Lng: -35.7351},
}

const (
	minRadius = 6
	maxRadius = 25
)

type Marker struct {
	City    string          `json:"city"`
	Point   Point           `json:"point"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
	Radius  float64         `json:"radius"`
}

func MarkerRadius(count int) float64 {
	r := math.Sqrt(float64(count)) * 4
	return math.Min(math.Max(r, minRadius), maxRadius)
}

// Markers places every city of the rollup that the lookup knows about.
// Unknown cities are left out of the map but keep their row in the rollup.
func Markers(rollup []analytics.CityStat, lookup Lookup) []Marker {
	out := make([]Marker, 0, len(rollup))
	for _, c := range rollup {
		p, ok := lookup.Coordinates(c.City)
		if !ok {
			continue
		}
		out = append(out, Marker{
			City:    c.City,
			Point:   p,
			Orders:  c.Orders,
			Revenue: c.Revenue,
			Radius:  MarkerRadius(c.Orders),
		})
	}
	return out
}
