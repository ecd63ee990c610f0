// Package ingest fills the order store from one or more bulk sources.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mrussa/order-insights/internal/order"
)

var ErrNoSources = errors.New("no order sources configured")

type Source interface {
	Load(ctx context.Context) ([]order.Order, error)
}

type Replacer interface {
	Replace(orders []order.Order)
}

// FileSource reads a JSON array of platform payloads. Records are taken as
// they are so the analytics see malformed prices, except that records
// without an id are dropped because nothing could address them.
type FileSource struct {
	Path string
	Logf func(string, ...any)
}

func (f FileSource) Load(ctx context.Context) ([]order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	var raw []order.Order
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.Path, err)
	}

	out := raw[:0]
	for _, o := range raw {
		if o.OrderID == "" {
			f.logf("[INGEST] %s: record without date_order skipped", f.Path)
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (f FileSource) logf(format string, args ...any) {
	if f.Logf != nil {
		f.Logf(format, args...)
	}
}

// Merge concatenates source results. The first occurrence of an id wins, so
// earlier sources take precedence over later ones.
func Merge(batches ...[]order.Order) []order.Order {
	seen := make(map[string]struct{})
	var out []order.Order
	for _, batch := range batches {
		for _, o := range batch {
			if _, ok := seen[o.OrderID]; ok {
				continue
			}
			seen[o.OrderID] = struct{}{}
			out = append(out, o)
		}
	}
	return out
}

// LoadAll loads every source in order, merges the results and replaces the
// store contents. The store is left untouched when any source fails.
func LoadAll(ctx context.Context, dst Replacer, sources ...Source) (int, error) {
	if len(sources) == 0 {
		return 0, ErrNoSources
	}
	batches := make([][]order.Order, 0, len(sources))
	for i, s := range sources {
		batch, err := s.Load(ctx)
		if err != nil {
			return 0, fmt.Errorf("source %d: %w", i, err)
		}
		batches = append(batches, batch)
	}
	merged := Merge(batches...)
	dst.Replace(merged)
	return len(merged), nil
}
