package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mrussa/order-insights/internal/order"
)

// Snapshot reads up to limit payloads, newest first. Payloads that do not
// decode or validate are logged and skipped.
func (r *OrdersRepo) Snapshot(ctx context.Context, limit int) ([]order.Order, error) {
	limit = clampLimit(limit)

	query, args, err := snapshotQuery(limit)
	if err != nil {
		return nil, fmt.Errorf("snapshot build: %w", err)
	}

	ctxT, cancel := r.withQ(ctx)
	defer cancel()

	rows, err := r.Pool.Query(ctxT, query, args...)
	if err != nil {
		return nil, fmt.Errorf("snapshot query: %w", err)
	}
	defer rows.Close()

	out := make([]order.Order, 0, min(limit, 256))
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("snapshot scan: %w", err)
		}
		o, err := decode(payload)
		if err != nil {
			r.Logf("[REPO] skip payload: %v", err)
			continue
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("snapshot rows: %w", err)
	}
	return out, nil
}

func decode(b []byte) (order.Order, error) {
	var o order.Order
	if err := json.Unmarshal(b, &o); err != nil {
		return order.Order{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if err := order.Validate(&o); err != nil {
		return order.Order{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return o, nil
}
