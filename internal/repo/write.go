package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mrussa/order-insights/internal/order"
)

// SaveBatch upserts the payloads of orders in one transaction. Orders that
// fail validation abort the whole batch before anything is sent.
func (r *OrdersRepo) SaveBatch(ctx context.Context, orders []order.Order) (err error) {
	if len(orders) == 0 {
		return nil
	}

	var b pgx.Batch
	for i := range orders {
		if err := order.Validate(&orders[i]); err != nil {
			return fmt.Errorf("%w: %v", ErrBadPayload, err)
		}
		payload, err := json.Marshal(orders[i])
		if err != nil {
			return fmt.Errorf("marshal %s: %w", orders[i].OrderID, err)
		}
		b.Queue(qUpsertOrder, orders[i].OrderID, payload)
	}

	ctxT, cancel := r.withTx(ctx)
	defer cancel()

	tx, err := r.Pool.BeginTx(ctxT, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctxT)
			panic(p)
		}
	}()

	br := tx.SendBatch(ctxT, &b)

	for i := range orders {
		if _, execErr := br.Exec(); execErr != nil {
			_ = br.Close()
			_ = tx.Rollback(ctxT)
			return fmt.Errorf("batch step %d: %w", i, execErr)
		}
	}

	if errClose := br.Close(); errClose != nil {
		_ = tx.Rollback(ctxT)
		return fmt.Errorf("batch close: %w", errClose)
	}

	if cErr := tx.Commit(ctxT); cErr != nil {
		return fmt.Errorf("commit: %w", cErr)
	}

	return nil
}
