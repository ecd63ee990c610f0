package repo

import (
	sq "github.com/Masterminds/squirrel"
)

const ordersTable = "orders"

const qUpsertOrder = `
INSERT INTO orders (id, payload, ingested_at)
VALUES ($1, $2, now())
ON CONFLICT (id) DO UPDATE SET
  payload=EXCLUDED.payload,
  ingested_at=EXCLUDED.ingested_at
`

func snapshotQuery(limit int) (string, []any, error) {
	return sq.Select("payload").
		From(ordersTable).
		OrderBy("ingested_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}
