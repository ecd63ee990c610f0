package order

import (
	"errors"
	"fmt"
	"slices"
)

var ErrInvalid = errors.New("invalid order")

const maxIDLen = 100

// Validate checks the record-level invariants an ingested order must hold
// before it may enter the store.
func Validate(o *Order) error {
	if o.OrderID == "" {
		return fmt.Errorf("%w: field date_order: empty", ErrInvalid)
	}
	if len(o.OrderID) > maxIDLen {
		return fmt.Errorf("%w: field date_order: too long", ErrInvalid)
	}
	p, err := ParsePrice(o.FinalPrice)
	if errors.Is(err, ErrPriceRange) {
		return fmt.Errorf("%w: field order_final_price: out of range", ErrInvalid)
	}
	if err != nil {
		return fmt.Errorf("%w: field order_final_price: not a number", ErrInvalid)
	}
	if p.IsNegative() {
		return fmt.Errorf("%w: field order_final_price: negative", ErrInvalid)
	}
	if o.Quantity < 1 {
		return fmt.Errorf("%w: field order_quantity: must be >= 1", ErrInvalid)
	}
	return nil
}

func IsKnownStatus(s string) bool {
	return slices.Contains(KnownStatuses, s)
}
