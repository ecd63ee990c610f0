package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/mrussa/order-insights/internal/order"
)

type batchSink interface {
	SaveBatch(ctx context.Context, orders []order.Order) error
}

type reader interface {
	FetchMessage(context.Context) (kafka.Message, error)
	CommitMessages(context.Context, ...kafka.Message) error
	Close() error
}

const (
	minBytes    = 1
	maxBytes    = 10 * 1024 * 1024
	defaultIdle = 2 * time.Second
	maxBatch    = 50000
)

var newReader = func(cfg kafka.ReaderConfig) reader { return kafka.NewReader(cfg) }

type Decoder func([]byte, *order.Order) error
type Validator func(*order.Order) error

func defaultDecode(b []byte, o *order.Order) error { return json.Unmarshal(b, o) }

// Drainer reads whatever is waiting on the topic and stops once no message
// arrives within Idle. It never keeps consuming after Load returns.
type Drainer struct {
	Brokers []string
	Topic   string
	Group   string

	Sink batchSink

	Logf     func(string, ...any)
	Decode   Decoder
	Validate Validator

	Idle        time.Duration
	MaxMessages int
}

func NewDrainer(brokersCSV, topic, group string, idle time.Duration, sink batchSink, logf func(string, ...any)) *Drainer {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	if idle <= 0 {
		idle = defaultIdle
	}
	return &Drainer{
		Brokers:     splitCSV(brokersCSV),
		Topic:       topic,
		Group:       group,
		Sink:        sink,
		Logf:        logf,
		Decode:      defaultDecode,
		Validate:    order.Validate,
		Idle:        idle,
		MaxMessages: maxBatch,
	}
}

// Load drains the topic into a batch. Malformed and invalid messages are
// logged and skipped. Nothing is committed until the batch is assembled and,
// when a sink is set, persisted: a commit moves the group past every earlier
// offset on the partition, skipped messages included.
func (d *Drainer) Load(ctx context.Context) ([]order.Order, error) {
	r := newReader(kafka.ReaderConfig{
		Brokers:        d.Brokers,
		GroupID:        d.Group,
		Topic:          d.Topic,
		MinBytes:       minBytes,
		MaxBytes:       maxBytes,
		CommitInterval: 0,
	})
	defer r.Close()

	d.Logf("[KAFKA] draining (group=%s topic=%s brokers=%v idle=%s)", d.Group, d.Topic, d.Brokers, d.Idle)

	var (
		batch   []order.Order
		pending []kafka.Message
	)
	for d.MaxMessages <= 0 || len(batch) < d.MaxMessages {
		msg, err := d.fetch(ctx, r)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if errors.Is(err, context.DeadlineExceeded) {
				break
			}
			d.Logf("[KAFKA] fetch error: %v", err)
			return nil, fmt.Errorf("kafka fetch: %w", err)
		}

		pending = append(pending, msg)
		if o, ok := d.handleMessage(msg); ok {
			batch = append(batch, o)
		}
	}

	if len(batch) > 0 && d.Sink != nil {
		if err := d.Sink.SaveBatch(ctx, batch); err != nil {
			d.Logf("[KAFKA] persist batch: %v", err)
			return nil, fmt.Errorf("kafka persist: %w", err)
		}
	}

	if len(pending) > 0 {
		if err := r.CommitMessages(ctx, pending...); err != nil {
			d.Logf("[KAFKA] commit error (%d messages): %v", len(pending), err)
		}
	}
	d.Logf("[KAFKA] drained %d orders (%d skipped)", len(batch), len(pending)-len(batch))
	return batch, nil
}

func (d *Drainer) fetch(ctx context.Context, r reader) (kafka.Message, error) {
	ctxI, cancel := context.WithTimeout(ctx, d.Idle)
	defer cancel()
	return r.FetchMessage(ctxI)
}

func (d *Drainer) handleMessage(msg kafka.Message) (order.Order, bool) {
	var o order.Order

	if err := d.Decode(msg.Value, &o); err != nil {
		d.Logf("[KAFKA] bad json %s[%d]#%d: %v", msg.Topic, msg.Partition, msg.Offset, err)
		return order.Order{}, false
	}

	if len(msg.Key) > 0 && string(msg.Key) != o.OrderID {
		d.Logf("[KAFKA] key/payload mismatch %s[%d]#%d: key=%q payload=%q",
			msg.Topic, msg.Partition, msg.Offset, string(msg.Key), o.OrderID)
	}

	if err := d.Validate(&o); err != nil {
		d.Logf("[KAFKA] invalid %q %s[%d]#%d: %v",
			o.OrderID, msg.Topic, msg.Partition, msg.Offset, err)
		return order.Order{}, false
	}

	return o, true
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
