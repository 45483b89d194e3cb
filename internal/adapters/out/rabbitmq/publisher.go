package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"fulfillment/internal/core/domain/model/order"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultExchange is the fanout exchange status changes go to when none is configured.
const DefaultExchange = "order_status_fanout"

// Publisher sends order status changes to a fanout exchange. Customer
// notification services bind their own queues to it.
//
// A single channel is reused across calls. After a failed publish the channel
// is dropped and the next call opens a new one.
type Publisher struct {
	conn     Connection
	exchange string

	mu       sync.Mutex
	ch       Channel
	declared bool
}

func NewPublisher(conn Connection, exchange string) *Publisher {
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &Publisher{conn: conn, exchange: exchange}
}

func (p *Publisher) Publish(ctx context.Context, event order.StatusChanged) error {
	body, err := json.Marshal(newStatusChangedMessage(event))
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx, p.exchange, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         MessageType,
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
	if err != nil {
		p.reset()
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

// Close releases the channel. The connection is owned by the caller.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil {
		return nil
	}
	err := p.ch.Close()
	p.ch = nil
	p.declared = false
	return err
}

func (p *Publisher) channel() (Channel, error) {
	if p.ch == nil {
		ch, err := p.conn.Channel()
		if err != nil {
			return nil, err
		}
		p.ch = ch
	}

	if !p.declared {
		if err := p.ch.ExchangeDeclare(p.exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
			p.reset()
			return nil, fmt.Errorf("failed to declare exchange: %w", err)
		}
		p.declared = true
	}

	return p.ch, nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	p.ch = nil
	p.declared = false
}
