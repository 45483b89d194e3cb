package rabbitmq

import (
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// MessageType is set as the AMQP type of every status change message.
const MessageType = "order.status_changed"

// StatusChangedMessage is the JSON body published for an order status change.
type StatusChangedMessage struct {
	OrderID    string    `json:"order_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	OccurredAt time.Time `json:"occurred_at"`
	Reason     string    `json:"reason,omitempty"`
	Carrier    string    `json:"carrier,omitempty"`
	TrackingID string    `json:"tracking_id,omitempty"`
}

func newStatusChangedMessage(event order.StatusChanged) StatusChangedMessage {
	msg := StatusChangedMessage{
		OrderID:    event.OrderID.String(),
		From:       event.From.String(),
		To:         event.To.String(),
		OccurredAt: event.OccurredAt.UTC(),
		Reason:     event.Reason,
	}
	if event.Shipping != nil {
		msg.Carrier = event.Shipping.Carrier
		msg.TrackingID = event.Shipping.TrackingID
	}
	return msg
}
