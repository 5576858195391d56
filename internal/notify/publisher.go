package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	DefaultExchange    = "ticketzone.events"
	BookingPaidRouting = "booking.paid"
)

// BookingPaid is published once a settlement has committed.
type BookingPaid struct {
	BookingID       string    `json:"bookingId"`
	TicketID        string    `json:"ticketId"`
	UserEmail       string    `json:"userEmail,omitempty"`
	BookingQuantity *int      `json:"bookingQuantity,omitempty"`
	TransactionID   string    `json:"transactionId"`
	PaidAt          time.Time `json:"paidAt"`
}

type Publisher interface {
	PublishBookingPaid(ctx context.Context, evt BookingPaid) error
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) PublishBookingPaid(context.Context, BookingPaid) error { return nil }

// AMQPPublisher publishes JSON events to a durable topic exchange.
type AMQPPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	mu       sync.Mutex
}

func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &AMQPPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// NewPublishing renders evt as a persistent JSON message.
func NewPublishing(evt BookingPaid, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(evt)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal message: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    now,
		Type:         BookingPaidRouting,
		MessageId:    evt.BookingID,
	}, nil
}

func (p *AMQPPublisher) PublishBookingPaid(ctx context.Context, evt BookingPaid) error {
	msg, err := NewPublishing(evt, time.Now().UTC())
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.channel.PublishWithContext(ctx, p.exchange, BookingPaidRouting, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
