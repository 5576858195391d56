package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublishing(t *testing.T) {
	qty := 3
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	evt := BookingPaid{
		BookingID:       "65f1c0a7e4b0a1b2c3d4e5f6",
		TicketID:        "65f1c0a7e4b0a1b2c3d4e5aa",
		BookingQuantity: &qty,
		TransactionID:   "pi_123",
		PaidAt:          now,
	}

	msg, err := NewPublishing(evt, now)
	require.NoError(t, err)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, BookingPaidRouting, msg.Type)
	assert.Equal(t, evt.BookingID, msg.MessageId)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, "pi_123", decoded["transactionId"])
	assert.EqualValues(t, 3, decoded["bookingQuantity"])
	assert.NotContains(t, decoded, "userEmail")
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.PublishBookingPaid(context.Background(), BookingPaid{}))
}
