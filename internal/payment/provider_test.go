package payment

import (
	"errors"
	"net/http"
	"testing"

	"ticketzone/internal/domain"
	"ticketzone/internal/domain/models"

	"github.com/stripe/stripe-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutParams(t *testing.T) {
	params := CheckoutParams(models.CheckoutRequest{
		BookingID:       "65f1c0a7e4b0a1b2c3d4e5f6",
		TicketID:        "65f1c0a7e4b0a1b2c3d4e5aa",
		Title:           "Night coach",
		UnitAmountCents: 2050,
		BookingQuantity: 3,
		TicketQuantity:  10,
		CustomerEmail:   "u@x.com",
		SuccessURL:      "http://site/dashboard/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:       "http://site/dashboard/my-bookings",
	}, "usd")

	require.Len(t, params.LineItems, 1)
	item := params.LineItems[0]
	assert.Equal(t, "Night coach", *item.Name)
	assert.Equal(t, int64(2050), *item.Amount)
	assert.Equal(t, int64(3), *item.Quantity)
	assert.Equal(t, "usd", *item.Currency)
	assert.Equal(t, "payment", *params.Mode)
	assert.Equal(t, "u@x.com", *params.CustomerEmail)
	assert.Contains(t, *params.SuccessURL, "{CHECKOUT_SESSION_ID}")

	assert.Equal(t, "65f1c0a7e4b0a1b2c3d4e5f6", params.Metadata[MetaBookingID])
	assert.Equal(t, "65f1c0a7e4b0a1b2c3d4e5aa", params.Metadata[MetaTicketID])
	assert.Equal(t, "10", params.Metadata[MetaQuantity])
	assert.Equal(t, "3", params.Metadata[MetaBookingQuantity])
}

func TestSessionFromStripe(t *testing.T) {
	s := SessionFromStripe(&stripe.CheckoutSession{
		ID:            "cs_test_1",
		CustomerEmail: "u@x.com",
		PaymentIntent: &stripe.PaymentIntent{ID: "pi_123", Status: stripe.PaymentIntentStatusSucceeded},
		Metadata: map[string]string{
			MetaBookingID:       "65f1c0a7e4b0a1b2c3d4e5f6",
			MetaTicketID:        "65f1c0a7e4b0a1b2c3d4e5aa",
			MetaQuantity:        "10",
			MetaBookingQuantity: "3",
		},
	})

	assert.Equal(t, "pi_123", s.TransactionID)
	assert.True(t, s.Paid)
	assert.Equal(t, "65f1c0a7e4b0a1b2c3d4e5f6", s.BookingID)
	require.NotNil(t, s.Quantity)
	require.NotNil(t, s.BookingQuantity)
	assert.Equal(t, 10, *s.Quantity)
	assert.Equal(t, 3, *s.BookingQuantity)
}

func TestSessionFromStripeMissingMetadata(t *testing.T) {
	s := SessionFromStripe(&stripe.CheckoutSession{
		ID:       "cs_test_2",
		Metadata: map[string]string{MetaBookingQuantity: "three"},
	})

	assert.Equal(t, "cs_test_2", s.TransactionID)
	assert.False(t, s.Paid)
	assert.Empty(t, s.BookingID)
	assert.Nil(t, s.Quantity)
	assert.Nil(t, s.BookingQuantity)
	assert.Equal(t, models.PaymentSession{}, SessionFromStripe(nil))
}

func TestSessionFromStripeUnpaidIntent(t *testing.T) {
	for _, status := range []stripe.PaymentIntentStatus{
		stripe.PaymentIntentStatusRequiresPaymentMethod,
		stripe.PaymentIntentStatusRequiresAction,
		stripe.PaymentIntentStatusProcessing,
		stripe.PaymentIntentStatusCanceled,
	} {
		s := SessionFromStripe(&stripe.CheckoutSession{
			ID:            "cs_test_3",
			PaymentIntent: &stripe.PaymentIntent{ID: "pi_1", Status: status},
			Metadata: map[string]string{
				MetaBookingID:       "65f1c0a7e4b0a1b2c3d4e5f6",
				MetaBookingQuantity: "3",
			},
		})
		assert.False(t, s.Paid, string(status))
		assert.Equal(t, "pi_1", s.TransactionID)
	}
}

func TestProviderError(t *testing.T) {
	err := providerError(&stripe.Error{HTTPStatusCode: http.StatusNotFound, Msg: "No such checkout.session"})
	assert.True(t, domain.IsNotFound(err))

	err = providerError(errors.New("tls handshake timeout"))
	assert.True(t, domain.IsUpstream(err))
}
