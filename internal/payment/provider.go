package payment

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"ticketzone/internal/domain"
	"ticketzone/internal/domain/models"

	"github.com/stripe/stripe-go"
	"github.com/stripe/stripe-go/checkout/session"
)

// Metadata keys written on checkout and read back on settlement.
const (
	MetaBookingID       = "bookingId"
	MetaTicketID        = "ticketId"
	MetaQuantity        = "quantity"
	MetaBookingQuantity = "bookingQuantity"
)

// Provider is the narrow view of the payment provider the services need.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (models.CheckoutSession, error)
	GetSession(ctx context.Context, sessionID string) (models.PaymentSession, error)
}

// StripeProvider talks to Stripe Checkout.
type StripeProvider struct {
	Sessions session.Client
	Currency string
}

func NewStripeProvider(secretKey string) *StripeProvider {
	return &StripeProvider{
		Sessions: session.Client{B: stripe.GetBackend(stripe.APIBackend), Key: secretKey},
		Currency: string(stripe.CurrencyUSD),
	}
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (models.CheckoutSession, error) {
	params := CheckoutParams(req, p.Currency)
	params.Context = ctx

	s, err := p.Sessions.New(params)
	if err != nil {
		return models.CheckoutSession{}, providerError(err)
	}
	return models.CheckoutSession{SessionID: s.ID}, nil
}

func (p *StripeProvider) GetSession(ctx context.Context, sessionID string) (models.PaymentSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("payment_intent")

	s, err := p.Sessions.Get(sessionID, params)
	if err != nil {
		return models.PaymentSession{}, providerError(err)
	}
	return SessionFromStripe(s), nil
}

// CheckoutParams builds a one-line-item payment session for req.
func CheckoutParams(req models.CheckoutRequest, currency string) *stripe.CheckoutSessionParams {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String("payment"),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Name:     stripe.String(req.Title),
				Amount:   stripe.Int64(req.UnitAmountCents),
				Currency: stripe.String(currency),
				Quantity: stripe.Int64(int64(req.BookingQuantity)),
			},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	params.AddMetadata(MetaBookingID, req.BookingID)
	params.AddMetadata(MetaTicketID, req.TicketID)
	params.AddMetadata(MetaQuantity, strconv.Itoa(req.TicketQuantity))
	params.AddMetadata(MetaBookingQuantity, strconv.Itoa(req.BookingQuantity))
	return params
}

// SessionFromStripe reads the settlement inputs back out of a session.
// The transaction id is the payment intent id, or the session id without one.
// A session without a succeeded payment intent is not paid.
func SessionFromStripe(s *stripe.CheckoutSession) models.PaymentSession {
	if s == nil {
		return models.PaymentSession{}
	}
	out := models.PaymentSession{
		ID:            s.ID,
		TransactionID: s.ID,
		CustomerEmail: s.CustomerEmail,
	}
	if s.PaymentIntent != nil {
		if s.PaymentIntent.ID != "" {
			out.TransactionID = s.PaymentIntent.ID
		}
		out.Paid = s.PaymentIntent.Status == stripe.PaymentIntentStatusSucceeded
	}
	meta := s.Metadata
	out.BookingID = strings.TrimSpace(meta[MetaBookingID])
	out.TicketID = strings.TrimSpace(meta[MetaTicketID])
	out.Quantity = optionalInt(meta[MetaQuantity])
	out.BookingQuantity = optionalInt(meta[MetaBookingQuantity])
	return out
}

func optionalInt(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

func providerError(err error) error {
	var se *stripe.Error
	if errors.As(err, &se) && se.HTTPStatusCode == http.StatusNotFound {
		return domain.NotFoundError{Resource: "payment session", Err: err}
	}
	return domain.UpstreamError{Service: "payment provider", Err: err}
}
