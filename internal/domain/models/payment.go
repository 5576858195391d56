package models

import "time"

// PaymentSession is what the provider returns for a checkout session reference.
// Quantity and BookingQuantity are nil when the session metadata omits them.
// Paid is set only once the provider reports the payment as succeeded.
type PaymentSession struct {
	ID              string
	Paid            bool
	BookingID       string
	TicketID        string
	Quantity        *int
	BookingQuantity *int
	TransactionID   string
	CustomerEmail   string
}

// CheckoutRequest describes the line item of a new checkout session.
type CheckoutRequest struct {
	BookingID       string
	TicketID        string
	Title           string
	UnitAmountCents int64
	BookingQuantity int
	TicketQuantity  int
	CustomerEmail   string
	SuccessURL      string
	CancelURL       string
}

// CheckoutSession is the created provider session.
type CheckoutSession struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url,omitempty"`
}

// Settlement is the input of the booking/ticket reconciliation transaction.
type Settlement struct {
	BookingID       string
	TicketID        string
	BookingQuantity *int
	TransactionID   string
	PaidAt          time.Time
}

// SettlementResult is the booking-update outcome surfaced to the caller.
type SettlementResult struct {
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	AlreadyPaid   bool   `json:"alreadyPaid"`
	TransactionID string `json:"transactionId"`
}
