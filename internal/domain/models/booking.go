package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentUnpaid || s == PaymentPaid
}

type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingAccepted BookingStatus = "accepted"
	BookingRejected BookingStatus = "rejected"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingAccepted, BookingRejected:
		return true
	}
	return false
}

// Booking is a user's reservation against a ticket.
type Booking struct {
	ID            string          `json:"_id"`
	TicketID      string          `json:"ticketId"`
	TicketTitle   string          `json:"ticketTitle"`
	UserEmail     string          `json:"userEmail"`
	VendorEmail   string          `json:"vendorEmail"`
	Quantity      int             `json:"bookingQuantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	Status        BookingStatus   `json:"status"`
	TransactionID string          `json:"transactionId,omitempty"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Revenue aggregates a vendor's bookings in one payment status.
type Revenue struct {
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	Bookings      int             `json:"bookings"`
	Quantity      int             `json:"quantity"`
	Revenue       decimal.Decimal `json:"revenue"`
}

// BookingInput is the body of a new booking.
type BookingInput struct {
	TicketID        string `json:"ticketId"`
	BookingQuantity int    `json:"bookingQuantity"`
}
