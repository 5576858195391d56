package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TicketStatus string

const (
	TicketPending  TicketStatus = "pending"
	TicketAccepted TicketStatus = "accepted"
	TicketRejected TicketStatus = "rejected"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketPending, TicketAccepted, TicketRejected:
		return true
	}
	return false
}

// Ticket is a sellable transport listing owned by a vendor.
type Ticket struct {
	ID            string          `json:"_id"`
	VendorEmail   string          `json:"vendorEmail"`
	VendorName    string          `json:"vendorName"`
	Title         string          `json:"title"`
	TransportType string          `json:"transportType"`
	From          string          `json:"from"`
	To            string          `json:"to"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	IsAdvertised  bool            `json:"isAdvertised"`
	Status        TicketStatus    `json:"status"`
	DepartureAt   *time.Time      `json:"departureAt,omitempty"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// TicketUpdate supports PATCH-style updates via key presence.
type TicketUpdate struct {
	VendorName    *string          `json:"vendorName"`
	Title         *string          `json:"title"`
	TransportType *string          `json:"transportType"`
	From          *string          `json:"from"`
	To            *string          `json:"to"`
	Price         *decimal.Decimal `json:"price"`
	Quantity      *int             `json:"quantity"`
	IsAdvertised  *bool            `json:"isAdvertised"`
	Status        *TicketStatus    `json:"status"`
	DepartureAt   *time.Time       `json:"departureAt"`
	ImageURL      *string          `json:"imageUrl"`
}

// Empty reports whether the update carries no field.
func (u TicketUpdate) Empty() bool {
	return u.VendorName == nil && u.Title == nil && u.TransportType == nil &&
		u.From == nil && u.To == nil && u.Price == nil && u.Quantity == nil &&
		u.IsAdvertised == nil && u.Status == nil && u.DepartureAt == nil && u.ImageURL == nil
}

// TicketPage is one page of a filtered listing.
type TicketPage struct {
	Total   int      `json:"total"`
	Tickets []Ticket `json:"tickets"`
	Page    int      `json:"page"`
	Limit   int      `json:"limit"`
}

// DeleteResult reports a cascading ticket delete.
type DeleteResult struct {
	DeletedCount    int64 `json:"deletedCount"`
	DeletedBookings int64 `json:"deletedBookings"`
}

// UpdateResult mirrors the matched/modified counts of a store update.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// TicketInput is the body of a new listing. Vendor email and status are set
// by the server.
type TicketInput struct {
	VendorName    string          `json:"vendorName"`
	Title         string          `json:"title"`
	TransportType string          `json:"transportType"`
	From          string          `json:"from"`
	To            string          `json:"to"`
	Price         decimal.Decimal `json:"price"`
	Quantity      *int            `json:"quantity"`
	IsAdvertised  bool            `json:"isAdvertised"`
	DepartureAt   *time.Time      `json:"departureAt"`
	ImageURL      string          `json:"imageUrl"`
}

// VendorTicketUpdate is the vendor bulk-edit body. Without TicketID the fields
// apply to every ticket of the vendor.
type VendorTicketUpdate struct {
	TicketID string `json:"ticketId"`
	TicketUpdate
}

// InsertResult acknowledges a created document.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}
