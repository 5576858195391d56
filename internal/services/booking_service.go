package services

import (
	"context"
	"fmt"
	"strings"

	"ticketzone/internal/domain"
	"ticketzone/internal/domain/models"
	"ticketzone/internal/utils"

	"github.com/shopspring/decimal"
)

type BookingService struct {
	Bookings  BookingStore
	Tickets   TicketStore
	RequestID string
}

// Create books quantity units of an accepted ticket for the caller. Stock is
// checked here but only taken at settlement.
func (s BookingService) Create(ctx context.Context, user domain.Principal, in models.BookingInput) (models.Booking, error) {
	ticketID, err := domain.ParseID("ticketId", in.TicketID)
	if err != nil {
		return models.Booking{}, err
	}
	if in.BookingQuantity < 1 {
		return models.Booking{}, domain.ValidationError{Field: "bookingQuantity", Msg: "must be at least 1"}
	}

	t, err := s.Tickets.GetByID(ctx, ticketID)
	if err != nil {
		return models.Booking{}, err
	}
	if t.Status != models.TicketAccepted {
		return models.Booking{}, domain.ConflictError{Resource: "ticket", Msg: "ticket is not open for booking"}
	}
	if t.Quantity < in.BookingQuantity {
		return models.Booking{}, domain.ConflictError{Resource: "ticket", Msg: "insufficient quantity"}
	}

	b := models.Booking{
		ID:            domain.NewID(),
		TicketID:      t.ID,
		TicketTitle:   t.Title,
		UserEmail:     domain.NormalizeEmail(user.Email),
		VendorEmail:   t.VendorEmail,
		Quantity:      in.BookingQuantity,
		UnitPrice:     t.Price,
		TotalPrice:    t.Price.Mul(decimal.NewFromInt(int64(in.BookingQuantity))),
		PaymentStatus: models.PaymentUnpaid,
		Status:        models.BookingPending,
		CreatedAt:     utils.NowUTC(),
	}
	if err := s.Bookings.Insert(ctx, b); err != nil {
		return models.Booking{}, err
	}

	utils.LogEvent(s.RequestID, "bookings", "create", fmt.Sprintf("booking_id=%s ticket_id=%s quantity=%d", b.ID, b.TicketID, b.Quantity))
	return b, nil
}

func (s BookingService) Get(ctx context.Context, rawID string) (models.Booking, error) {
	id, err := domain.ParseID("id", rawID)
	if err != nil {
		return models.Booking{}, err
	}
	return s.Bookings.GetByID(ctx, id)
}

// ListForVendor returns bookings made against the vendor's tickets.
func (s BookingService) ListForVendor(ctx context.Context, vendorEmail string) ([]models.Booking, error) {
	return s.Bookings.ListByVendor(ctx, domain.NormalizeEmail(vendorEmail))
}

func (s BookingService) ListByUser(ctx context.Context, email string) ([]models.Booking, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, domain.ValidationError{Field: "email", Msg: "required"}
	}
	return s.Bookings.ListByUser(ctx, email)
}

func (s BookingService) Revenue(ctx context.Context, vendorEmail, rawStatus string) (models.Revenue, error) {
	status := models.PaymentStatus(strings.ToLower(strings.TrimSpace(rawStatus)))
	if !status.Valid() {
		return models.Revenue{}, domain.ValidationError{Field: "paymentStatus", Msg: "must be paid or unpaid"}
	}
	return s.Bookings.Revenue(ctx, domain.NormalizeEmail(vendorEmail), status)
}

// UpdateStatus accepts or rejects a booking. Only bookings of the vendor's
// own tickets match.
func (s BookingService) UpdateStatus(ctx context.Context, vendorEmail, rawID, rawStatus string) (models.UpdateResult, error) {
	id, err := domain.ParseID("id", rawID)
	if err != nil {
		return models.UpdateResult{}, err
	}
	status := models.BookingStatus(strings.ToLower(strings.TrimSpace(rawStatus)))
	if !status.Valid() {
		return models.UpdateResult{}, domain.ValidationError{Field: "status", Msg: "must be pending, accepted or rejected"}
	}

	res, err := s.Bookings.UpdateStatus(ctx, id, domain.NormalizeEmail(vendorEmail), status)
	if err != nil {
		return models.UpdateResult{}, err
	}
	utils.LogEvent(s.RequestID, "bookings", "update_status", fmt.Sprintf("booking_id=%s status=%s matched=%d", id, status, res.MatchedCount))
	return res, nil
}
