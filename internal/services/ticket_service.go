package services

import (
	"context"
	"fmt"
	"strings"

	"ticketzone/internal/domain"
	"ticketzone/internal/domain/models"
	"ticketzone/internal/repositories"
	"ticketzone/internal/utils"
)

type TicketService struct {
	Tickets   TicketStore
	RequestID string
}

// Create stores a new pending listing owned by the calling vendor.
func (s TicketService) Create(ctx context.Context, vendor domain.Principal, in models.TicketInput) (models.InsertResult, error) {
	if err := validateTicketInput(in); err != nil {
		return models.InsertResult{}, err
	}

	t := models.Ticket{
		ID:            domain.NewID(),
		VendorEmail:   domain.NormalizeEmail(vendor.Email),
		VendorName:    utils.NormalizeSpace(in.VendorName),
		Title:         utils.NormalizeSpace(in.Title),
		TransportType: strings.ToLower(strings.TrimSpace(in.TransportType)),
		From:          utils.NormalizeSpace(in.From),
		To:            utils.NormalizeSpace(in.To),
		Price:         in.Price,
		Quantity:      *in.Quantity,
		IsAdvertised:  in.IsAdvertised,
		Status:        models.TicketPending,
		DepartureAt:   in.DepartureAt,
		ImageURL:      strings.TrimSpace(in.ImageURL),
		CreatedAt:     utils.NowUTC(),
	}
	if err := s.Tickets.Insert(ctx, t); err != nil {
		return models.InsertResult{}, err
	}

	utils.LogEvent(s.RequestID, "tickets", "create", fmt.Sprintf("ticket_id=%s vendor=%s quantity=%d", t.ID, t.VendorEmail, t.Quantity))
	return models.InsertResult{Acknowledged: true, InsertedID: t.ID}, nil
}

func validateTicketInput(in models.TicketInput) error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return domain.ValidationError{Field: "title", Msg: "required"}
	case strings.TrimSpace(in.TransportType) == "":
		return domain.ValidationError{Field: "transportType", Msg: "required"}
	case strings.TrimSpace(in.From) == "":
		return domain.ValidationError{Field: "from", Msg: "required"}
	case strings.TrimSpace(in.To) == "":
		return domain.ValidationError{Field: "to", Msg: "required"}
	case in.Price.IsNegative():
		return domain.ValidationError{Field: "price", Msg: "must not be negative"}
	case in.Quantity == nil:
		return domain.ValidationError{Field: "quantity", Msg: "required"}
	case *in.Quantity < 0:
		return domain.ValidationError{Field: "quantity", Msg: "must not be negative"}
	}
	return nil
}

func (s TicketService) List(ctx context.Context, f repositories.TicketFilter) (models.TicketPage, error) {
	return s.Tickets.List(ctx, f)
}

// ListByStatus lists tickets in one moderation status; other filters in f still apply.
func (s TicketService) ListByStatus(ctx context.Context, status string, f repositories.TicketFilter) (models.TicketPage, error) {
	st := models.TicketStatus(strings.ToLower(strings.TrimSpace(status)))
	if !st.Valid() {
		return models.TicketPage{}, domain.ValidationError{Field: "status", Msg: "must be pending, accepted or rejected"}
	}
	f.Status = st
	return s.Tickets.List(ctx, f)
}

func (s TicketService) ListByVendor(ctx context.Context, vendorEmail string, f repositories.TicketFilter) (models.TicketPage, error) {
	vendorEmail = domain.NormalizeEmail(vendorEmail)
	if vendorEmail == "" {
		return models.TicketPage{}, domain.ValidationError{Field: "vendorEmail", Msg: "required"}
	}
	f.VendorEmail = vendorEmail
	return s.Tickets.List(ctx, f)
}

func (s TicketService) Get(ctx context.Context, rawID string) (models.Ticket, error) {
	id, err := domain.ParseID("id", rawID)
	if err != nil {
		return models.Ticket{}, err
	}
	return s.Tickets.GetByID(ctx, id)
}

func (s TicketService) AdvertisedCount(ctx context.Context) (int, error) {
	return s.Tickets.CountAdvertised(ctx)
}

// Update is the admin edit: any field, including status and the advertised flag.
func (s TicketService) Update(ctx context.Context, rawID string, u models.TicketUpdate) (models.UpdateResult, error) {
	id, err := domain.ParseID("id", rawID)
	if err != nil {
		return models.UpdateResult{}, err
	}
	if err := validateTicketUpdate(u); err != nil {
		return models.UpdateResult{}, err
	}
	res, err := s.Tickets.Update(ctx, id, u)
	if err != nil {
		return models.UpdateResult{}, err
	}
	utils.LogEvent(s.RequestID, "tickets", "update", fmt.Sprintf("ticket_id=%s matched=%d modified=%d", id, res.MatchedCount, res.ModifiedCount))
	return res, nil
}

// UpdateByVendor is the vendor self-edit. Moderation fields are rejected, and
// without a ticket id only vendor profile fields may change.
func (s TicketService) UpdateByVendor(ctx context.Context, vendorEmail string, u models.VendorTicketUpdate) (models.UpdateResult, error) {
	vendorEmail = domain.NormalizeEmail(vendorEmail)
	if u.Status != nil || u.IsAdvertised != nil {
		return models.UpdateResult{}, domain.ValidationError{Field: "body", Msg: "status and isAdvertised are moderated by admins"}
	}
	if err := validateTicketUpdate(u.TicketUpdate); err != nil {
		return models.UpdateResult{}, err
	}

	ticketID := ""
	if strings.TrimSpace(u.TicketID) != "" {
		id, err := domain.ParseID("ticketId", u.TicketID)
		if err != nil {
			return models.UpdateResult{}, err
		}
		ticketID = id
	} else if !vendorProfileOnly(u.TicketUpdate) {
		return models.UpdateResult{}, domain.ValidationError{Field: "ticketId", Msg: "required when changing listing fields"}
	}

	res, err := s.Tickets.UpdateByVendor(ctx, vendorEmail, ticketID, u.TicketUpdate)
	if err != nil {
		return models.UpdateResult{}, err
	}
	utils.LogEvent(s.RequestID, "tickets", "vendor_update", fmt.Sprintf("vendor=%s ticket_id=%s matched=%d", vendorEmail, ticketID, res.MatchedCount))
	return res, nil
}

func vendorProfileOnly(u models.TicketUpdate) bool {
	rest := u
	rest.VendorName = nil
	return u.VendorName != nil && rest.Empty()
}

func validateTicketUpdate(u models.TicketUpdate) error {
	if u.Empty() {
		return domain.ValidationError{Field: "body", Msg: "no updatable field"}
	}
	if u.Status != nil && !u.Status.Valid() {
		return domain.ValidationError{Field: "status", Msg: "must be pending, accepted or rejected"}
	}
	if u.Price != nil && u.Price.IsNegative() {
		return domain.ValidationError{Field: "price", Msg: "must not be negative"}
	}
	if u.Quantity != nil && *u.Quantity < 0 {
		return domain.ValidationError{Field: "quantity", Msg: "must not be negative"}
	}
	for field, v := range map[string]*string{"title": u.Title, "transportType": u.TransportType, "from": u.From, "to": u.To} {
		if v != nil && strings.TrimSpace(*v) == "" {
			return domain.ValidationError{Field: field, Msg: "must not be empty"}
		}
	}
	return nil
}

// Delete removes one of the vendor's tickets and its bookings.
func (s TicketService) Delete(ctx context.Context, vendorEmail, rawID string) (models.DeleteResult, error) {
	id, err := domain.ParseID("id", rawID)
	if err != nil {
		return models.DeleteResult{}, err
	}
	res, err := s.Tickets.Delete(ctx, id, domain.NormalizeEmail(vendorEmail))
	if err != nil {
		return models.DeleteResult{}, err
	}
	utils.LogEvent(s.RequestID, "tickets", "delete", fmt.Sprintf("ticket_id=%s deleted=%d bookings=%d", id, res.DeletedCount, res.DeletedBookings))
	return res, nil
}

func (s TicketService) DeleteByVendor(ctx context.Context, vendorEmail string) (models.DeleteResult, error) {
	vendorEmail = domain.NormalizeEmail(vendorEmail)
	if vendorEmail == "" {
		return models.DeleteResult{}, domain.ValidationError{Field: "vendorEmail", Msg: "required"}
	}
	res, err := s.Tickets.DeleteByVendor(ctx, vendorEmail)
	if err != nil {
		return models.DeleteResult{}, err
	}
	utils.LogEvent(s.RequestID, "tickets", "delete_vendor", fmt.Sprintf("vendor=%s deleted=%d bookings=%d", vendorEmail, res.DeletedCount, res.DeletedBookings))
	return res, nil
}
