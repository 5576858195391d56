package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"ticketzone/internal/access"
	"ticketzone/internal/domain"
	"ticketzone/internal/domain/models"
	"ticketzone/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the e-ticket PDF of a paid booking.
type DocsService struct {
	Bookings  BookingStore
	Tickets   TicketStore
	RequestID string
}

type eTicketData struct {
	Booking models.Booking
	Ticket  models.Ticket
}

// GenerateETicket returns the PDF bytes and a download filename. Only the
// booking's user or an admin may download it.
func (s DocsService) GenerateETicket(ctx context.Context, caller domain.Principal, rawID string) ([]byte, string, error) {
	id, err := domain.ParseID("id", rawID)
	if err != nil {
		return nil, "", err
	}
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	isOwner := domain.NormalizeEmail(caller.Email) == b.UserEmail
	if err := access.Check(access.DownloadETicket, &caller, isOwner); err != nil {
		return nil, "", err
	}
	if b.PaymentStatus != models.PaymentPaid {
		return nil, "", domain.ConflictError{Resource: "booking", Msg: "booking is not paid"}
	}

	data := eTicketData{Booking: b}
	t, err := s.Tickets.GetByID(ctx, b.TicketID)
	switch {
	case err == nil:
		data.Ticket = t
	case domain.IsNotFound(err):
		data.Ticket = models.Ticket{ID: b.TicketID, Title: b.TicketTitle, VendorEmail: b.VendorEmail}
	default:
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "docs", "generate_eticket", "booking_id="+b.ID)
	return buildETicketPDF(data)
}

func buildETicketPDF(d eTicketData) ([]byte, string, error) {
	b, t := d.Booking, d.Ticket

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TICKET ZONE E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Passenger      : %s", safe(b.UserEmail, "-")),
		fmt.Sprintf("Ticket         : %s", safe(t.Title, b.TicketTitle)),
		fmt.Sprintf("Transport      : %s", safe(t.TransportType, "-")),
		fmt.Sprintf("Route          : %s -> %s", safe(t.From, "-"), safe(t.To, "-")),
		fmt.Sprintf("Departure      : %s", utils.FormatDateTime(t.DepartureAt)),
		fmt.Sprintf("Operator       : %s", safe(t.VendorName, b.VendorEmail)),
		fmt.Sprintf("Quantity       : %d", b.Quantity),
		fmt.Sprintf("Unit price     : %s", utils.FormatUSD(b.UnitPrice)),
		fmt.Sprintf("Total paid     : %s", utils.FormatUSD(b.TotalPrice)),
		fmt.Sprintf("Paid at        : %s", utils.FormatDateTime(b.PaidAt)),
		fmt.Sprintf("Transaction    : %s", safe(b.TransactionID, "-")),
		fmt.Sprintf("Booking code   : %s", strings.ToUpper(b.ID)),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, fmt.Sprintf("This e-ticket is valid for %d passenger(s). Please present it at departure.", b.Quantity), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "render e-ticket", Err: err}
	}

	filename := fmt.Sprintf("ETICKET_%s_%s.pdf", b.ID, utils.SafeFilenamePart(t.Title))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
