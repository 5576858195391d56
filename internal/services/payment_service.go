package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ticketzone/internal/domain"
	"ticketzone/internal/domain/models"
	"ticketzone/internal/metrics"
	"ticketzone/internal/notify"
	"ticketzone/internal/payment"
	"ticketzone/internal/utils"
)

// PaymentService opens checkout sessions and settles completed ones.
type PaymentService struct {
	Bookings   BookingStore
	Tickets    TicketStore
	Settlement SettlementStore
	Provider   payment.Provider
	Publisher  notify.Publisher
	Metrics    *metrics.Metrics
	SiteDomain string
	Now        func() time.Time
	RequestID  string
}

type CheckoutInput struct {
	BookingID string `json:"bookingId"`
}

func (s PaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

// Checkout creates a provider session for an unpaid booking. The amount comes
// from the stored booking, never from the request.
func (s PaymentService) Checkout(ctx context.Context, in CheckoutInput) (models.CheckoutSession, error) {
	bookingID, err := domain.ParseID("bookingId", in.BookingID)
	if err != nil {
		return models.CheckoutSession{}, err
	}
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return models.CheckoutSession{}, err
	}
	if b.PaymentStatus == models.PaymentPaid {
		return models.CheckoutSession{}, domain.ConflictError{Resource: "booking", Msg: "booking already paid"}
	}
	t, err := s.Tickets.GetByID(ctx, b.TicketID)
	if err != nil {
		return models.CheckoutSession{}, err
	}

	site := strings.TrimRight(s.SiteDomain, "/")
	req := models.CheckoutRequest{
		BookingID:       b.ID,
		TicketID:        t.ID,
		Title:           t.Title,
		UnitAmountCents: utils.ToCents(b.UnitPrice),
		BookingQuantity: b.Quantity,
		TicketQuantity:  t.Quantity,
		CustomerEmail:   b.UserEmail,
		SuccessURL:      site + "/dashboard/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:       site + "/dashboard/my-bookings",
	}
	sess, err := s.Provider.CreateCheckoutSession(ctx, req)
	if err != nil {
		utils.LogEvent(s.RequestID, "payments", "checkout", "provider error: "+err.Error())
		return models.CheckoutSession{}, err
	}

	utils.LogEvent(s.RequestID, "payments", "checkout", fmt.Sprintf("booking_id=%s session_id=%s amount_cents=%d quantity=%d", b.ID, sess.SessionID, req.UnitAmountCents, req.BookingQuantity))
	return sess, nil
}

// Settle reconciles a completed session: the booking becomes paid and the
// booked quantity leaves ticket stock, together or not at all. Repeating it for
// the same session changes nothing.
func (s PaymentService) Settle(ctx context.Context, sessionID string) (models.SettlementResult, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return models.SettlementResult{}, domain.ValidationError{Field: "sessionId", Msg: "required"}
	}

	sess, err := s.Provider.GetSession(ctx, sessionID)
	if err != nil {
		s.observe(err)
		return models.SettlementResult{}, err
	}
	if sess.BookingID == "" {
		err := domain.NotFoundError{Resource: "payment session"}
		s.observe(err)
		return models.SettlementResult{}, err
	}

	if !sess.Paid {
		s.Metrics.ObserveSettlement(metrics.SettlementUnpaid)
		utils.Entry(s.RequestID, "payments", "settle").WithField("session_id", sessionID).Warn("session not paid")
		return models.SettlementResult{}, domain.ConflictError{Resource: "payment", Msg: "payment not completed"}
	}

	bookingID, err := domain.ParseID("bookingId", sess.BookingID)
	if err != nil {
		return models.SettlementResult{}, err
	}
	ticketID := ""
	if sess.TicketID != "" {
		if ticketID, err = domain.ParseID("ticketId", sess.TicketID); err != nil {
			return models.SettlementResult{}, err
		}
	}

	entry := utils.Entry(s.RequestID, "payments", "settle").WithField("session_id", sessionID).WithField("booking_id", bookingID)
	if sess.Quantity != nil {
		entry = entry.WithField("snapshot_quantity", *sess.Quantity)
	}
	if sess.BookingQuantity != nil {
		entry = entry.WithField("booking_quantity", *sess.BookingQuantity)
	}

	paidAt := s.now()
	res, err := s.Settlement.Settle(ctx, models.Settlement{
		BookingID:       bookingID,
		TicketID:        ticketID,
		BookingQuantity: sess.BookingQuantity,
		TransactionID:   sess.TransactionID,
		PaidAt:          paidAt,
	})
	if err != nil {
		s.observe(err)
		entry.WithError(err).Warn("settlement failed")
		return models.SettlementResult{}, err
	}

	if res.AlreadyPaid {
		s.Metrics.ObserveSettlement(metrics.SettlementAlreadyPaid)
		entry.Info("booking already paid")
		return res, nil
	}
	s.Metrics.ObserveSettlement(metrics.SettlementPaid)
	entry.WithField("transaction_id", res.TransactionID).Info("booking paid")

	if s.Publisher != nil {
		evt := notify.BookingPaid{
			BookingID:       bookingID,
			TicketID:        ticketID,
			UserEmail:       sess.CustomerEmail,
			BookingQuantity: sess.BookingQuantity,
			TransactionID:   res.TransactionID,
			PaidAt:          paidAt,
		}
		if err := s.Publisher.PublishBookingPaid(ctx, evt); err != nil {
			entry.WithError(err).Warn("booking.paid publish failed")
		}
	}
	return res, nil
}

func (s PaymentService) observe(err error) {
	switch {
	case domain.IsNotFound(err):
		s.Metrics.ObserveSettlement(metrics.SettlementNotFound)
	case domain.IsConflict(err):
		s.Metrics.ObserveSettlement(metrics.SettlementConflict)
	default:
		s.Metrics.ObserveSettlement(metrics.SettlementError)
	}
}
