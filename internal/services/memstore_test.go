package services

import (
	"context"
	"sync"

	"ticketzone/internal/domain"
	"ticketzone/internal/domain/models"
	"ticketzone/internal/repositories"
)

// memState backs in-memory ticket, booking and settlement stores for
// end-to-end service scenarios.
type memState struct {
	mu       sync.Mutex
	tickets  map[string]models.Ticket
	bookings map[string]models.Booking
}

func newMemState() *memState {
	return &memState{tickets: map[string]models.Ticket{}, bookings: map[string]models.Booking{}}
}

type memTickets struct {
	TicketStore
	s *memState
}

func (m memTickets) Insert(_ context.Context, t models.Ticket) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.tickets[t.ID] = t
	return nil
}

func (m memTickets) GetByID(_ context.Context, id string) (models.Ticket, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	t, ok := m.s.tickets[id]
	if !ok {
		return models.Ticket{}, domain.NotFoundError{Resource: "ticket"}
	}
	return t, nil
}

func (m memTickets) List(_ context.Context, f repositories.TicketFilter) (models.TicketPage, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	f = f.Normalize()
	out := models.TicketPage{Tickets: []models.Ticket{}, Page: f.Page, Limit: f.Limit}
	for _, t := range m.s.tickets {
		out.Tickets = append(out.Tickets, t)
	}
	out.Total = len(out.Tickets)
	return out, nil
}

type memBookings struct {
	BookingStore
	s *memState
}

func (m memBookings) Insert(_ context.Context, b models.Booking) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.bookings[b.ID] = b
	return nil
}

func (m memBookings) GetByID(_ context.Context, id string) (models.Booking, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	b, ok := m.s.bookings[id]
	if !ok {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return b, nil
}

// memSettlement applies the same conditional updates as the SQL store.
type memSettlement struct {
	s *memState
}

func (m memSettlement) Settle(_ context.Context, in models.Settlement) (models.SettlementResult, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	b, ok := m.s.bookings[in.BookingID]
	if !ok {
		return models.SettlementResult{}, domain.NotFoundError{Resource: "booking"}
	}
	if b.PaymentStatus == models.PaymentPaid {
		return models.SettlementResult{MatchedCount: 1, AlreadyPaid: true, TransactionID: b.TransactionID}, nil
	}

	if in.BookingQuantity != nil && in.TicketID != "" {
		t, ok := m.s.tickets[in.TicketID]
		if !ok || t.Quantity < *in.BookingQuantity {
			return models.SettlementResult{}, domain.ConflictError{Resource: "ticket", Msg: "insufficient quantity"}
		}
		t.Quantity -= *in.BookingQuantity
		m.s.tickets[t.ID] = t
	}

	paidAt := in.PaidAt
	b.PaymentStatus = models.PaymentPaid
	b.TransactionID = in.TransactionID
	b.PaidAt = &paidAt
	m.s.bookings[b.ID] = b
	return models.SettlementResult{MatchedCount: 1, ModifiedCount: 1, TransactionID: in.TransactionID}, nil
}
