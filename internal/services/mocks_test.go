package services

import (
	"context"

	"ticketzone/internal/domain"
	"ticketzone/internal/domain/models"
	"ticketzone/internal/notify"
	"ticketzone/internal/repositories"

	"github.com/stretchr/testify/mock"
)

type mockTickets struct{ mock.Mock }

func (m *mockTickets) Insert(ctx context.Context, t models.Ticket) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockTickets) GetByID(ctx context.Context, id string) (models.Ticket, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Ticket), args.Error(1)
}

func (m *mockTickets) List(ctx context.Context, f repositories.TicketFilter) (models.TicketPage, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(models.TicketPage), args.Error(1)
}

func (m *mockTickets) CountAdvertised(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockTickets) Update(ctx context.Context, id string, u models.TicketUpdate) (models.UpdateResult, error) {
	args := m.Called(ctx, id, u)
	return args.Get(0).(models.UpdateResult), args.Error(1)
}

func (m *mockTickets) UpdateByVendor(ctx context.Context, vendorEmail, ticketID string, u models.TicketUpdate) (models.UpdateResult, error) {
	args := m.Called(ctx, vendorEmail, ticketID, u)
	return args.Get(0).(models.UpdateResult), args.Error(1)
}

func (m *mockTickets) Delete(ctx context.Context, id, vendorEmail string) (models.DeleteResult, error) {
	args := m.Called(ctx, id, vendorEmail)
	return args.Get(0).(models.DeleteResult), args.Error(1)
}

func (m *mockTickets) DeleteByVendor(ctx context.Context, vendorEmail string) (models.DeleteResult, error) {
	args := m.Called(ctx, vendorEmail)
	return args.Get(0).(models.DeleteResult), args.Error(1)
}

type mockBookings struct{ mock.Mock }

func (m *mockBookings) Insert(ctx context.Context, b models.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockBookings) GetByID(ctx context.Context, id string) (models.Booking, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Booking), args.Error(1)
}

func (m *mockBookings) ListByVendor(ctx context.Context, vendorEmail string) ([]models.Booking, error) {
	args := m.Called(ctx, vendorEmail)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *mockBookings) ListByUser(ctx context.Context, userEmail string) ([]models.Booking, error) {
	args := m.Called(ctx, userEmail)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *mockBookings) Revenue(ctx context.Context, vendorEmail string, status models.PaymentStatus) (models.Revenue, error) {
	args := m.Called(ctx, vendorEmail, status)
	return args.Get(0).(models.Revenue), args.Error(1)
}

func (m *mockBookings) UpdateStatus(ctx context.Context, id, vendorEmail string, status models.BookingStatus) (models.UpdateResult, error) {
	args := m.Called(ctx, id, vendorEmail, status)
	return args.Get(0).(models.UpdateResult), args.Error(1)
}

type mockUsers struct{ mock.Mock }

func (m *mockUsers) GetByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *mockUsers) GetByID(ctx context.Context, id string) (models.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *mockUsers) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *mockUsers) Insert(ctx context.Context, u models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUsers) UpdateRole(ctx context.Context, id string, role domain.Role) (models.UpdateResult, error) {
	args := m.Called(ctx, id, role)
	return args.Get(0).(models.UpdateResult), args.Error(1)
}

type mockSettlement struct{ mock.Mock }

func (m *mockSettlement) Settle(ctx context.Context, s models.Settlement) (models.SettlementResult, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(models.SettlementResult), args.Error(1)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) Get(ctx context.Context, email string) (domain.Role, bool, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.Role), args.Bool(1), args.Error(2)
}

func (m *mockCache) Set(ctx context.Context, email string, role domain.Role) error {
	return m.Called(ctx, email, role).Error(0)
}

func (m *mockCache) Invalidate(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

type mockProvider struct{ mock.Mock }

func (m *mockProvider) CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (models.CheckoutSession, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.CheckoutSession), args.Error(1)
}

func (m *mockProvider) GetSession(ctx context.Context, sessionID string) (models.PaymentSession, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(models.PaymentSession), args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishBookingPaid(ctx context.Context, evt notify.BookingPaid) error {
	return m.Called(ctx, evt).Error(0)
}
