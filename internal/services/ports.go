package services

import (
	"context"

	"ticketzone/internal/domain"
	"ticketzone/internal/domain/models"
	"ticketzone/internal/repositories"
)

// Store views consumed by the services. The repositories package satisfies them;
// tests swap in testify mocks.

type TicketStore interface {
	Insert(ctx context.Context, t models.Ticket) error
	GetByID(ctx context.Context, id string) (models.Ticket, error)
	List(ctx context.Context, f repositories.TicketFilter) (models.TicketPage, error)
	CountAdvertised(ctx context.Context) (int, error)
	Update(ctx context.Context, id string, u models.TicketUpdate) (models.UpdateResult, error)
	UpdateByVendor(ctx context.Context, vendorEmail, ticketID string, u models.TicketUpdate) (models.UpdateResult, error)
	Delete(ctx context.Context, id, vendorEmail string) (models.DeleteResult, error)
	DeleteByVendor(ctx context.Context, vendorEmail string) (models.DeleteResult, error)
}

type BookingStore interface {
	Insert(ctx context.Context, b models.Booking) error
	GetByID(ctx context.Context, id string) (models.Booking, error)
	ListByVendor(ctx context.Context, vendorEmail string) ([]models.Booking, error)
	ListByUser(ctx context.Context, userEmail string) ([]models.Booking, error)
	Revenue(ctx context.Context, vendorEmail string, status models.PaymentStatus) (models.Revenue, error)
	UpdateStatus(ctx context.Context, id, vendorEmail string, status models.BookingStatus) (models.UpdateResult, error)
}

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Insert(ctx context.Context, u models.User) error
	UpdateRole(ctx context.Context, id string, role domain.Role) (models.UpdateResult, error)
}

type SettlementStore interface {
	Settle(ctx context.Context, s models.Settlement) (models.SettlementResult, error)
}

type RoleCache interface {
	Get(ctx context.Context, email string) (domain.Role, bool, error)
	Set(ctx context.Context, email string, role domain.Role) error
	Invalidate(ctx context.Context, email string) error
}

var (
	_ TicketStore     = repositories.TicketRepository{}
	_ BookingStore    = repositories.BookingRepository{}
	_ UserStore       = repositories.UserRepository{}
	_ SettlementStore = repositories.SettlementRepository{}
)
