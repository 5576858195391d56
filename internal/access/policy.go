// Package access decides whether a caller may run an operation.
//
// Decisions are pure: they depend only on the operation, the caller's stored
// role and whether the caller owns the addressed resource. Handlers never
// compare roles themselves; the Authorize middleware consults this table.
package access

import "ticketzone/internal/domain"

// Operation names one guarded action of the API.
type Operation string

const (
	CreateTicket         Operation = "ticket.create"
	ListTickets          Operation = "ticket.list"
	ReadTicket           Operation = "ticket.read"
	ListTicketsByStatus  Operation = "ticket.list_by_status"
	ListTicketsByVendor  Operation = "ticket.list_by_vendor"
	AdvertisedCount      Operation = "ticket.advertised_count"
	UpdateTicket         Operation = "ticket.update"
	UpdateVendorTickets  Operation = "ticket.update_by_vendor"
	DeleteTicket         Operation = "ticket.delete"
	DeleteVendorTickets  Operation = "ticket.delete_by_vendor"
	ListBookings         Operation = "booking.list"
	ReadBooking          Operation = "booking.read"
	BookingRevenue       Operation = "booking.revenue"
	ListBookingsByEmail  Operation = "booking.list_by_email"
	CreateBooking        Operation = "booking.create"
	UpdateBookingStatus  Operation = "booking.update_status"
	DownloadETicket      Operation = "booking.eticket"
	ListUsers            Operation = "user.list"
	ReadUser             Operation = "user.read"
	UpdateUserRole       Operation = "user.update_role"
	CreateUser           Operation = "user.create"
	CreateCheckout       Operation = "payment.checkout"
	ConfirmPayment       Operation = "payment.success"
)

type rule struct {
	public bool
	// roles empty means any authenticated caller.
	roles []domain.Role
	owner bool
	// adminOverridesOwner lets an admin pass an ownership rule.
	adminOverridesOwner bool
}

var rules = map[Operation]rule{
	CreateTicket:        {roles: []domain.Role{domain.RoleVendor}},
	ListTickets:         {public: true},
	ReadTicket:          {},
	ListTicketsByStatus: {roles: []domain.Role{domain.RoleVendor}},
	ListTicketsByVendor: {roles: []domain.Role{domain.RoleVendor}},
	AdvertisedCount:     {roles: []domain.Role{domain.RoleAdmin}},
	UpdateTicket:        {roles: []domain.Role{domain.RoleAdmin}},
	UpdateVendorTickets: {roles: []domain.Role{domain.RoleVendor}, owner: true},
	// the store deletes only the caller's ticket
	DeleteTicket:        {roles: []domain.Role{domain.RoleVendor}},
	DeleteVendorTickets: {roles: []domain.Role{domain.RoleAdmin}},
	ListBookings:        {roles: []domain.Role{domain.RoleVendor}},
	ReadBooking:         {},
	BookingRevenue:      {roles: []domain.Role{domain.RoleVendor}},
	ListBookingsByEmail: {owner: true, adminOverridesOwner: true},
	CreateBooking:       {},
	UpdateBookingStatus: {roles: []domain.Role{domain.RoleVendor}},
	DownloadETicket:     {owner: true, adminOverridesOwner: true},
	ListUsers:           {roles: []domain.Role{domain.RoleAdmin}},
	ReadUser:            {},
	UpdateUserRole:      {roles: []domain.Role{domain.RoleAdmin}},
	CreateUser:          {public: true},
	CreateCheckout:      {public: true},
	ConfirmPayment:      {public: true},
}

// Public reports whether op needs no credential at all.
func Public(op Operation) bool {
	r, ok := rules[op]
	return ok && r.public
}

// Allowed reports whether an authenticated caller with role may run op.
// Unknown operations are denied.
func Allowed(op Operation, role domain.Role, isOwner bool) bool {
	r, ok := rules[op]
	if !ok {
		return false
	}
	if r.public {
		return true
	}
	if len(r.roles) > 0 && !hasRole(r.roles, role) {
		return false
	}
	if r.owner && !isOwner {
		return r.adminOverridesOwner && role == domain.RoleAdmin
	}
	return true
}

// Check is Allowed expressed in the error taxonomy. A nil principal means the
// request carried no verified credential.
func Check(op Operation, p *domain.Principal, isOwner bool) error {
	if Public(op) {
		return nil
	}
	if p == nil {
		return domain.UnauthenticatedError{Msg: "unauthorized access"}
	}
	if !Allowed(op, p.Role, isOwner) {
		return domain.ForbiddenError{Operation: string(op), Msg: "forbidden access"}
	}
	return nil
}

// NeedsOwnership reports whether op consults resource ownership.
func NeedsOwnership(op Operation) bool {
	return rules[op].owner
}

func hasRole(allowed []domain.Role, role domain.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
