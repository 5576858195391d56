package access

import (
	"testing"

	"ticketzone/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestAllowedRoleTable(t *testing.T) {
	cases := []struct {
		op    Operation
		role  domain.Role
		owner bool
		want  bool
	}{
		{CreateTicket, domain.RoleVendor, false, true},
		{CreateTicket, domain.RoleUser, false, false},
		{CreateTicket, domain.RoleAdmin, false, false},
		{ListTickets, domain.RoleNone, false, true},
		{ReadTicket, domain.RoleNone, false, true},
		{ListTicketsByStatus, domain.RoleVendor, false, true},
		{ListTicketsByVendor, domain.RoleUser, false, false},
		{AdvertisedCount, domain.RoleAdmin, false, true},
		{AdvertisedCount, domain.RoleVendor, false, false},
		{UpdateTicket, domain.RoleAdmin, false, true},
		{UpdateTicket, domain.RoleVendor, true, false},
		{UpdateVendorTickets, domain.RoleVendor, true, true},
		{UpdateVendorTickets, domain.RoleVendor, false, false},
		{UpdateVendorTickets, domain.RoleAdmin, true, false},
		{DeleteTicket, domain.RoleVendor, false, true},
		{DeleteTicket, domain.RoleAdmin, false, false},
		{DeleteVendorTickets, domain.RoleAdmin, false, true},
		{DeleteVendorTickets, domain.RoleVendor, true, false},
		{ListBookings, domain.RoleVendor, false, true},
		{ListBookings, domain.RoleUser, false, false},
		{BookingRevenue, domain.RoleAdmin, false, false},
		{ReadBooking, domain.RoleUser, false, true},
		{CreateBooking, domain.RoleNone, false, true},
		{UpdateBookingStatus, domain.RoleVendor, false, true},
		{UpdateBookingStatus, domain.RoleUser, false, false},
		{ListBookingsByEmail, domain.RoleUser, true, true},
		{ListBookingsByEmail, domain.RoleUser, false, false},
		{ListBookingsByEmail, domain.RoleAdmin, false, true},
		{DownloadETicket, domain.RoleVendor, false, false},
		{ListUsers, domain.RoleAdmin, false, true},
		{ListUsers, domain.RoleVendor, false, false},
		{ReadUser, domain.RoleUser, false, true},
		{UpdateUserRole, domain.RoleAdmin, false, true},
		{UpdateUserRole, domain.RoleUser, false, false},
		{CreateUser, domain.RoleNone, false, true},
		{ConfirmPayment, domain.RoleNone, false, true},
		{Operation("unknown"), domain.RoleAdmin, true, false},
	}
	for _, tc := range cases {
		got := Allowed(tc.op, tc.role, tc.owner)
		assert.Equal(t, tc.want, got, "op=%s role=%q owner=%v", tc.op, tc.role, tc.owner)
	}
}

func TestCheckTaxonomy(t *testing.T) {
	err := Check(CreateTicket, nil, false)
	assert.True(t, domain.IsUnauthenticated(err))

	err = Check(CreateTicket, &domain.Principal{Email: "u@x.com", Role: domain.RoleUser}, false)
	assert.True(t, domain.IsForbidden(err))
	assert.Equal(t, "forbidden access", err.Error())

	assert.NoError(t, Check(CreateTicket, &domain.Principal{Email: "v@x.com", Role: domain.RoleVendor}, false))
	assert.NoError(t, Check(ListTickets, nil, false))
}

func TestMissingUserRecordIsLowestPrivilege(t *testing.T) {
	p := &domain.Principal{Email: "ghost@x.com", Role: domain.RoleNone}
	assert.True(t, domain.IsForbidden(Check(ListUsers, p, false)))
	assert.NoError(t, Check(ReadUser, p, false))
}

func TestNeedsOwnership(t *testing.T) {
	assert.True(t, NeedsOwnership(UpdateVendorTickets))
	assert.True(t, NeedsOwnership(ListBookingsByEmail))
	assert.False(t, NeedsOwnership(DeleteTicket))
}
