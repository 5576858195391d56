package repositories

import (
	"strings"

	"ticketzone/internal/domain/models"
	"ticketzone/internal/utils"
)

const (
	DefaultPageSize = 7
	MaxPageSize     = 100
)

// TicketFilter is the conjunctive filter, sort and page of a ticket listing.
// Zero-valued fields do not filter.
type TicketFilter struct {
	VendorEmail   string
	TransportType string
	Status        models.TicketStatus
	IsAdvertised  *bool
	From          string
	To            string
	// PriceSort is "asc" or "desc"; empty keeps newest-first ordering.
	PriceSort string
	Page      int
	Limit     int
}

// Normalize applies paging defaults.
func (f TicketFilter) Normalize() TicketFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	f.PriceSort = strings.ToLower(strings.TrimSpace(f.PriceSort))
	return f
}

// Offset is the number of rows skipped before the page.
func (f TicketFilter) Offset() int {
	f = f.Normalize()
	return (f.Page - 1) * f.Limit
}

// Where renders the WHERE clause (with leading space) and its arguments.
func (f TicketFilter) Where() (string, []any) {
	var (
		conds []string
		args  []any
	)
	if v := strings.TrimSpace(f.VendorEmail); v != "" {
		conds = append(conds, "vendor_email = ?")
		args = append(args, v)
	}
	if v := strings.TrimSpace(f.TransportType); v != "" {
		conds = append(conds, "transport_type = ?")
		args = append(args, v)
	}
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(f.Status))
	}
	if f.IsAdvertised != nil {
		conds = append(conds, "is_advertised = ?")
		args = append(args, *f.IsAdvertised)
	}
	if strings.TrimSpace(f.From) != "" {
		conds = append(conds, "LOWER(origin) LIKE ?")
		args = append(args, utils.ContainsPattern(f.From))
	}
	if strings.TrimSpace(f.To) != "" {
		conds = append(conds, "LOWER(destination) LIKE ?")
		args = append(args, utils.ContainsPattern(f.To))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// OrderBy returns the ORDER BY expression. An explicit price sort replaces
// the default entirely.
func (f TicketFilter) OrderBy() string {
	switch strings.ToLower(strings.TrimSpace(f.PriceSort)) {
	case "asc":
		return "price ASC"
	case "desc":
		return "price DESC"
	default:
		return "created_at DESC"
	}
}
