package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	intdb "ticketzone/internal/db"
	"ticketzone/internal/domain"
	"ticketzone/internal/domain/models"
)

const ticketColumns = "id, vendor_email, vendor_name, title, transport_type, origin, destination, price, quantity, is_advertised, status, departure_at, image_url, created_at"

type TicketRepository struct {
	DB *sql.DB
}

func NewTicketRepository(db *sql.DB) TicketRepository {
	return TicketRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (models.Ticket, error) {
	var (
		t         models.Ticket
		status    string
		departure sql.NullTime
	)
	err := row.Scan(
		&t.ID,
		&t.VendorEmail,
		&t.VendorName,
		&t.Title,
		&t.TransportType,
		&t.From,
		&t.To,
		&t.Price,
		&t.Quantity,
		&t.IsAdvertised,
		&status,
		&departure,
		&t.ImageURL,
		&t.CreatedAt,
	)
	if err != nil {
		return models.Ticket{}, err
	}
	t.Status = models.TicketStatus(status)
	if departure.Valid {
		d := departure.Time
		t.DepartureAt = &d
	}
	return t, nil
}

func (r TicketRepository) Insert(ctx context.Context, t models.Ticket) error {
	_, err := r.DB.ExecContext(ctx, `INSERT INTO tickets (`+ticketColumns+`) VALUES (`+intdb.Placeholders(14)+`)`,
		t.ID,
		t.VendorEmail,
		t.VendorName,
		t.Title,
		t.TransportType,
		t.From,
		t.To,
		t.Price,
		t.Quantity,
		t.IsAdvertised,
		string(t.Status),
		t.DepartureAt,
		t.ImageURL,
		t.CreatedAt,
	)
	return domain.Store(err)
}

func (r TicketRepository) GetByID(ctx context.Context, id string) (models.Ticket, error) {
	t, err := scanTicket(r.DB.QueryRowContext(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Ticket{}, domain.NotFoundError{Resource: "ticket", Err: err}
	}
	return t, domain.Store(err)
}

// List returns one page of tickets matching f and the total match count.
func (r TicketRepository) List(ctx context.Context, f TicketFilter) (models.TicketPage, error) {
	f = f.Normalize()
	where, args := f.Where()

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM tickets`+where, args...).Scan(&total); err != nil {
		return models.TicketPage{}, domain.Store(err)
	}

	pageArgs := append(append([]any{}, args...), f.Limit, f.Offset())
	rows, err := r.DB.QueryContext(ctx, `SELECT `+ticketColumns+` FROM tickets`+where+` ORDER BY `+f.OrderBy()+` LIMIT ? OFFSET ?`, pageArgs...)
	if err != nil {
		return models.TicketPage{}, domain.Store(err)
	}
	defer rows.Close()

	tickets := make([]models.Ticket, 0, f.Limit)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return models.TicketPage{}, domain.Store(err)
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return models.TicketPage{}, domain.Store(err)
	}

	return models.TicketPage{Total: total, Tickets: tickets, Page: f.Page, Limit: f.Limit}, nil
}

func (r TicketRepository) CountAdvertised(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM tickets WHERE is_advertised = TRUE`).Scan(&n)
	return n, domain.Store(err)
}

func ticketSets(u models.TicketUpdate) ([]string, []any) {
	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if u.VendorName != nil {
		add("vendor_name", strings.TrimSpace(*u.VendorName))
	}
	if u.Title != nil {
		add("title", strings.TrimSpace(*u.Title))
	}
	if u.TransportType != nil {
		add("transport_type", strings.TrimSpace(*u.TransportType))
	}
	if u.From != nil {
		add("origin", strings.TrimSpace(*u.From))
	}
	if u.To != nil {
		add("destination", strings.TrimSpace(*u.To))
	}
	if u.Price != nil {
		add("price", *u.Price)
	}
	if u.Quantity != nil {
		add("quantity", *u.Quantity)
	}
	if u.IsAdvertised != nil {
		add("is_advertised", *u.IsAdvertised)
	}
	if u.Status != nil {
		add("status", string(*u.Status))
	}
	if u.DepartureAt != nil {
		add("departure_at", *u.DepartureAt)
	}
	if u.ImageURL != nil {
		add("image_url", strings.TrimSpace(*u.ImageURL))
	}
	return sets, args
}

// Update applies u to the ticket with id.
func (r TicketRepository) Update(ctx context.Context, id string, u models.TicketUpdate) (models.UpdateResult, error) {
	return r.update(ctx, u, "id = ?", id)
}

// UpdateByVendor applies u to the vendor's tickets, or only to ticketID when set.
// The vendor predicate is always part of the WHERE clause.
func (r TicketRepository) UpdateByVendor(ctx context.Context, vendorEmail, ticketID string, u models.TicketUpdate) (models.UpdateResult, error) {
	if ticketID != "" {
		return r.update(ctx, u, "vendor_email = ? AND id = ?", vendorEmail, ticketID)
	}
	return r.update(ctx, u, "vendor_email = ?", vendorEmail)
}

func (r TicketRepository) update(ctx context.Context, u models.TicketUpdate, where string, whereArgs ...any) (models.UpdateResult, error) {
	sets, args := ticketSets(u)
	if len(sets) == 0 {
		return models.UpdateResult{}, domain.ValidationError{Field: "body", Msg: "no updatable field"}
	}
	args = append(args, whereArgs...)
	res, err := r.DB.ExecContext(ctx, `UPDATE tickets SET `+strings.Join(sets, ", ")+` WHERE `+where, args...)
	if err != nil {
		return models.UpdateResult{}, domain.Store(err)
	}
	modified, _ := res.RowsAffected()
	if modified > 0 {
		return models.UpdateResult{MatchedCount: modified, ModifiedCount: modified}, nil
	}
	var matched int64
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM tickets WHERE `+where, whereArgs...).Scan(&matched); err != nil {
		return models.UpdateResult{}, domain.Store(err)
	}
	return models.UpdateResult{MatchedCount: matched}, nil
}

// Delete removes the vendor's ticket and every booking that references it in
// one transaction. A ticket of another vendor is reported as not found.
func (r TicketRepository) Delete(ctx context.Context, id, vendorEmail string) (models.DeleteResult, error) {
	var out models.DeleteResult
	err := intdb.WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM tickets WHERE id = ? AND vendor_email = ?`, id, vendorEmail)
		if err != nil {
			return err
		}
		out.DeletedCount, _ = res.RowsAffected()
		if out.DeletedCount == 0 {
			return domain.NotFoundError{Resource: "ticket"}
		}

		res, err = tx.ExecContext(ctx, `DELETE FROM bookings WHERE ticket_id = ?`, id)
		if err != nil {
			return err
		}
		out.DeletedBookings, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return models.DeleteResult{}, domain.Store(err)
	}
	return out, nil
}

// DeleteByVendor removes all of a vendor's tickets and their bookings in one transaction.
func (r TicketRepository) DeleteByVendor(ctx context.Context, vendorEmail string) (models.DeleteResult, error) {
	var out models.DeleteResult
	err := intdb.WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE ticket_id IN (SELECT id FROM tickets WHERE vendor_email = ?)`, vendorEmail)
		if err != nil {
			return err
		}
		out.DeletedBookings, _ = res.RowsAffected()

		res, err = tx.ExecContext(ctx, `DELETE FROM tickets WHERE vendor_email = ?`, vendorEmail)
		if err != nil {
			return err
		}
		out.DeletedCount, _ = res.RowsAffected()
		return nil
	})
	return out, domain.Store(err)
}
