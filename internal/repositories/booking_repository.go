package repositories

import (
	"context"
	"database/sql"
	"errors"

	intdb "ticketzone/internal/db"
	"ticketzone/internal/domain"
	"ticketzone/internal/domain/models"
)

const bookingColumns = "id, ticket_id, ticket_title, user_email, vendor_email, quantity, unit_price, total_price, payment_status, status, transaction_id, paid_at, created_at"

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) BookingRepository {
	return BookingRepository{DB: db}
}

func scanBooking(row rowScanner) (models.Booking, error) {
	var (
		b             models.Booking
		paymentStatus string
		status        string
		transactionID sql.NullString
		paidAt        sql.NullTime
	)
	err := row.Scan(
		&b.ID,
		&b.TicketID,
		&b.TicketTitle,
		&b.UserEmail,
		&b.VendorEmail,
		&b.Quantity,
		&b.UnitPrice,
		&b.TotalPrice,
		&paymentStatus,
		&status,
		&transactionID,
		&paidAt,
		&b.CreatedAt,
	)
	if err != nil {
		return models.Booking{}, err
	}
	b.PaymentStatus = models.PaymentStatus(paymentStatus)
	b.Status = models.BookingStatus(status)
	b.TransactionID = transactionID.String
	if paidAt.Valid {
		t := paidAt.Time
		b.PaidAt = &t
	}
	return b, nil
}

func (r BookingRepository) Insert(ctx context.Context, b models.Booking) error {
	_, err := r.DB.ExecContext(ctx, `INSERT INTO bookings (`+bookingColumns+`) VALUES (`+intdb.Placeholders(13)+`)`,
		b.ID,
		b.TicketID,
		b.TicketTitle,
		b.UserEmail,
		b.VendorEmail,
		b.Quantity,
		b.UnitPrice,
		b.TotalPrice,
		string(b.PaymentStatus),
		string(b.Status),
		intdb.NullIfEmpty(b.TransactionID),
		b.PaidAt,
		b.CreatedAt,
	)
	return domain.Store(err)
}

func (r BookingRepository) GetByID(ctx context.Context, id string) (models.Booking, error) {
	b, err := scanBooking(r.DB.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
	}
	return b, domain.Store(err)
}

func (r BookingRepository) ListByVendor(ctx context.Context, vendorEmail string) ([]models.Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE vendor_email = ? ORDER BY created_at DESC`, vendorEmail)
}

func (r BookingRepository) ListByUser(ctx context.Context, userEmail string) ([]models.Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_email = ? ORDER BY created_at DESC`, userEmail)
}

func (r BookingRepository) list(ctx context.Context, query string, args ...any) ([]models.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.Store(err)
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, domain.Store(err)
		}
		out = append(out, b)
	}
	return out, domain.Store(rows.Err())
}

// Revenue sums the vendor's bookings in one payment status.
func (r BookingRepository) Revenue(ctx context.Context, vendorEmail string, status models.PaymentStatus) (models.Revenue, error) {
	out := models.Revenue{PaymentStatus: status}
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(quantity), 0), COALESCE(SUM(total_price), 0)
		FROM bookings
		WHERE vendor_email = ? AND payment_status = ?`,
		vendorEmail, string(status),
	).Scan(&out.Bookings, &out.Quantity, &out.Revenue)
	return out, domain.Store(err)
}

// UpdateStatus changes the status of a booking that belongs to vendorEmail.
func (r BookingRepository) UpdateStatus(ctx context.Context, id, vendorEmail string, status models.BookingStatus) (models.UpdateResult, error) {
	res, err := r.DB.ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ? AND vendor_email = ?`, string(status), id, vendorEmail)
	if err != nil {
		return models.UpdateResult{}, domain.Store(err)
	}
	modified, _ := res.RowsAffected()
	if modified > 0 {
		return models.UpdateResult{MatchedCount: modified, ModifiedCount: modified}, nil
	}
	var matched int64
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE id = ? AND vendor_email = ?`, id, vendorEmail).Scan(&matched); err != nil {
		return models.UpdateResult{}, domain.Store(err)
	}
	return models.UpdateResult{MatchedCount: matched}, nil
}
