package repositories

import (
	"context"
	"database/sql"
	"errors"

	intdb "ticketzone/internal/db"
	"ticketzone/internal/domain"
	"ticketzone/internal/domain/models"
)

// SettlementRepository moves a booking to paid and takes its quantity out of
// ticket stock in a single transaction.
type SettlementRepository struct {
	DB *sql.DB
}

func NewSettlementRepository(db *sql.DB) SettlementRepository {
	return SettlementRepository{DB: db}
}

// Settle is idempotent: a booking that is already paid is reported with
// AlreadyPaid and nothing is written. Stock is decremented in place and only
// while enough remains; otherwise the booking update is rolled back too.
func (r SettlementRepository) Settle(ctx context.Context, s models.Settlement) (models.SettlementResult, error) {
	var out models.SettlementResult

	err := intdb.WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE bookings
			SET payment_status = ?, transaction_id = ?, paid_at = ?
			WHERE id = ? AND payment_status = ?`,
			string(models.PaymentPaid), s.TransactionID, s.PaidAt, s.BookingID, string(models.PaymentUnpaid),
		)
		if err != nil {
			return err
		}
		modified, err := res.RowsAffected()
		if err != nil {
			return err
		}

		if modified == 0 {
			var (
				status string
				txID   sql.NullString
			)
			err := tx.QueryRowContext(ctx, `SELECT payment_status, transaction_id FROM bookings WHERE id = ?`, s.BookingID).Scan(&status, &txID)
			if errors.Is(err, sql.ErrNoRows) {
				return domain.NotFoundError{Resource: "booking", Err: err}
			}
			if err != nil {
				return err
			}
			out = models.SettlementResult{
				MatchedCount:  1,
				AlreadyPaid:   models.PaymentStatus(status) == models.PaymentPaid,
				TransactionID: txID.String,
			}
			return nil
		}

		if s.BookingQuantity != nil && *s.BookingQuantity > 0 && s.TicketID != "" {
			qty := *s.BookingQuantity
			res, err := tx.ExecContext(ctx, `UPDATE tickets SET quantity = quantity - ? WHERE id = ? AND quantity >= ?`, qty, s.TicketID, qty)
			if err != nil {
				return err
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return domain.ConflictError{Resource: "ticket", Msg: "insufficient quantity"}
			}
		}

		out = models.SettlementResult{MatchedCount: 1, ModifiedCount: 1, TransactionID: s.TransactionID}
		return nil
	})
	if err != nil {
		return models.SettlementResult{}, domain.Store(err)
	}
	return out, nil
}
