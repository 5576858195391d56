package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intdb "ticketzone/internal/db"

	"github.com/sirupsen/logrus"
)

var schema = []struct {
	table string
	ddl   string
}{
	{"users", `CREATE TABLE IF NOT EXISTS users (
		id CHAR(24) NOT NULL PRIMARY KEY,
		email VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL DEFAULT '',
		photo_url VARCHAR(1024) NOT NULL DEFAULT '',
		role VARCHAR(16) NOT NULL DEFAULT 'user',
		created_at DATETIME NOT NULL,
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"tickets", `CREATE TABLE IF NOT EXISTS tickets (
		id CHAR(24) NOT NULL PRIMARY KEY,
		vendor_email VARCHAR(255) NOT NULL,
		vendor_name VARCHAR(255) NOT NULL DEFAULT '',
		title VARCHAR(255) NOT NULL,
		transport_type VARCHAR(64) NOT NULL,
		origin VARCHAR(255) NOT NULL,
		destination VARCHAR(255) NOT NULL,
		price DECIMAL(12,2) NOT NULL,
		quantity INT UNSIGNED NOT NULL,
		is_advertised BOOLEAN NOT NULL DEFAULT FALSE,
		status VARCHAR(16) NOT NULL DEFAULT 'pending',
		departure_at DATETIME NULL,
		image_url VARCHAR(1024) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		KEY idx_tickets_vendor (vendor_email),
		KEY idx_tickets_status (status),
		KEY idx_tickets_created (created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"bookings", `CREATE TABLE IF NOT EXISTS bookings (
		id CHAR(24) NOT NULL PRIMARY KEY,
		ticket_id CHAR(24) NOT NULL,
		ticket_title VARCHAR(255) NOT NULL DEFAULT '',
		user_email VARCHAR(255) NOT NULL,
		vendor_email VARCHAR(255) NOT NULL,
		quantity INT UNSIGNED NOT NULL,
		unit_price DECIMAL(12,2) NOT NULL,
		total_price DECIMAL(12,2) NOT NULL,
		payment_status VARCHAR(16) NOT NULL DEFAULT 'unpaid',
		status VARCHAR(16) NOT NULL DEFAULT 'pending',
		transaction_id VARCHAR(255) NULL,
		paid_at DATETIME NULL,
		created_at DATETIME NOT NULL,
		KEY idx_bookings_ticket (ticket_id),
		KEY idx_bookings_user (user_email),
		KEY idx_bookings_vendor_payment (vendor_email, payment_status)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
}

// EnsureSchema creates missing tables. Existing tables are left untouched.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, s := range schema {
		if intdb.HasTable(ctx, db, s.table) {
			continue
		}
		if _, err := db.ExecContext(ctx, s.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", s.table, err)
		}
		logrus.WithField("table", s.table).Info("table created")
	}
	return nil
}
