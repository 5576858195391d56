package repositories

import (
	"context"
	"database/sql"
	"errors"

	intdb "ticketzone/internal/db"
	"ticketzone/internal/domain"
	"ticketzone/internal/domain/models"
)

const userColumns = "id, email, name, photo_url, role, created_at"

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return UserRepository{DB: db}
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		u    models.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PhotoURL, &role, &u.CreatedAt); err != nil {
		return models.User{}, err
	}
	u.Role = domain.Role(role)
	return u, nil
}

func (r UserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return r.get(ctx, `SELECT `+userColumns+` FROM users WHERE email = ? LIMIT 1`, email)
}

func (r UserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	return r.get(ctx, `SELECT `+userColumns+` FROM users WHERE id = ? LIMIT 1`, id)
}

func (r UserRepository) get(ctx context.Context, query string, arg string) (models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
	}
	return u, domain.Store(err)
}

func (r UserRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, domain.Store(err)
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, domain.Store(err)
		}
		out = append(out, u)
	}
	return out, domain.Store(rows.Err())
}

// Insert stores a new user. A duplicate email surfaces as ConflictError.
func (r UserRepository) Insert(ctx context.Context, u models.User) error {
	_, err := r.DB.ExecContext(ctx, `INSERT INTO users (`+userColumns+`) VALUES (`+intdb.Placeholders(6)+`)`,
		u.ID, u.Email, u.Name, u.PhotoURL, string(u.Role), u.CreatedAt,
	)
	if intdb.IsDuplicateKey(err) {
		return domain.ConflictError{Resource: "user", Msg: "email already exists", Err: err}
	}
	return domain.Store(err)
}

func (r UserRepository) UpdateRole(ctx context.Context, id string, role domain.Role) (models.UpdateResult, error) {
	res, err := r.DB.ExecContext(ctx, `UPDATE users SET role = ? WHERE id = ?`, string(role), id)
	if err != nil {
		return models.UpdateResult{}, domain.Store(err)
	}
	modified, _ := res.RowsAffected()
	// Callers load the user first, so the row is known to exist.
	return models.UpdateResult{MatchedCount: 1, ModifiedCount: modified}, nil
}
