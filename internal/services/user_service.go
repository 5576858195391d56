package services

import (
	"context"
	"fmt"
	"strings"

	"ticketzone/internal/domain"
	"ticketzone/internal/domain/models"
	"ticketzone/internal/utils"
)

const msgUserExists = "user already exists"

type UserService struct {
	Users     UserStore
	Cache     RoleCache
	RequestID string
}

type CreateUserInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

// Create inserts the user unless the email is already registered, in which
// case nothing changes.
func (s UserService) Create(ctx context.Context, in CreateUserInput) (models.CreateUserResult, error) {
	email := domain.NormalizeEmail(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return models.CreateUserResult{}, domain.ValidationError{Field: "email", Msg: "invalid email"}
	}

	_, err := s.Users.GetByEmail(ctx, email)
	if err == nil {
		return models.CreateUserResult{Inserted: false, Message: msgUserExists}, nil
	}
	if !domain.IsNotFound(err) {
		return models.CreateUserResult{}, err
	}

	u := models.User{
		ID:        domain.NewID(),
		Email:     email,
		Name:      utils.NormalizeSpace(in.Name),
		PhotoURL:  strings.TrimSpace(in.PhotoURL),
		Role:      domain.RoleUser,
		CreatedAt: utils.NowUTC(),
	}
	if err := s.Users.Insert(ctx, u); err != nil {
		if domain.IsConflict(err) {
			return models.CreateUserResult{Inserted: false, Message: msgUserExists}, nil
		}
		return models.CreateUserResult{}, err
	}

	utils.LogEvent(s.RequestID, "users", "create", "user_id="+u.ID)
	return models.CreateUserResult{Inserted: true, InsertedID: u.ID}, nil
}

func (s UserService) List(ctx context.Context) ([]models.User, error) {
	return s.Users.List(ctx)
}

func (s UserService) GetByEmail(ctx context.Context, email string) (models.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return models.User{}, domain.ValidationError{Field: "email", Msg: "required"}
	}
	return s.Users.GetByEmail(ctx, email)
}

// UpdateRole changes a user's role and drops the cached one.
func (s UserService) UpdateRole(ctx context.Context, rawID, rawRole string) (models.UpdateResult, error) {
	id, err := domain.ParseID("id", rawID)
	if err != nil {
		return models.UpdateResult{}, err
	}
	role, ok := domain.ParseRole(rawRole)
	if !ok {
		return models.UpdateResult{}, domain.ValidationError{Field: "role", Msg: "must be user, vendor or admin"}
	}

	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return models.UpdateResult{}, err
	}
	res, err := s.Users.UpdateRole(ctx, id, role)
	if err != nil {
		return models.UpdateResult{}, err
	}

	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx, u.Email); err != nil {
			utils.LogEvent(s.RequestID, "users", "update_role", "cache invalidate failed: "+err.Error())
		}
	}
	utils.LogEvent(s.RequestID, "users", "update_role", fmt.Sprintf("user_id=%s role=%s modified=%d", id, role, res.ModifiedCount))
	return res, nil
}
