package services

import (
	"context"

	"ticketzone/internal/domain"
	"ticketzone/internal/utils"
)

// RoleResolver maps a verified email to its stored role. Emails without a user
// record resolve to RoleNone.
type RoleResolver struct {
	Users     UserStore
	Cache     RoleCache
	RequestID string
}

func (r RoleResolver) Resolve(ctx context.Context, email string) (domain.Role, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return domain.RoleNone, nil
	}

	if r.Cache != nil {
		role, ok, err := r.Cache.Get(ctx, email)
		if err != nil {
			utils.LogEvent(r.RequestID, "roles", "cache_get", "cache unavailable: "+err.Error())
		} else if ok {
			return role, nil
		}
	}

	role := domain.RoleNone
	u, err := r.Users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		role = u.Role
	case domain.IsNotFound(err):
	default:
		return domain.RoleNone, err
	}

	if r.Cache != nil {
		if err := r.Cache.Set(ctx, email, role); err != nil {
			utils.LogEvent(r.RequestID, "roles", "cache_set", "cache unavailable: "+err.Error())
		}
	}
	return role, nil
}
