package middleware

import (
	"net/http"

	"ticketzone/internal/access"
	"ticketzone/internal/auth"
	"ticketzone/internal/domain"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

const (
	msgUnauthorized = "unauthorized access"
	msgForbidden    = "forbidden access"
)

// RoleLookup resolves the stored role of a verified email.
type RoleLookup func(c *gin.Context, email string) (domain.Role, error)

// OwnerFunc reports whether the principal owns the resource addressed by the request.
type OwnerFunc func(c *gin.Context, p domain.Principal) bool

// Authenticate verifies the bearer token and stores the resolved Principal.
// A missing header is 403, a token that fails verification is 401.
func Authenticate(v auth.Verifier, roles RoleLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := auth.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortJSON(c, http.StatusForbidden, msgUnauthorized)
			return
		}
		email, err := v.Verify(c.Request.Context(), token)
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, msgForbidden)
			return
		}
		role, err := roles(c, email)
		if err != nil {
			_ = c.Error(err)
			abortJSON(c, http.StatusBadGateway, "role lookup failed")
			return
		}
		c.Set(principalKey, &domain.Principal{Email: email, Role: role})
		c.Next()
	}
}

// Authorize applies the access table for op. owner may be nil for
// operations that do not consult ownership.
func Authorize(op access.Operation, owner OwnerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := PrincipalFrom(c)
		isOwner := false
		if p != nil && owner != nil {
			isOwner = owner(c, *p)
		}
		if err := access.Check(op, p, isOwner); err != nil {
			if domain.IsUnauthenticated(err) {
				abortJSON(c, http.StatusForbidden, msgUnauthorized)
				return
			}
			abortJSON(c, http.StatusForbidden, msgForbidden)
			return
		}
		c.Next()
	}
}

// PathOwner matches a path parameter holding an email against the principal.
func PathOwner(param string) OwnerFunc {
	return func(c *gin.Context, p domain.Principal) bool {
		return domain.NormalizeEmail(c.Param(param)) == p.Email
	}
}

// PrincipalFrom returns the authenticated caller, or nil.
func PrincipalFrom(c *gin.Context) *domain.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(*domain.Principal); ok {
			return p
		}
	}
	return nil
}

func abortJSON(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      true,
		"message":    message,
		"request_id": GetRequestID(c),
	})
}
