package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"ticketzone/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier turns a bearer credential into a verified principal email.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// Claims carries the principal email issued by the identity service.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTVerifier validates HS256 tokens signed with a shared secret.
type JWTVerifier struct {
	Secret []byte
	TTL    time.Duration
	// Now is used for issuing; tests pin it.
	Now func() time.Time
}

func NewJWTVerifier(secret string, ttl time.Duration) JWTVerifier {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return JWTVerifier{Secret: []byte(secret), TTL: ttl, Now: time.Now}
}

func (v JWTVerifier) Verify(_ context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", domain.UnauthenticatedError{Msg: "unauthorized access"}
	}
	if len(v.Secret) == 0 {
		return "", domain.InternalError{Msg: "jwt secret not configured"}
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return v.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		if err == nil {
			err = errors.New("token invalid")
		}
		return "", domain.UnauthenticatedError{Msg: "forbidden access", Err: err}
	}

	email := domain.NormalizeEmail(claims.Email)
	if email == "" {
		return "", domain.UnauthenticatedError{Msg: "forbidden access", Err: errors.New("token has no email")}
	}
	return email, nil
}

// Issue signs a token for email. The identity service shares the secret.
func (v JWTVerifier) Issue(email string) (string, error) {
	now := time.Now
	if v.Now != nil {
		now = v.Now
	}
	issued := now()
	claims := &Claims{
		Email: domain.NormalizeEmail(email),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(v.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.Secret)
}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header.
func BearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", true
	}
	return strings.TrimSpace(parts[1]), true
}
