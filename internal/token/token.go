// Package token issues and verifies the signed identity tokens carried in the
// auth cookie.
package token

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie the auth token travels in.
const CookieName = "jwt"

// ErrInvalidToken is returned for every verification failure. Expired,
// malformed and tampered tokens are deliberately indistinguishable to callers.
var ErrInvalidToken = errors.New("invalid or expired token")

// Service signs and verifies identity tokens with a server secret.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService builds a token service. ttl bounds the token lifetime and the
// auth cookie max age.
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token whose subject is the user identifier,
// expiring ttl from now.
func (s *Service) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify validates the signature and expiry of a token and returns the user
// identifier embedded in it. Any failure yields ErrInvalidToken.
func (s *Service) Verify(raw string) (string, error) {
	parsed, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

// SetCookie attaches the signed token to the response as an httpOnly,
// SameSite=Strict cookie expiring together with the token.
func (s *Service) SetCookie(c *fiber.Ctx, signed string) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
