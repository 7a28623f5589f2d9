package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// HeaderAPIKey carries the admin API key.
	HeaderAPIKey = "X-API-Key"
	// LocalsRole is the fiber locals key holding the caller's role.
	LocalsRole = "role"
	// LocalsSubject is the fiber locals key holding the token subject.
	LocalsSubject = "subject"

	roleAdmin = "admin"
)

// Config holds the credentials the middleware accepts.
type Config struct {
	// ApiKey grants the admin role when presented in X-API-Key.
	ApiKey string
	// JWTSecret verifies HS256 bearer tokens carrying a "role" claim.
	JWTSecret string
}

// New returns a middleware that resolves the caller's role.
// With no credential configured every request is treated as admin.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.ApiKey == "" && cfg.JWTSecret == "" {
			c.Locals(LocalsRole, roleAdmin)
			return c.Next()
		}

		if key := c.Get(HeaderAPIKey); key != "" && cfg.ApiKey != "" {
			if subtle.ConstantTimeCompare([]byte(key), []byte(cfg.ApiKey)) == 1 {
				c.Locals(LocalsRole, roleAdmin)
				c.Locals(LocalsSubject, "api-key")
				return c.Next()
			}
			return unauthorized(c, "invalid api key")
		}

		header := c.Get(fiber.HeaderAuthorization)
		if cfg.JWTSecret == "" || !strings.HasPrefix(header, "Bearer ") {
			return unauthorized(c, "missing credentials")
		}

		claims, err := ParseToken(cfg.JWTSecret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return unauthorized(c, "invalid token")
		}

		role, _ := claims["role"].(string)
		sub, _ := claims.GetSubject()
		c.Locals(LocalsRole, role)
		c.Locals(LocalsSubject, sub)
		return c.Next()
	}
}

// RequireRole aborts with 403 unless the caller's role is one of roles.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocalsRole).(string)
		if !ok || !allowed[role] {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
		}
		return c.Next()
	}
}

// NewToken signs an HS256 token for subject with the given role.
func NewToken(secret, subject, role string, ttl time.Duration) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, errors.New("jwt secret is not configured")
	}
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, exp, nil
}

// ParseToken verifies raw against secret and returns its claims.
func ParseToken(secret, raw string) (jwt.MapClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
}
