package middlewares

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"enrollku_backend/internals/configs"
)

// Paths skipped by auth (provider webhooks sign their own payloads).
var skipPaths = map[string]struct{}{
	"/api/payments/notification": {},
}

// Auth parses the bearer token and fills the actor locals (user_id, role,
// rto_id). Token issuance, refresh, and MFA live in a separate identity
// service; this backend only verifies.
func Auth(cfg configs.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := skipPaths[c.Path()]; ok {
			return c.Next()
		}

		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		if cfg.JWTSecret == "" {
			return fiber.NewError(fiber.StatusInternalServerError, "missing JWT secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}
		if err := validateExpiry(claims, 30*time.Second); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "token expired")
		}

		userID, err := claimUUID(claims, "user_id")
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or missing user ID")
		}
		rtoID, err := claimUUID(claims, "rto_id")
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or missing RTO ID")
		}
		role, _ := claims["role"].(string)
		if role == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing role claim")
		}

		c.Locals("user_id", userID)
		c.Locals("rto_id", rtoID)
		c.Locals("role", role)
		return c.Next()
	}
}

// RequireRoles guards a route group by role claim.
func RequireRoles(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if _, ok := allowed[role]; !ok {
			return fiber.NewError(fiber.StatusForbidden, "role not allowed for this resource")
		}
		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	h := c.Get(fiber.HeaderAuthorization)
	if h == "" {
		if cookie := c.Cookies("access_token"); cookie != "" {
			return cookie, nil
		}
		return "", errors.New("missing Authorization header")
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("malformed Authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}

func validateExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	exp, ok := claims["exp"].(float64)
	if !ok {
		return errors.New("missing exp claim")
	}
	if time.Now().Add(-leeway).After(time.Unix(int64(exp), 0)) {
		return errors.New("expired")
	}
	return nil
}

func claimUUID(claims jwt.MapClaims, key string) (uuid.UUID, error) {
	raw, _ := claims[key].(string)
	return uuid.Parse(strings.TrimSpace(raw))
}
