package handler

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	localUserID      = "userID"
	localAccessToken = "accessToken"
)

// domainBlacklist mirrors domain.Blacklist; declared here so handler tests
// can hand in any implementation without importing the adapters.
type domainBlacklist interface {
	Add(ctx context.Context, accessToken string, ttl time.Duration) error
	Contains(ctx context.Context, accessToken string) (bool, error)
}

// RequireAuth checks the blacklist before trusting the token's signature:
// a revoked token stays cryptographically valid until its expiry claim
// lapses, so the blacklist is the only thing standing between it and access.
func (h *AuthHandler) RequireAuth(c *fiber.Ctx) error {
	token, ok := bearerToken(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "missing or malformed authorization header",
		})
	}

	blacklisted, err := h.blacklist.Contains(c.Context(), token)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "authorization check failed",
		})
	}
	if blacklisted {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "token revoked",
		})
	}

	claims, err := h.tokenService.VerifyAccessToken(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid token",
		})
	}

	c.Locals(localUserID, claims.Subject)
	c.Locals(localAccessToken, token)

	return c.Next()
}

// RequireRole guards the admin surface. It is self-contained: token parsing,
// blacklist check and role lookup all happen here so the group needs no
// separate RequireAuth.
func (h *AuthHandler) RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing or malformed authorization header",
			})
		}

		blacklisted, err := h.blacklist.Contains(c.Context(), token)
		if err != nil || blacklisted {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "token revoked",
			})
		}

		claims, err := h.tokenService.VerifyAccessToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token",
			})
		}

		user, err := h.sessionService.UserByID(c.Context(), claims.Subject)
		if err != nil || user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unknown user",
			})
		}

		if !hasRole(user.Roles, role) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "insufficient role",
			})
		}

		c.Locals(localUserID, claims.Subject)
		c.Locals(localAccessToken, token)

		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}

func hasRole(roles []string, want string) bool {
	for _, role := range roles {
		if role == want {
			return true
		}
	}

	return false
}
