package middleware

import (
	"strings"

	"careernav/internal/auth"

	"github.com/gofiber/fiber/v2"
)

// OptionalAuth resolves a bearer token into a user id when one is presented.
// Requests without (or with an invalid) token proceed anonymously; no route
// in this product hard-requires a session.
func OptionalAuth(tokens *auth.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			if claims, err := tokens.Verify(token); err == nil {
				c.Locals("userID", claims.UserID)
			}
		}
		return c.Next()
	}
}
