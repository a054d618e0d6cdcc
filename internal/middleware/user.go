package middleware

import (
	"github.com/gofiber/fiber/v2"

	"studybridge/internal/domain"
)

// UserIDLocalsKey is the fiber locals key holding the caller's user ID.
const UserIDLocalsKey = "userID"

// UserIDHeader carries the caller identity. Session handling lives in the
// gateway in front of this service; by the time a request arrives here the
// header is trusted.
const UserIDHeader = "X-User-ID"

// RequireUser extracts the caller's user ID from the request header and
// stores it in the request locals. Requests without one are rejected.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get(UserIDHeader)
		if userID == "" {
			return domain.NewInvalidInputError("X-User-ID header is required")
		}
		c.Locals(UserIDLocalsKey, userID)
		return c.Next()
	}
}

// UserID returns the caller's user ID previously stored by RequireUser.
func UserID(c *fiber.Ctx) string {
	if v, ok := c.Locals(UserIDLocalsKey).(string); ok {
		return v
	}
	return ""
}
