package middleware

import (
	"github.com/gofiber/fiber/v2"

	"unite-dashboard/internal/domain"
	"unite-dashboard/internal/session"
)

const (
	ViewerContextKey = "viewer"
	TokenContextKey  = "token"

	// ProfileHeader carries the dashboard's stored user profile, forwarded
	// verbatim (raw or base64 JSON) on every call.
	ProfileHeader = "X-Unite-User"
)

// WithViewer resolves the caller's identity from the forwarded profile and
// bearer token. Resolution never rejects the request; downstream handlers
// decide what a zero viewer is allowed to see.
func WithViewer(resolver *session.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get("Authorization"))
		viewer := resolver.Resolve([]byte(c.Get(ProfileHeader)), token)

		c.Locals(ViewerContextKey, viewer)
		c.Locals(TokenContextKey, token)

		return c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}

func GetViewer(c *fiber.Ctx) domain.Viewer {
	viewer, ok := c.Locals(ViewerContextKey).(domain.Viewer)
	if !ok {
		return domain.Viewer{}
	}
	return viewer
}

func GetToken(c *fiber.Ctx) string {
	token, ok := c.Locals(TokenContextKey).(string)
	if !ok {
		return ""
	}
	return token
}

// RequireIdentity gates routes that need a resolved caller.
func RequireIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetViewer(c).IsZero() {
			return Unauthorized("Missing or unreadable identity")
		}
		return c.Next()
	}
}

// RequireSystemAdmin gates routes on the system-admin axis. Staff-level
// "Admin" is a different axis and does not pass.
func RequireSystemAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !GetViewer(c).IsAdmin {
			return Forbidden("System administrator access required")
		}
		return c.Next()
	}
}
