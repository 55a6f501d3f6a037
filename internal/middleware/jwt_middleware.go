package middleware

import (
	"strings"

	"sonority/internal/httputil"
	"sonority/internal/logger"
	"sonority/internal/models"
	"sonority/internal/services"

	"github.com/gofiber/fiber/v2"
)

const (
	userKey   = "user"
	artistKey = "artist"
)

// AuthRequired is a Fiber middleware to check for a valid JWT token. The user
// the token was issued for is loaded and stored in the request context.
func AuthRequired(authService *services.AuthService, accounts *services.AccountService, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return httputil.WriteError(c, fiber.StatusUnauthorized, httputil.ErrCodeUnauthorized, "Authorization header is required")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return httputil.WriteError(c, fiber.StatusUnauthorized, httputil.ErrCodeUnauthorized, "Authorization header format must be 'Bearer <token>'")
		}

		userID, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Debug("JWT validation failed", "error", err)
			return httputil.WriteError(c, fiber.StatusUnauthorized, httputil.ErrCodeUnauthorized, "Invalid or expired token")
		}

		user, err := accounts.GetUser(c.UserContext(), userID)
		if err != nil {
			if services.KindOf(err) == services.KindNotFound {
				return httputil.WriteError(c, fiber.StatusUnauthorized, httputil.ErrCodeUnauthorized, "Invalid or expired token")
			}
			return httputil.WriteServiceError(c, log, err)
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// ArtistRequired must run after AuthRequired. It rejects users without an
// artist profile and stores the profile in the request context.
func ArtistRequired(artists *services.ArtistService, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return httputil.WriteError(c, fiber.StatusUnauthorized, httputil.ErrCodeUnauthorized, "Authentication required")
		}
		artist, err := artists.CurrentArtist(c.UserContext(), user)
		if err != nil {
			return httputil.WriteServiceError(c, log, err)
		}
		c.Locals(artistKey, artist)
		return c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil outside AuthRequired.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}

// CurrentArtist returns the caller's artist profile, or nil outside ArtistRequired.
func CurrentArtist(c *fiber.Ctx) *models.Artist {
	artist, _ := c.Locals(artistKey).(*models.Artist)
	return artist
}
