package server

import (
	"errors"
	"time"

	"sonority/internal/handlers"
	"sonority/internal/httputil"
	"sonority/internal/logger"
	"sonority/internal/middleware"
	"sonority/internal/services"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
)

// Services are the domain services the HTTP layer is built on.
type Services struct {
	Auth     *services.AuthService
	Accounts *services.AccountService
	Artists  *services.ArtistService
	Follows  *services.FollowService
	Albums   *services.AlbumService
	Likes    *services.LikeService
}

// Options tune the HTTP layer.
type Options struct {
	Log *logger.Logger
	// Redis backs the login/registration rate limiter; nil disables it.
	Redis           *redis.Client
	RateLimitMax    int
	RateLimitWindow time.Duration
	// RequestLog enables the per-request access log.
	RequestLog bool
	// BodyLimit caps request bodies in bytes, cover uploads included.
	BodyLimit int
}

const defaultBodyLimit = 10 * 1024 * 1024

// New builds the Fiber app with every route registered.
func New(svc Services, opts Options) *fiber.App {
	log := opts.Log
	if log == nil {
		log = logger.NewNop()
	}
	bodyLimit := opts.BodyLimit
	if bodyLimit <= 0 {
		bodyLimit = defaultBodyLimit
	}

	app := fiber.New(fiber.Config{
		AppName:               "sonority",
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(log),
	})

	// --- Middleware ---
	if opts.RequestLog {
		app.Use(fiberlogger.New())
	}

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	requireUser := middleware.AuthRequired(svc.Auth, svc.Accounts, log)
	requireArtist := middleware.ArtistRequired(svc.Artists, log)
	limit := middleware.RateLimit(opts.Redis, "auth", opts.RateLimitMax, opts.RateLimitWindow, log)

	handlers.NewAuthHandler(svc.Auth, svc.Accounts, log).RegisterRoutes(app, limit, requireUser)
	handlers.NewArtistHandler(svc.Artists, svc.Follows, log).RegisterRoutes(app, requireUser, requireArtist)
	handlers.NewAlbumHandler(svc.Albums, svc.Likes, log).RegisterRoutes(app, requireUser, requireArtist)

	return app
}

// errorHandler renders errors that escape the handlers, such as unknown routes
// or oversized bodies, in the common error envelope.
func errorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return httputil.WriteError(c, fe.Code, httputil.CodeForStatus(fe.Code), fe.Message)
		}
		return httputil.WriteServiceError(c, log, err)
	}
}
