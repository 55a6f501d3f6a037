package handlers

import (
	"sonority/internal/httputil"
	"sonority/internal/logger"
	"sonority/internal/middleware"
	"sonority/internal/models"
	"sonority/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ArtistHandler handles HTTP requests for artist profiles and follows.
type ArtistHandler struct {
	artists  *services.ArtistService
	follows  *services.FollowService
	validate *validator.Validate
	log      *logger.Logger
}

// NewArtistHandler creates a new ArtistHandler.
func NewArtistHandler(artists *services.ArtistService, follows *services.FollowService, log *logger.Logger) *ArtistHandler {
	return &ArtistHandler{
		artists:  artists,
		follows:  follows,
		validate: validator.New(),
		log:      log,
	}
}

// ArtistView is an artist as seen by the caller.
type ArtistView struct {
	Artist      *models.Artist `json:"artist"`
	IsFollowing bool           `json:"is_following"`
}

// RegisterRoutes registers the artist routes. Every route needs an
// authenticated user; the /me routes also need an artist profile.
func (h *ArtistHandler) RegisterRoutes(router fiber.Router, requireUser, requireArtist fiber.Handler) {
	artists := router.Group("/artists", requireUser)
	artists.Get("/", h.HandleLookup)
	artists.Post("/new", h.HandleRegister)
	artists.Get("/following", h.HandleFollowing)
	artists.Get("/me", requireArtist, h.HandleMe)
	artists.Patch("/me", requireArtist, h.HandleUpdateMe)
	artists.Delete("/me", requireArtist, h.HandleDeleteMe)
	artists.Post("/me/verify", requireArtist, h.HandleVerify)
	artists.Post("/:id/follow", h.HandleFollow)
	artists.Delete("/:id/follow", h.HandleUnfollow)
}

// HandleRegister opens an artist profile for the caller.
func (h *ArtistHandler) HandleRegister(c *fiber.Ctx) error {
	var req models.CreateArtistRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}

	artist, err := h.artists.RegisterArtist(c.UserContext(), middleware.CurrentUser(c), req)
	if err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(artist)
}

func (h *ArtistHandler) HandleMe(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentArtist(c))
}

func (h *ArtistHandler) HandleUpdateMe(c *fiber.Ctx) error {
	var req models.UpdateArtistRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}

	artist, err := h.artists.UpdateArtist(c.UserContext(), middleware.CurrentArtist(c).ID, req)
	if err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	return c.JSON(artist)
}

func (h *ArtistHandler) HandleDeleteMe(c *fiber.Ctx) error {
	if err := h.artists.DeleteArtist(c.UserContext(), middleware.CurrentArtist(c).ID); err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ArtistHandler) HandleVerify(c *fiber.Ctx) error {
	artist, err := h.artists.Verify(c.UserContext(), middleware.CurrentArtist(c).ID)
	if err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	return c.JSON(artist)
}

// HandleLookup finds an artist by ?id= or ?name= and tells whether the caller
// follows it.
func (h *ArtistHandler) HandleLookup(c *fiber.Ctx) error {
	ctx := c.UserContext()
	artist, err := h.artists.Lookup(ctx, c.Query("id"), c.Query("name"))
	if err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	following, err := h.follows.IsFollowing(ctx, middleware.CurrentUser(c), artist.ID)
	if err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	return c.JSON(ArtistView{Artist: artist, IsFollowing: following})
}

func (h *ArtistHandler) HandleFollowing(c *fiber.Ctx) error {
	page, err := pageQuery(c)
	if err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	artists, err := h.follows.ListFollowedArtists(c.UserContext(), middleware.CurrentUser(c), page)
	if err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	return c.JSON(artists)
}

func (h *ArtistHandler) HandleFollow(c *fiber.Ctx) error {
	followed, err := h.follows.Follow(c.UserContext(), middleware.CurrentUser(c), c.Params("id"))
	if err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"followed": followed})
}

func (h *ArtistHandler) HandleUnfollow(c *fiber.Ctx) error {
	unfollowed, err := h.follows.Unfollow(c.UserContext(), middleware.CurrentUser(c), c.Params("id"))
	if err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"unfollowed": unfollowed})
}
