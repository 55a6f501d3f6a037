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

// AlbumHandler handles HTTP requests for albums, likes and cover art.
type AlbumHandler struct {
	albums   *services.AlbumService
	likes    *services.LikeService
	validate *validator.Validate
	log      *logger.Logger
}

// NewAlbumHandler creates a new AlbumHandler.
func NewAlbumHandler(albums *services.AlbumService, likes *services.LikeService, log *logger.Logger) *AlbumHandler {
	return &AlbumHandler{
		albums:   albums,
		likes:    likes,
		validate: validator.New(),
		log:      log,
	}
}

// RegisterRoutes registers the album routes. Static paths are registered
// before /:id so they are matched first.
func (h *AlbumHandler) RegisterRoutes(router fiber.Router, requireUser, requireArtist fiber.Handler) {
	albums := router.Group("/albums", requireUser)
	albums.Post("/new", requireArtist, h.HandleCreate)
	albums.Get("/drafts", requireArtist, h.listOwn(models.AlbumFilter{UnreleasedOnly: true}))
	albums.Get("/mine", requireArtist, h.listOwn(models.AlbumFilter{ReleasedOnly: true}))
	albums.Get("/all", requireArtist, h.listOwn(models.AlbumFilter{}))
	albums.Get("/liked", h.HandleLiked)
	albums.Get("/by/:artist_id", h.HandleByArtist)

	albums.Get("/:id", h.HandleGet)
	albums.Patch("/:id", requireArtist, h.HandleUpdate)
	albums.Delete("/:id", requireArtist, h.HandleDelete)
	albums.Post("/:id/release", requireArtist, h.HandleRelease)
	albums.Post("/:id/like", h.HandleLike)
	albums.Delete("/:id/like", h.HandleUnlike)
	albums.Put("/:id/cover", requireArtist, h.HandleSetCover)
	albums.Get("/:id/cover", h.HandleGetCover)
}

func (h *AlbumHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateAlbumRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}

	album, err := h.albums.CreateAlbum(c.UserContext(), middleware.CurrentArtist(c), req)
	if err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(album)
}

// listOwn lists the caller's own albums with the given filter.
func (h *AlbumHandler) listOwn(filter models.AlbumFilter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return h.list(c, middleware.CurrentArtist(c).ID, filter)
	}
}

// HandleByArtist lists another artist's released albums.
func (h *AlbumHandler) HandleByArtist(c *fiber.Ctx) error {
	return h.list(c, c.Params("artist_id"), models.AlbumFilter{ReleasedOnly: true})
}

func (h *AlbumHandler) list(c *fiber.Ctx, artistID string, filter models.AlbumFilter) error {
	page, err := pageQuery(c)
	if err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	albums, err := h.albums.ListAlbums(c.UserContext(), artistID, filter, page)
	if err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	return c.JSON(albums)
}

func (h *AlbumHandler) HandleLiked(c *fiber.Ctx) error {
	page, err := pageQuery(c)
	if err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	albums, err := h.likes.ListLikedAlbums(c.UserContext(), middleware.CurrentUser(c), page)
	if err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	return c.JSON(albums)
}

func (h *AlbumHandler) HandleGet(c *fiber.Ctx) error {
	album, err := h.albums.GetAlbum(c.UserContext(), middleware.CurrentUser(c), c.Params("id"))
	if err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	return c.JSON(album)
}

func (h *AlbumHandler) HandleUpdate(c *fiber.Ctx) error {
	var req models.UpdateAlbumRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}

	album, err := h.albums.UpdateAlbum(c.UserContext(), middleware.CurrentArtist(c), c.Params("id"), req)
	if err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	return c.JSON(album)
}

func (h *AlbumHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.albums.DeleteAlbum(c.UserContext(), middleware.CurrentArtist(c), c.Params("id")); err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AlbumHandler) HandleRelease(c *fiber.Ctx) error {
	album, err := h.albums.ReleaseAlbum(c.UserContext(), middleware.CurrentArtist(c), c.Params("id"))
	if err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	return c.JSON(album)
}

func (h *AlbumHandler) HandleLike(c *fiber.Ctx) error {
	liked, err := h.likes.Like(c.UserContext(), middleware.CurrentUser(c), c.Params("id"))
	if err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}

func (h *AlbumHandler) HandleUnlike(c *fiber.Ctx) error {
	unliked, err := h.likes.Unlike(c.UserContext(), middleware.CurrentUser(c), c.Params("id"))
	if err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"unliked": unliked})
}

// HandleSetCover takes the raw image bytes as the request body.
func (h *AlbumHandler) HandleSetCover(c *fiber.Ctx) error {
	album, err := h.albums.SetCover(c.UserContext(), middleware.CurrentArtist(c), c.Params("id"), c.Body())
	if err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	return c.JSON(album)
}

func (h *AlbumHandler) HandleGetCover(c *fiber.Ctx) error {
	data, err := h.albums.Cover(c.UserContext(), middleware.CurrentUser(c), c.Params("id"))
	if err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "image/jpeg")
	return c.Send(data)
}
