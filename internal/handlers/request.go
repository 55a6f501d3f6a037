package handlers

import (
	"strconv"

	"sonority/internal/httputil"
	"sonority/internal/models"
	"sonority/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// bind parses the JSON body into dst and validates it. On failure the error
// response has already been written and ok is false.
func bind(c *fiber.Ctx, validate *validator.Validate, dst interface{}) (ok bool, err error) {
	if err := c.BodyParser(dst); err != nil {
		return false, httputil.WriteError(c, fiber.StatusBadRequest, httputil.ErrCodeBadRequest, "Invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return false, httputil.WriteValidationError(c, err)
	}
	return true, nil
}

// pageQuery reads the offset and limit query parameters.
func pageQuery(c *fiber.Ctx) (models.Page, error) {
	page := models.DefaultPage()
	if raw := c.Query("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return page, services.ErrInvalidPage
		}
		page.Skip = v
	}
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return page, services.ErrInvalidPage
		}
		page.Take = v
	}
	return page, nil
}
