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

// AuthHandler handles HTTP requests for accounts and authentication.
type AuthHandler struct {
	authService *services.AuthService
	accounts    *services.AccountService
	validate    *validator.Validate
	log         *logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, accounts *services.AccountService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		accounts:    accounts,
		validate:    validator.New(),
		log:         log,
	}
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterRoutes registers the account routes. limit guards the unauthenticated
// endpoints and requireUser the rest.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, limit, requireUser fiber.Handler) {
	users := router.Group("/users")
	users.Post("/register", limit, h.HandleRegister)
	users.Post("/login", limit, h.HandleLogin)
	users.Get("/me", requireUser, h.HandleMe)
	users.Patch("/me", requireUser, h.HandleUpdateMe)
	users.Delete("/me", requireUser, h.HandleDeleteMe)
	users.Patch("/me/password", requireUser, h.HandleChangePassword)
	users.Get("/:id", h.HandleGetUser)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}

	user, err := h.accounts.Register(c.UserContext(), req)
	if err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}

	user, err := h.accounts.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	token, err := h.authService.IssueToken(user)
	if err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	return c.JSON(TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}

func (h *AuthHandler) HandleUpdateMe(c *fiber.Ctx) error {
	var req models.UpdateUserRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}

	user, err := h.accounts.UpdateProfile(c.UserContext(), middleware.CurrentUser(c).ID, req)
	if err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	return c.JSON(user)
}

func (h *AuthHandler) HandleChangePassword(c *fiber.Ctx) error {
	var req models.ChangePasswordRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}

	err := h.accounts.ChangePassword(c.UserContext(), middleware.CurrentUser(c).ID, req.OldPassword, req.NewPassword)
	if err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDeleteMe deletes the caller's account and everything that hangs off it.
func (h *AuthHandler) HandleDeleteMe(c *fiber.Ctx) error {
	if err := h.accounts.DeleteAccount(c.UserContext(), middleware.CurrentUser(c).ID); err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) HandleGetUser(c *fiber.Ctx) error {
	user, err := h.accounts.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return httputil.WriteServiceError(c, h.log, err)
	}
	return c.JSON(user)
}
