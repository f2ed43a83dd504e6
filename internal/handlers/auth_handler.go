package handlers

import (
	"errors"
	"fmt"
	"log"

	"inventario/internal/models"
	"inventario/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for the session gate.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the public authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/login", h.HandleLogin)
}

// RegisterProtectedRoutes registers the routes that require a session.
func (h *AuthHandler) RegisterProtectedRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/logout", h.HandleLogout)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin checks the credential pair and issues a JWT token. A failed
// login is a plain 401: the gate does not say which half was wrong.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, models.ErrInvalidCredentials) {
			log.Printf("Error during login for user %s: %v", req.Username, err)
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
		})
	}

	return c.JSON(fiber.Map{
		"message":  "Login successful",
		"token":    token,
		"username": req.Username,
	})
}

// HandleLogout clears the session. Always succeeds.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	h.authService.Logout()
	return c.JSON(fiber.Map{
		"message": "Logout successful",
	})
}
