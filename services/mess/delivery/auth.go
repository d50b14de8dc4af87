package delivery

import (
	"messadmin/config"
	"messadmin/domain"
	"messadmin/middleware"

	"github.com/gofiber/fiber/v2"
)

type authHandler struct {
	uc domain.AuthUseCase
}

func NewAuthDelivery(app *fiber.App, useCase domain.AuthUseCase) {
	handler := &authHandler{uc: useCase}

	group := app.Group("/auth")
	group.Post("/login", handler.Login)
	group.Post("/change-password", middleware.AuthRequired(), handler.ChangePassword)
	group.Get("/me", middleware.AuthRequired(), handler.Profile)
	group.Get("/validate", middleware.AuthRequired(), handler.Validate)
}

// Validate confirms the bearer token and echoes its claims back, used by
// clients to re-check a stored token.
func (h *authHandler) Validate(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "Validate")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"user_id":  userToken.UserID,
			"username": userToken.Username,
			"role":     userToken.Role,
		},
		"success": true,
		"message": "Token is valid",
	})
}

func (h *authHandler) Login(c *fiber.Ctx) error {
	var req domain.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		config.PrintLogInfo(nil, fiber.StatusBadRequest, "Login")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid request body",
			"success": false,
		})
	}

	resp, err := h.uc.Login(c.Context(), &req)
	if err != nil {
		config.PrintLogInfo(&req.Username, fiber.StatusUnauthorized, "Login")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Login failed",
			"success": false,
		})
	}

	config.PrintLogInfo(&resp.Username, fiber.StatusOK, "Login")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":    resp,
		"success": true,
		"message": "Login successful",
	})
}

func (h *authHandler) ChangePassword(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	var req domain.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "ChangePassword")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid request body",
			"success": false,
		})
	}

	if err := h.uc.ChangePassword(c.Context(), userToken.UserID, &req); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "ChangePassword")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to change password",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "ChangePassword")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Password changed successfully",
	})
}

func (h *authHandler) Profile(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	user, err := h.uc.Profile(c.Context(), userToken.UserID)
	if err != nil {
		status := statusOf(err)
		config.PrintLogInfo(&userToken.Username, status, "Profile")
		return c.Status(status).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to get profile",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "Profile")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":    user,
		"success": true,
		"message": "Profile retrieved successfully",
	})
}
