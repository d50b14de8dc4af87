package delivery

import (
	"messadmin/config"
	"messadmin/domain"
	"messadmin/middleware"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type menuHandler struct {
	uc domain.MenuUseCase
}

func NewMenuDelivery(app *fiber.App, useCase domain.MenuUseCase) {
	handler := &menuHandler{uc: useCase}

	group := app.Group("/menu")
	group.Get("/get-all", middleware.AuthRequired(), handler.GetMenu)
	group.Get("/today", middleware.AuthRequired(), handler.GetTodayMenu)
	group.Get("/details/:id", middleware.AuthRequired(), handler.GetMenuItem)
	group.Post("/create", middleware.AuthRequired(), middleware.RoleRequired("admin"), handler.CreateMenuItem)
	group.Put("/modify/:id", middleware.AuthRequired(), middleware.RoleRequired("admin"), handler.ModifyMenuItem)
	group.Delete("/rm/:id", middleware.AuthRequired(), middleware.RoleRequired("admin"), handler.DeleteMenuItem)
}

func (h *menuHandler) GetMenu(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	items, err := h.uc.GetMenu(c.Context(), c.Query("day"), c.Query("meal"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "GetMenu")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to get menu",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetMenu")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":    items,
		"success": true,
		"message": "Menu retrieved successfully",
	})
}

func (h *menuHandler) GetTodayMenu(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	day, items, err := h.uc.GetTodayMenu(c.Context())
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "GetTodayMenu")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to get today's menu",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetTodayMenu")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"day":   day,
			"items": items,
		},
		"success": true,
		"message": "Today's menu retrieved successfully",
	})
}

func (h *menuHandler) GetMenuItem(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "GetMenuItem")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid menu item id",
			"success": false,
		})
	}

	item, err := h.uc.GetMenuItem(c.Context(), id)
	if err != nil {
		status := statusOf(err)
		config.PrintLogInfo(&userToken.Username, status, "GetMenuItem")
		return c.Status(status).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to get menu item",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetMenuItem")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":    item,
		"success": true,
		"message": "Menu item retrieved successfully",
	})
}

func (h *menuHandler) CreateMenuItem(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	var item domain.MenuItem
	if err := c.BodyParser(&item); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "CreateMenuItem")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid request body",
			"success": false,
		})
	}

	if err := h.uc.CreateMenuItem(c.Context(), &item); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "CreateMenuItem")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to create menu item",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusCreated, "CreateMenuItem")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data":    item,
		"success": true,
		"message": "Menu item created successfully",
	})
}

func (h *menuHandler) ModifyMenuItem(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "ModifyMenuItem")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid menu item id",
			"success": false,
		})
	}

	var item domain.MenuItem
	if err := c.BodyParser(&item); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "ModifyMenuItem")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid request body",
			"success": false,
		})
	}

	if err := h.uc.UpdateMenuItem(c.Context(), id, &item); err != nil {
		status := statusOf(err)
		if status == fiber.StatusInternalServerError {
			status = fiber.StatusBadRequest
		}
		config.PrintLogInfo(&userToken.Username, status, "ModifyMenuItem")
		return c.Status(status).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to update menu item",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "ModifyMenuItem")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":    item,
		"success": true,
		"message": "Menu item updated successfully",
	})
}

func (h *menuHandler) DeleteMenuItem(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "DeleteMenuItem")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid menu item id",
			"success": false,
		})
	}

	if err := h.uc.DeleteMenuItem(c.Context(), id); err != nil {
		status := statusOf(err)
		config.PrintLogInfo(&userToken.Username, status, "DeleteMenuItem")
		return c.Status(status).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to delete menu item",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "DeleteMenuItem")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Menu item removed successfully",
	})
}
