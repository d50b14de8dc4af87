package delivery

import (
	"messadmin/config"
	"messadmin/domain"
	"messadmin/middleware"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type disputeHandler struct {
	uc domain.DisputeUseCase
}

func NewDisputeDelivery(app *fiber.App, useCase domain.DisputeUseCase) {
	handler := &disputeHandler{uc: useCase}

	group := app.Group("/disputes")
	group.Get("/get-all", middleware.AuthRequired(), middleware.RoleRequired("admin"), handler.GetAllDisputes)
	group.Get("/details/:id", middleware.AuthRequired(), middleware.RoleRequired("admin"), handler.GetDisputeDetail)
	group.Post("/resolve/:id", middleware.AuthRequired(), middleware.RoleRequired("admin"), handler.ResolveDispute)
}

func (h *disputeHandler) GetAllDisputes(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	disputes, err := h.uc.ListByStatus(c.Context(), c.Query("status"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "GetAllDisputes")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to get disputes",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetAllDisputes")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":    disputes,
		"success": true,
		"message": "Disputes retrieved successfully",
	})
}

func (h *disputeHandler) GetDisputeDetail(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "GetDisputeDetail")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid dispute id",
			"success": false,
		})
	}

	dispute, err := h.uc.GetDispute(c.Context(), id)
	if err != nil {
		status := statusOf(err)
		config.PrintLogInfo(&userToken.Username, status, "GetDisputeDetail")
		return c.Status(status).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to get dispute",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetDisputeDetail")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":    dispute,
		"success": true,
		"message": "Dispute retrieved successfully",
	})
}

func (h *disputeHandler) ResolveDispute(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "ResolveDispute")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid dispute id",
			"success": false,
		})
	}

	var req domain.ResolveDisputeRequest
	if err := c.BodyParser(&req); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "ResolveDispute")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid request body",
			"success": false,
		})
	}

	dispute, err := h.uc.Resolve(c.Context(), id, &req, userToken.UserID)
	if err != nil {
		status := statusOf(err)
		if status == fiber.StatusInternalServerError {
			status = fiber.StatusBadRequest
		}
		config.PrintLogInfo(&userToken.Username, status, "ResolveDispute")
		return c.Status(status).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to resolve dispute",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "ResolveDispute")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":    dispute,
		"success": true,
		"message": "Dispute resolved successfully",
	})
}
