package delivery

import (
	"messadmin/config"
	"messadmin/domain"
	"messadmin/middleware"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type billingHandler struct {
	uc       domain.BillUseCase
	configUC domain.BillingConfigUseCase
}

func NewBillingDelivery(app *fiber.App, useCase domain.BillUseCase, configUC domain.BillingConfigUseCase) {
	handler := &billingHandler{uc: useCase, configUC: configUC}

	group := app.Group("/billing")
	group.Post("/generate", middleware.AuthRequired(), middleware.RoleRequired("admin"), handler.GenerateBill)
	group.Post("/generate-all/:year/:month", middleware.AuthRequired(), middleware.RoleRequired("admin"), handler.GenerateAllBills)
	group.Get("/get-all", middleware.AuthRequired(), middleware.RoleRequired("admin"), handler.GetAllBills)
	group.Get("/details/:id", middleware.AuthRequired(), middleware.RoleRequired("admin"), handler.GetBillDetail)
	group.Post("/mark-paid/:id", middleware.AuthRequired(), middleware.RoleRequired("admin"), handler.MarkBillPaid)
	group.Delete("/rm/:id", middleware.AuthRequired(), middleware.RoleRequired("admin"), handler.DeleteBill)
	group.Get("/configuration", middleware.AuthRequired(), middleware.RoleRequired("admin"), handler.GetConfiguration)
	group.Put("/configuration", middleware.AuthRequired(), middleware.RoleRequired("admin"), handler.UpdateConfiguration)
}

func (h *billingHandler) GenerateBill(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	var req domain.GenerateBillRequest
	if err := c.BodyParser(&req); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "GenerateBill")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid request body",
			"success": false,
		})
	}

	bill, err := h.uc.GenerateBill(c.Context(), &req, userToken.UserID)
	if err != nil {
		status := statusOf(err)
		config.PrintLogInfo(&userToken.Username, status, "GenerateBill")
		return c.Status(status).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to generate bill",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusCreated, "GenerateBill")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data":    bill,
		"success": true,
		"message": "Bill generated successfully",
	})
}

func (h *billingHandler) GenerateAllBills(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	year, errY := strconv.Atoi(c.Params("year"))
	month, errM := strconv.Atoi(c.Params("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "GenerateAllBills")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid year or month",
			"message": "Invalid billing period",
			"success": false,
		})
	}

	generated, failed := h.uc.GenerateMonthlyBills(c.Context(), month, year, userToken.UserID)
	failures := make([]string, 0, len(failed))
	for _, err := range failed {
		failures = append(failures, err.Error())
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GenerateAllBills")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"generated": generated,
			"failures":  failures,
		},
		"success": true,
		"message": "Billing run finished",
	})
}

func (h *billingHandler) GetAllBills(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	limit, _ := strconv.Atoi(c.Query("limit", "0"))
	bills, err := h.uc.GetBills(c.Context(), limit)
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "GetAllBills")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to get bills",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetAllBills")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":    bills,
		"success": true,
		"message": "Bills retrieved successfully",
	})
}

func (h *billingHandler) GetBillDetail(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "GetBillDetail")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid bill id",
			"success": false,
		})
	}

	bill, err := h.uc.GetBill(c.Context(), id)
	if err != nil {
		status := statusOf(err)
		config.PrintLogInfo(&userToken.Username, status, "GetBillDetail")
		return c.Status(status).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to get bill",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetBillDetail")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":    bill,
		"success": true,
		"message": "Bill retrieved successfully",
	})
}

func (h *billingHandler) MarkBillPaid(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "MarkBillPaid")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid bill id",
			"success": false,
		})
	}

	bill, err := h.uc.MarkPaid(c.Context(), id)
	if err != nil {
		status := statusOf(err)
		config.PrintLogInfo(&userToken.Username, status, "MarkBillPaid")
		return c.Status(status).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to mark bill as paid",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "MarkBillPaid")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":    bill,
		"success": true,
		"message": "Bill marked as paid",
	})
}

func (h *billingHandler) DeleteBill(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "DeleteBill")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid bill id",
			"success": false,
		})
	}

	if err := h.uc.DeleteBill(c.Context(), id); err != nil {
		status := statusOf(err)
		if status == fiber.StatusInternalServerError {
			status = fiber.StatusBadRequest
		}
		config.PrintLogInfo(&userToken.Username, status, "DeleteBill")
		return c.Status(status).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to delete bill",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "DeleteBill")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Bill deleted successfully",
	})
}

func (h *billingHandler) GetConfiguration(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	cfg, err := h.configUC.GetConfiguration(c.Context())
	if err != nil {
		status := statusOf(err)
		config.PrintLogInfo(&userToken.Username, status, "GetConfiguration")
		return c.Status(status).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to get billing configuration",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetConfiguration")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":    cfg,
		"success": true,
		"message": "Billing configuration retrieved successfully",
	})
}

func (h *billingHandler) UpdateConfiguration(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	var req domain.UpdateBillingConfigRequest
	if err := c.BodyParser(&req); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "UpdateConfiguration")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid request body",
			"success": false,
		})
	}

	cfg, err := h.configUC.UpdateConfiguration(c.Context(), &req, userToken.UserID)
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "UpdateConfiguration")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to update billing configuration",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "UpdateConfiguration")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":    cfg,
		"success": true,
		"message": "Billing configuration updated successfully",
	})
}
