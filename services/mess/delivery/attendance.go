package delivery

import (
	"messadmin/config"
	"messadmin/domain"
	"messadmin/middleware"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

type attendanceHandler struct {
	uc domain.AttendanceUseCase
}

func NewAttendanceDelivery(app *fiber.App, useCase domain.AttendanceUseCase) {
	handler := &attendanceHandler{uc: useCase}

	group := app.Group("/attendance")
	group.Post("/mark", middleware.AuthRequired(), middleware.RoleRequired("admin"), handler.MarkAttendance)
	group.Put("/modify/:id", middleware.AuthRequired(), middleware.RoleRequired("admin"), handler.ModifyAttendance)
	group.Delete("/rm/:id", middleware.AuthRequired(), middleware.RoleRequired("admin"), handler.DeleteAttendance)
	group.Get("/date/:date", middleware.AuthRequired(), middleware.RoleRequired("admin"), handler.GetAttendanceByDate)
	group.Get("/report/:year/:month", middleware.AuthRequired(), middleware.RoleRequired("admin"), handler.GetMonthlyReport)
}

func (h *attendanceHandler) MarkAttendance(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	var req domain.MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "MarkAttendance")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid request body",
			"success": false,
		})
	}

	attendance, err := h.uc.MarkAttendance(c.Context(), &req, userToken.UserID)
	if err != nil {
		status := statusOf(err)
		if status == fiber.StatusInternalServerError {
			status = fiber.StatusBadRequest
		}
		config.PrintLogInfo(&userToken.Username, status, "MarkAttendance")
		return c.Status(status).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to mark attendance",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusCreated, "MarkAttendance")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data":    attendance,
		"success": true,
		"message": "Attendance marked successfully",
	})
}

func (h *attendanceHandler) ModifyAttendance(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "ModifyAttendance")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid attendance id",
			"success": false,
		})
	}

	var req domain.UpdateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "ModifyAttendance")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid request body",
			"success": false,
		})
	}

	if err := h.uc.EditAttendance(c.Context(), id, &req, userToken.UserID); err != nil {
		status := statusOf(err)
		config.PrintLogInfo(&userToken.Username, status, "ModifyAttendance")
		return c.Status(status).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to update attendance",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "ModifyAttendance")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Attendance updated successfully",
	})
}

func (h *attendanceHandler) DeleteAttendance(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "DeleteAttendance")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid attendance id",
			"success": false,
		})
	}

	if err := h.uc.DeleteAttendance(c.Context(), id); err != nil {
		status := statusOf(err)
		config.PrintLogInfo(&userToken.Username, status, "DeleteAttendance")
		return c.Status(status).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to delete attendance",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "DeleteAttendance")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Attendance deleted successfully",
	})
}

func (h *attendanceHandler) GetAttendanceByDate(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	date, err := time.Parse("2006-01-02", c.Params("date"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "GetAttendanceByDate")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid date, expected YYYY-MM-DD",
			"success": false,
		})
	}

	attendances, err := h.uc.GetAttendanceByDate(c.Context(), date)
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "GetAttendanceByDate")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to get attendance",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetAttendanceByDate")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":    attendances,
		"success": true,
		"message": "Attendance retrieved successfully",
	})
}

func (h *attendanceHandler) GetMonthlyReport(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	year, err := strconv.Atoi(c.Params("year"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "GetMonthlyReport")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid year",
			"success": false,
		})
	}
	month, err := strconv.Atoi(c.Params("month"))
	if err != nil || month < 1 || month > 12 {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "GetMonthlyReport")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "month must be between 1 and 12",
			"message": "Invalid month",
			"success": false,
		})
	}

	report, err := h.uc.GetMonthlyReport(c.Context(), month, year)
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "GetMonthlyReport")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to build report",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetMonthlyReport")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":    report,
		"success": true,
		"message": "Report generated successfully",
	})
}
