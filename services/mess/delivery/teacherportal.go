package delivery

import (
	"messadmin/config"
	"messadmin/domain"
	"messadmin/middleware"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// teacherPortalHandler serves the teacher-facing routes. Everything under
// /my is scoped to the calling teacher's own records.
type teacherPortalHandler struct {
	attendanceUC domain.AttendanceUseCase
	billUC       domain.BillUseCase
	disputeUC    domain.DisputeUseCase
	paymentUC    domain.PaymentUseCase
}

func NewTeacherPortalDelivery(app *fiber.App, attendanceUC domain.AttendanceUseCase, billUC domain.BillUseCase, disputeUC domain.DisputeUseCase, paymentUC domain.PaymentUseCase) {
	handler := &teacherPortalHandler{
		attendanceUC: attendanceUC,
		billUC:       billUC,
		disputeUC:    disputeUC,
		paymentUC:    paymentUC,
	}

	group := app.Group("/my", middleware.AuthRequired(), middleware.RoleRequired("teacher"))
	group.Get("/attendance", handler.GetMyAttendance)
	group.Delete("/attendance/rm/:id", handler.DeleteMyAttendance)
	group.Get("/bills", handler.GetMyBills)
	group.Get("/bills/details/:id", handler.GetMyBillDetail)
	group.Post("/bills/:id/pay-token", handler.CreatePaymentToken)
	group.Post("/bills/:id/pay", handler.PayBill)
	group.Post("/disputes/file", handler.FileDispute)
	group.Get("/disputes", handler.GetMyDisputes)
}

func (h *teacherPortalHandler) GetMyAttendance(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "GetMyAttendance")
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   err.Error(),
				"message": "Invalid from date, expected YYYY-MM-DD",
				"success": false,
			})
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "GetMyAttendance")
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   err.Error(),
				"message": "Invalid to date, expected YYYY-MM-DD",
				"success": false,
			})
		}
		to = parsed
	}

	attendances, err := h.attendanceUC.GetMyAttendance(c.Context(), userToken.UserID, from, to)
	if err != nil {
		status := statusOf(err)
		config.PrintLogInfo(&userToken.Username, status, "GetMyAttendance")
		return c.Status(status).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to get attendance",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetMyAttendance")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":    attendances,
		"success": true,
		"message": "Attendance retrieved successfully",
	})
}

func (h *teacherPortalHandler) DeleteMyAttendance(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "DeleteMyAttendance")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid attendance id",
			"success": false,
		})
	}

	if err := h.attendanceUC.DeleteOwnAttendance(c.Context(), id, userToken.UserID); err != nil {
		status := statusOf(err)
		config.PrintLogInfo(&userToken.Username, status, "DeleteMyAttendance")
		return c.Status(status).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to delete attendance",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "DeleteMyAttendance")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Attendance deleted successfully",
	})
}

func (h *teacherPortalHandler) GetMyBills(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	bills, err := h.billUC.GetMyBills(c.Context(), userToken.UserID)
	if err != nil {
		status := statusOf(err)
		config.PrintLogInfo(&userToken.Username, status, "GetMyBills")
		return c.Status(status).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to get bills",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetMyBills")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":    bills,
		"success": true,
		"message": "Bills retrieved successfully",
	})
}

func (h *teacherPortalHandler) GetMyBillDetail(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "GetMyBillDetail")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid bill id",
			"success": false,
		})
	}

	bill, attendances, err := h.billUC.GetMyBillDetail(c.Context(), id, userToken.UserID)
	if err != nil {
		status := statusOf(err)
		config.PrintLogInfo(&userToken.Username, status, "GetMyBillDetail")
		return c.Status(status).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to get bill details",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetMyBillDetail")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"bill":       bill,
			"attendance": attendances,
		},
		"success": true,
		"message": "Bill details retrieved successfully",
	})
}

func (h *teacherPortalHandler) CreatePaymentToken(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "CreatePaymentToken")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid bill id",
			"success": false,
		})
	}

	bill, err := h.paymentUC.CreatePaymentToken(c.Context(), id, userToken.UserID)
	if err != nil {
		status := statusOf(err)
		config.PrintLogInfo(&userToken.Username, status, "CreatePaymentToken")
		return c.Status(status).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to create payment token",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusCreated, "CreatePaymentToken")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"bill_id":       bill.BillID,
			"payment_token": bill.PaymentToken,
			"amount":        bill.TotalBill,
		},
		"success": true,
		"message": "Payment token created",
	})
}

func (h *teacherPortalHandler) PayBill(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "PayBill")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid bill id",
			"success": false,
		})
	}

	var card domain.CardDetails
	if err := c.BodyParser(&card); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "PayBill")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid request body",
			"success": false,
		})
	}

	bill, err := h.paymentUC.ProcessPayment(c.Context(), id, userToken.UserID, &card)
	if err != nil {
		status := statusOf(err)
		config.PrintLogInfo(&userToken.Username, status, "PayBill")
		return c.Status(status).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Payment failed",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "PayBill")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":    bill,
		"success": true,
		"message": "Payment processed successfully",
	})
}

func (h *teacherPortalHandler) FileDispute(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	var req domain.FileDisputeRequest
	if err := c.BodyParser(&req); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "FileDispute")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid request body",
			"success": false,
		})
	}

	dispute, err := h.disputeUC.FileDispute(c.Context(), userToken.UserID, &req)
	if err != nil {
		status := statusOf(err)
		if status == fiber.StatusInternalServerError {
			status = fiber.StatusBadRequest
		}
		config.PrintLogInfo(&userToken.Username, status, "FileDispute")
		return c.Status(status).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to file dispute",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusCreated, "FileDispute")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data":    dispute,
		"success": true,
		"message": "Dispute filed successfully",
	})
}

func (h *teacherPortalHandler) GetMyDisputes(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	disputes, err := h.disputeUC.ListMyDisputes(c.Context(), userToken.UserID, c.Query("status"))
	if err != nil {
		status := statusOf(err)
		config.PrintLogInfo(&userToken.Username, status, "GetMyDisputes")
		return c.Status(status).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to get disputes",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetMyDisputes")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":    disputes,
		"success": true,
		"message": "Disputes retrieved successfully",
	})
}
