package delivery

import (
	"messadmin/config"
	"messadmin/domain"
	"messadmin/middleware"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type teacherHandler struct {
	uc domain.TeacherUseCase
}

func NewTeacherDelivery(app *fiber.App, useCase domain.TeacherUseCase) {
	handler := &teacherHandler{uc: useCase}

	group := app.Group("/teachers")
	group.Post("/create", middleware.AuthRequired(), middleware.RoleRequired("admin"), handler.CreateTeacher)
	group.Get("/get-all", middleware.AuthRequired(), middleware.RoleRequired("admin"), handler.GetAllTeachers)
	group.Get("/details/:id", middleware.AuthRequired(), middleware.RoleRequired("admin"), handler.GetTeacherDetail)
	group.Put("/modify/:id", middleware.AuthRequired(), middleware.RoleRequired("admin"), handler.ModifyTeacher)
	group.Delete("/rm/:id", middleware.AuthRequired(), middleware.RoleRequired("admin"), handler.DeleteTeacher)
}

func (h *teacherHandler) CreateTeacher(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	var req domain.CreateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "CreateTeacher")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid request body",
			"success": false,
		})
	}

	teacher, err := h.uc.CreateTeacher(c.Context(), &req)
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "CreateTeacher")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to create teacher",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusCreated, "CreateTeacher")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data":    teacher,
		"success": true,
		"message": "Teacher created successfully",
	})
}

func (h *teacherHandler) GetAllTeachers(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	teachers, err := h.uc.GetAllTeachers(c.Context())
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "GetAllTeachers")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to get teachers",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetAllTeachers")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":    teachers,
		"success": true,
		"message": "Teachers retrieved successfully",
	})
}

func (h *teacherHandler) GetTeacherDetail(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "GetTeacherDetail")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid teacher id",
			"success": false,
		})
	}

	detail, err := h.uc.GetTeacherDetail(c.Context(), id)
	if err != nil {
		status := statusOf(err)
		config.PrintLogInfo(&userToken.Username, status, "GetTeacherDetail")
		return c.Status(status).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to get teacher details",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetTeacherDetail")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":    detail,
		"success": true,
		"message": "Teacher details retrieved successfully",
	})
}

func (h *teacherHandler) ModifyTeacher(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "ModifyTeacher")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid teacher id",
			"success": false,
		})
	}

	var req domain.UpdateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "ModifyTeacher")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid request body",
			"success": false,
		})
	}

	if err := h.uc.UpdateTeacher(c.Context(), id, &req); err != nil {
		status := statusOf(err)
		if status == fiber.StatusInternalServerError {
			status = fiber.StatusBadRequest
		}
		config.PrintLogInfo(&userToken.Username, status, "ModifyTeacher")
		return c.Status(status).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to update teacher",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "ModifyTeacher")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Teacher updated successfully",
	})
}

func (h *teacherHandler) DeleteTeacher(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "DeleteTeacher")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Invalid teacher id",
			"success": false,
		})
	}

	if err := h.uc.DeleteTeacher(c.Context(), id); err != nil {
		status := statusOf(err)
		config.PrintLogInfo(&userToken.Username, status, "DeleteTeacher")
		return c.Status(status).JSON(fiber.Map{
			"error":   err.Error(),
			"message": "Failed to delete teacher",
			"success": false,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "DeleteTeacher")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Teacher and all related records deleted successfully",
	})
}
