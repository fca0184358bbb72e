package controllers

import (
	"github.com/gofiber/fiber/v2"

	"welfare-center-api/src/middleware"
	"welfare-center-api/src/models"
	"welfare-center-api/src/services/assignments"
	"welfare-center-api/src/utils"
)

// CreateAssignment godoc
// @Summary Assign a question
// @Description Assigns a question to exactly one of a user or a group
// @Tags assignments
// @Accept json
// @Produce json
// @Param assignment body models.QuestionAssignmentRequest true "Assignment"
// @Success 201 {object} models.QuestionAssignment
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /question-assignments [post]
func CreateAssignment(c *fiber.Ctx) error {
	var req models.QuestionAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	principal := middleware.MustPrincipal(c)
	assignment, err := assignments.Create(principal.InstitutionID, principal.ID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(assignment)
}

// GetAssignments godoc
// @Summary List question assignments
// @Tags assignments
// @Produce json
// @Param questionId query string false "Filter by question"
// @Param userId query string false "Filter by user"
// @Param groupId query string false "Filter by group"
// @Success 200 {array} models.QuestionAssignmentView
// @Security BearerAuth
// @Router /question-assignments [get]
func GetAssignments(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	list, err := assignments.List(principal.InstitutionID,
		c.Query("questionId"), c.Query("userId"), c.Query("groupId"))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetAssignmentsByUser godoc
// @Summary Assignments targeting one member
// @Tags assignments
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {array} models.QuestionAssignmentView
// @Security BearerAuth
// @Router /question-assignments/by-user/{userId} [get]
func GetAssignmentsByUser(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	list, err := assignments.List(principal.InstitutionID, "", c.Params("userId"), "")
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetAssignmentsByGroup godoc
// @Summary Assignments targeting one group
// @Tags assignments
// @Produce json
// @Param groupId path string true "Group ID"
// @Success 200 {array} models.QuestionAssignmentView
// @Security BearerAuth
// @Router /question-assignments/by-group/{groupId} [get]
func GetAssignmentsByGroup(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	list, err := assignments.List(principal.InstitutionID, "", "", c.Params("groupId"))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetAssignmentStatistics godoc
// @Summary Assignment statistics
// @Tags assignments
// @Produce json
// @Success 200 {object} models.AssignmentStatistics
// @Security BearerAuth
// @Router /question-assignments/statistics [get]
func GetAssignmentStatistics(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	stats, err := assignments.Statistics(principal.InstitutionID)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// UpdateAssignment godoc
// @Summary Update assignment priority
// @Description Only the priority can change; retargeting means delete and recreate
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param assignment body models.AssignmentPriorityRequest true "New priority"
// @Success 200 {object} models.QuestionAssignment
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /question-assignments/{id} [put]
func UpdateAssignment(c *fiber.Ctx) error {
	var req models.AssignmentPriorityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	principal := middleware.MustPrincipal(c)
	assignment, err := assignments.UpdatePriority(principal.InstitutionID, c.Params("id"), req.Priority)
	if err != nil {
		return err
	}
	return c.JSON(assignment)
}

// DeleteAssignment godoc
// @Summary Delete question assignment
// @Tags assignments
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /question-assignments/{id} [delete]
func DeleteAssignment(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	if err := assignments.Delete(principal.InstitutionID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "assignment deleted"})
}
