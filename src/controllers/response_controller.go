package controllers

import (
	"github.com/gofiber/fiber/v2"

	"welfare-center-api/src/middleware"
	"welfare-center-api/src/models"
	"welfare-center-api/src/services/responses"
	"welfare-center-api/src/utils"
)

// SubmitResponse godoc
// @Summary Submit an answer
// @Description Appends a response; same-day re-submission stacks and the latest wins on reads
// @Tags responses
// @Accept json
// @Produce json
// @Param response body models.QuestionResponseRequest true "Answer"
// @Success 201 {object} models.QuestionResponse
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /user/responses [post]
func SubmitResponse(c *fiber.Ctx) error {
	var req models.QuestionResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	principal := middleware.MustPrincipal(c)
	response, err := responses.Submit(principal.ID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(response)
}

// GetAssignmentResponses godoc
// @Summary Responses for an assignment
// @Description Same-day duplicates collapse to the latest unless history=true
// @Tags responses
// @Produce json
// @Param assignmentId path string true "Assignment ID"
// @Param history query bool false "Return every stored submission"
// @Success 200 {object} models.AssignmentResponseSummary
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /responses/assignment/{assignmentId} [get]
func GetAssignmentResponses(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	summary, err := responses.ByAssignment(principal.InstitutionID, c.Params("assignmentId"), c.QueryBool("history"))
	if err != nil {
		return err
	}
	return c.JSON(summary)
}

// GetUserResponses godoc
// @Summary Responses by a member
// @Tags responses
// @Produce json
// @Param userId path string true "User ID"
// @Param from query string false "Start date (2006-01-02)"
// @Param to query string false "End date (2006-01-02)"
// @Param history query bool false "Return every stored submission"
// @Success 200 {object} models.UserResponseSummary
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /responses/user/{userId} [get]
func GetUserResponses(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	summary, err := responses.ByUser(principal.InstitutionID, c.Params("userId"),
		c.Query("from"), c.Query("to"), c.QueryBool("history"))
	if err != nil {
		return err
	}
	return c.JSON(summary)
}

// GetRecentResponses godoc
// @Summary Latest submissions in the institution
// @Tags responses
// @Produce json
// @Param limit query int false "Row limit, default 20"
// @Success 200 {array} models.ResponseDetail
// @Security BearerAuth
// @Router /responses/recent [get]
func GetRecentResponses(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	list, err := responses.Recent(principal.InstitutionID, c.QueryInt("limit"))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetResponseHistory godoc
// @Summary Full submission history for one question and member
// @Description Every stored row, including same-day duplicates; date narrows to one day
// @Tags responses
// @Produce json
// @Param questionId path string true "Question ID"
// @Param userId path string true "User ID"
// @Param date query string false "Single day (2006-01-02)"
// @Success 200 {array} models.ResponseDetail
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /responses/question/{questionId}/user/{userId}/history [get]
func GetResponseHistory(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	list, err := responses.History(principal.InstitutionID,
		c.Params("questionId"), c.Params("userId"), c.Query("date"))
	if err != nil {
		return err
	}
	return c.JSON(list)
}
