package controllers

import (
	"github.com/gofiber/fiber/v2"

	"welfare-center-api/src/middleware"
	"welfare-center-api/src/models"
	"welfare-center-api/src/services/questions"
	"welfare-center-api/src/services/responses"
	"welfare-center-api/src/utils"
)

// CreateQuestion godoc
// @Summary Create question
// @Tags questions
// @Accept json
// @Produce json
// @Param question body models.QuestionRequest true "Question"
// @Success 201 {object} models.Question
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /questions [post]
func CreateQuestion(c *fiber.Ctx) error {
	var req models.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	principal := middleware.MustPrincipal(c)
	question, err := questions.Create(principal.InstitutionID, principal.ID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(question)
}

// GetQuestions godoc
// @Summary List questions
// @Tags questions
// @Produce json
// @Param categoryId query string false "Filter by category"
// @Param activeOnly query bool false "Only active questions"
// @Success 200 {array} models.Question
// @Security BearerAuth
// @Router /questions [get]
func GetQuestions(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	list, err := questions.List(principal.InstitutionID, c.Query("categoryId"), c.QueryBool("activeOnly"))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetActiveQuestions godoc
// @Summary List active questions
// @Tags questions
// @Produce json
// @Success 200 {array} models.Question
// @Security BearerAuth
// @Router /questions/active [get]
func GetActiveQuestions(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	list, err := questions.List(principal.InstitutionID, c.Query("categoryId"), true)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetQuestionsByType godoc
// @Summary List active questions of one type
// @Tags questions
// @Produce json
// @Param questionType path string true "Question type"
// @Success 200 {array} models.Question
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /questions/by-type/{questionType} [get]
func GetQuestionsByType(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	list, err := questions.ByType(principal.InstitutionID, c.Params("questionType"))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetQuestionStatistics godoc
// @Summary Question pool statistics
// @Tags questions
// @Produce json
// @Success 200 {object} models.QuestionStatistics
// @Security BearerAuth
// @Router /questions/statistics [get]
func GetQuestionStatistics(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	stats, err := questions.Statistics(principal.InstitutionID)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// GetQuestionByID godoc
// @Summary Get question
// @Tags questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} models.Question
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /questions/{id} [get]
func GetQuestionByID(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	question, err := questions.GetByID(principal.InstitutionID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(question)
}

// UpdateQuestion godoc
// @Summary Update question
// @Tags questions
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param question body models.QuestionRequest true "Question"
// @Success 200 {object} models.Question
// @Security BearerAuth
// @Router /questions/{id} [put]
func UpdateQuestion(c *fiber.Ctx) error {
	var req models.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	principal := middleware.MustPrincipal(c)
	question, err := questions.Update(principal.InstitutionID, c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(question)
}

// DeleteQuestion godoc
// @Summary Deactivate question
// @Tags questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /questions/{id} [delete]
func DeleteQuestion(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	if err := questions.Delete(principal.InstitutionID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "question deleted"})
}

// GetMyQuestions godoc
// @Summary Member question list
// @Description Assigned questions with today's completion state
// @Tags questions
// @Produce json
// @Success 200 {array} models.UserQuestion
// @Security BearerAuth
// @Router /user/questions [get]
func GetMyQuestions(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	list, err := responses.MyQuestions(principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetMyPendingQuestions godoc
// @Summary Member questions still unanswered today
// @Tags questions
// @Produce json
// @Success 200 {array} models.UserQuestion
// @Security BearerAuth
// @Router /user/questions/pending [get]
func GetMyPendingQuestions(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	list, err := responses.MyPending(principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetMyCompletedQuestions godoc
// @Summary Member questions answered today
// @Tags questions
// @Produce json
// @Success 200 {array} models.UserQuestion
// @Security BearerAuth
// @Router /user/questions/completed [get]
func GetMyCompletedQuestions(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	list, err := responses.MyCompleted(principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetMyQuestionStatistics godoc
// @Summary Member completion progress for today
// @Tags questions
// @Produce json
// @Success 200 {object} models.UserQuestionStatistics
// @Security BearerAuth
// @Router /user/questions/statistics [get]
func GetMyQuestionStatistics(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	stats, err := responses.MyStatistics(principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// GetMyQuestion godoc
// @Summary One assigned question of the member
// @Tags questions
// @Produce json
// @Param assignmentId path string true "Assignment ID"
// @Success 200 {object} models.UserQuestion
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /user/questions/{assignmentId} [get]
func GetMyQuestion(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	item, err := responses.MyQuestion(principal.ID, c.Params("assignmentId"))
	if err != nil {
		return err
	}
	return c.JSON(item)
}
