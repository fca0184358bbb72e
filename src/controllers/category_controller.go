package controllers

import (
	"github.com/gofiber/fiber/v2"

	"welfare-center-api/src/middleware"
	"welfare-center-api/src/models"
	"welfare-center-api/src/services/categories"
	"welfare-center-api/src/utils"
)

// CreateCategory godoc
// @Summary Create question category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body models.CategoryRequest true "Category"
// @Success 201 {object} models.Category
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /categories [post]
func CreateCategory(c *fiber.Ctx) error {
	var req models.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	principal := middleware.MustPrincipal(c)
	category, err := categories.Create(principal.InstitutionID, principal.ID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// GetCategories godoc
// @Summary List question categories
// @Tags categories
// @Produce json
// @Success 200 {array} models.Category
// @Security BearerAuth
// @Router /categories [get]
func GetCategories(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	list, err := categories.List(principal.InstitutionID, c.QueryBool("activeOnly"))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetActiveCategories godoc
// @Summary List active question categories
// @Tags categories
// @Produce json
// @Success 200 {array} models.Category
// @Security BearerAuth
// @Router /categories/active [get]
func GetActiveCategories(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	list, err := categories.List(principal.InstitutionID, true)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// UpdateCategory godoc
// @Summary Update question category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param category body models.CategoryRequest true "Category"
// @Success 200 {object} models.Category
// @Security BearerAuth
// @Router /categories/{id} [put]
func UpdateCategory(c *fiber.Ctx) error {
	var req models.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	principal := middleware.MustPrincipal(c)
	category, err := categories.Update(principal.InstitutionID, c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(category)
}

// DeleteCategory godoc
// @Summary Delete question category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /categories/{id} [delete]
func DeleteCategory(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	if err := categories.Delete(principal.InstitutionID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "category deleted"})
}
