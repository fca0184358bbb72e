package controllers

import (
	"github.com/gofiber/fiber/v2"

	"welfare-center-api/src/models"
	"welfare-center-api/src/services/institutions"
	"welfare-center-api/src/utils"
)

// GetPublicInstitutions godoc
// @Summary List active institutions
// @Description Public list backing the login and signup institution pickers
// @Tags institutions
// @Produce json
// @Success 200 {array} models.Institution
// @Router /institutions [get]
func GetPublicInstitutions(c *fiber.Ctx) error {
	list, err := institutions.ListPublic()
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetInstitutions godoc
// @Summary List all institutions
// @Description All institutions with admin and member counts, system admin only
// @Tags institutions
// @Produce json
// @Success 200 {array} models.InstitutionListItem
// @Security BearerAuth
// @Router /admin/institutions [get]
func GetInstitutions(c *fiber.Ctx) error {
	list, err := institutions.List()
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetInstitutionByID godoc
// @Summary Get institution
// @Tags institutions
// @Produce json
// @Param id path string true "Institution ID"
// @Success 200 {object} models.InstitutionDetail
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/institutions/{id} [get]
func GetInstitutionByID(c *fiber.Ctx) error {
	detail, err := institutions.GetByID(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(detail)
}

// CreateInstitution godoc
// @Summary Create institution
// @Tags institutions
// @Accept json
// @Produce json
// @Param institution body models.InstitutionCreateRequest true "Institution"
// @Success 201 {object} models.Institution
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/institutions [post]
func CreateInstitution(c *fiber.Ctx) error {
	var req models.InstitutionCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	inst, err := institutions.Create(req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(inst)
}

// UpdateInstitution godoc
// @Summary Update institution
// @Tags institutions
// @Accept json
// @Produce json
// @Param id path string true "Institution ID"
// @Param institution body models.InstitutionUpdateRequest true "Fields to update"
// @Success 200 {object} models.Institution
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/institutions/{id} [put]
func UpdateInstitution(c *fiber.Ctx) error {
	var req models.InstitutionUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	inst, err := institutions.Update(c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(inst)
}

// DeleteInstitution godoc
// @Summary Delete institution
// @Description Deactivates the institution; blocked while active admins or members remain
// @Tags institutions
// @Produce json
// @Param id path string true "Institution ID"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/institutions/{id} [delete]
func DeleteInstitution(c *fiber.Ctx) error {
	if err := institutions.Delete(c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "institution deleted"})
}
