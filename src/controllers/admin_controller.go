package controllers

import (
	"github.com/gofiber/fiber/v2"

	"welfare-center-api/src/middleware"
	"welfare-center-api/src/models"
	"welfare-center-api/src/services/admins"
	"welfare-center-api/src/utils"
)

// RegisterAdmin godoc
// @Summary Register admin account
// @Description Public registration; the account stays pending until a system admin approves it
// @Tags admins
// @Accept json
// @Produce json
// @Param admin body models.AdminRegisterRequest true "Registration"
// @Success 201 {object} models.Admin
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/admin/register [post]
func RegisterAdmin(c *fiber.Ctx) error {
	var req models.AdminRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	admin, err := admins.Register(req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(admin)
}

// GetAdmins godoc
// @Summary List admin accounts
// @Tags admins
// @Produce json
// @Param status query string false "Filter by status"
// @Param institutionId query string false "Filter by institution"
// @Success 200 {array} models.AdminListItem
// @Security BearerAuth
// @Router /admin [get]
func GetAdmins(c *fiber.Ctx) error {
	list, err := admins.List(c.Query("status"), c.Query("institutionId"))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetPendingAdmins godoc
// @Summary List pending admin registrations
// @Tags admins
// @Produce json
// @Success 200 {array} models.AdminListItem
// @Security BearerAuth
// @Router /admin/pending [get]
func GetPendingAdmins(c *fiber.Ctx) error {
	list, err := admins.List(models.StatusPending, c.Query("institutionId"))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// ApproveAdmin godoc
// @Summary Approve or reject a pending admin
// @Tags admins
// @Accept json
// @Produce json
// @Param adminId path string true "Admin ID"
// @Param decision body models.AdminApprovalRequest true "Approval decision"
// @Success 200 {object} models.Admin
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/approve/{adminId} [put]
func ApproveAdmin(c *fiber.Ctx) error {
	var req models.AdminApprovalRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	principal := middleware.MustPrincipal(c)
	admin, err := admins.Approve(c.Params("adminId"), principal.ID, req)
	if err != nil {
		return err
	}
	return c.JSON(admin)
}

// ChangeAdminStatus godoc
// @Summary Suspend or reinstate an admin
// @Tags admins
// @Accept json
// @Produce json
// @Param adminId path string true "Admin ID"
// @Param status body models.AdminStatusChangeRequest true "Target status"
// @Success 200 {object} models.Admin
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/{adminId}/status [put]
func ChangeAdminStatus(c *fiber.Ctx) error {
	var req models.AdminStatusChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	admin, err := admins.ChangeStatus(c.Params("adminId"), req)
	if err != nil {
		return err
	}
	return c.JSON(admin)
}
