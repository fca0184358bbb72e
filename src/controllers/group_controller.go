package controllers

import (
	"github.com/gofiber/fiber/v2"

	"welfare-center-api/src/middleware"
	"welfare-center-api/src/models"
	"welfare-center-api/src/services/groups"
	"welfare-center-api/src/utils"
)

// CreateUserGroup godoc
// @Summary Create user group
// @Tags user-groups
// @Accept json
// @Produce json
// @Param group body models.UserGroupRequest true "Group"
// @Success 201 {object} models.UserGroup
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /user-groups [post]
func CreateUserGroup(c *fiber.Ctx) error {
	var req models.UserGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	principal := middleware.MustPrincipal(c)
	group, err := groups.Create(principal.InstitutionID, principal.ID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

// GetUserGroups godoc
// @Summary List user groups
// @Tags user-groups
// @Produce json
// @Success 200 {array} models.UserGroup
// @Security BearerAuth
// @Router /user-groups [get]
func GetUserGroups(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	list, err := groups.List(principal.InstitutionID, c.QueryBool("activeOnly"))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetActiveUserGroups godoc
// @Summary List active user groups
// @Tags user-groups
// @Produce json
// @Success 200 {array} models.UserGroup
// @Security BearerAuth
// @Router /user-groups/active [get]
func GetActiveUserGroups(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	list, err := groups.List(principal.InstitutionID, true)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetUserGroupByID godoc
// @Summary Get user group
// @Tags user-groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} models.UserGroup
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /user-groups/{id} [get]
func GetUserGroupByID(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	group, err := groups.GetByID(principal.InstitutionID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(group)
}

// UpdateUserGroup godoc
// @Summary Update user group
// @Tags user-groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param group body models.UserGroupRequest true "Group"
// @Success 200 {object} models.UserGroup
// @Security BearerAuth
// @Router /user-groups/{id} [put]
func UpdateUserGroup(c *fiber.Ctx) error {
	var req models.UserGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	principal := middleware.MustPrincipal(c)
	group, err := groups.Update(principal.InstitutionID, c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(group)
}

// DeleteUserGroup godoc
// @Summary Delete user group
// @Tags user-groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /user-groups/{id} [delete]
func DeleteUserGroup(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	if err := groups.Delete(principal.InstitutionID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "group deleted"})
}

// AddGroupMembers godoc
// @Summary Add members to a group
// @Tags user-groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param members body models.UserGroupMemberRequest true "User IDs"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /user-groups/{id}/members [post]
func AddGroupMembers(c *fiber.Ctx) error {
	var req models.UserGroupMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	principal := middleware.MustPrincipal(c)
	if err := groups.AddMembers(principal.InstitutionID, c.Params("id"), principal.ID, req); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "members added"})
}

// RemoveGroupMember godoc
// @Summary Remove a member from a group
// @Tags user-groups
// @Produce json
// @Param id path string true "Group ID"
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /user-groups/{id}/members/{userId} [delete]
func RemoveGroupMember(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	if err := groups.RemoveMember(principal.InstitutionID, c.Params("id"), c.Params("userId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "member removed"})
}

// GetGroupMembers godoc
// @Summary List group members
// @Tags user-groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {array} models.UserGroupMemberView
// @Security BearerAuth
// @Router /user-groups/{id}/members [get]
func GetGroupMembers(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	members, err := groups.ListMembers(principal.InstitutionID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(members)
}
