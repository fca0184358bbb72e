package controllers

import (
	"github.com/gofiber/fiber/v2"

	"welfare-center-api/src/middleware"
	"welfare-center-api/src/models"
	"welfare-center-api/src/services/users"
	"welfare-center-api/src/utils"
)

// SignupUser godoc
// @Summary Member self-signup
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.UserSignupRequest true "Signup"
// @Success 201 {object} models.User
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/user/signup [post]
func SignupUser(c *fiber.Ctx) error {
	var req models.UserSignupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	user, err := users.Signup(req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// CreateUser godoc
// @Summary Register a member
// @Description Staff creates a member account with a permanent login code
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.UserRegisterRequest true "Member"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users [post]
func CreateUser(c *fiber.Ctx) error {
	var req models.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	principal := middleware.MustPrincipal(c)
	user, tempCode, err := users.Register(principal.InstitutionID, principal.ID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":          user,
		"temporaryCode": tempCode,
	})
}

// GetUsers godoc
// @Summary List members
// @Tags users
// @Produce json
// @Param search query string false "Search by name or username"
// @Param activeOnly query bool false "Only active members"
// @Success 200 {array} models.UserListItem
// @Security BearerAuth
// @Router /users [get]
func GetUsers(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	list, err := users.List(principal.InstitutionID, c.Query("search"), c.QueryBool("activeOnly"))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetUserByID godoc
// @Summary Get member
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func GetUserByID(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	user, err := users.GetByID(principal.InstitutionID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// UpdateUser godoc
// @Summary Update member
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param user body models.UserUpdateRequest true "Fields to update"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [put]
func UpdateUser(c *fiber.Ctx) error {
	var req models.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	principal := middleware.MustPrincipal(c)
	user, err := users.Update(principal.InstitutionID, c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// DeleteUser godoc
// @Summary Deactivate member
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [delete]
func DeleteUser(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	if err := users.Delete(principal.InstitutionID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "user deleted"})
}

// IssueUserLoginCode godoc
// @Summary Issue temporary login code
// @Description One-shot 4-digit code valid for a few minutes
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/login-code [post]
func IssueUserLoginCode(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	code, err := users.IssueTemporaryCode(principal.InstitutionID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"loginCode": code})
}

// GetMyProfile godoc
// @Summary Member profile
// @Tags users
// @Produce json
// @Success 200 {object} models.UserProfileResponse
// @Security BearerAuth
// @Router /user/profile [get]
func GetMyProfile(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	profile, err := users.Profile(principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// UpdateMyProfile godoc
// @Summary Update own profile
// @Description Member-editable fields only; severity and care notes are staff-managed
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.UserUpdateRequest true "Fields to update"
// @Success 200 {object} models.UserProfileResponse
// @Security BearerAuth
// @Router /user/profile [put]
func UpdateMyProfile(c *fiber.Ctx) error {
	var req models.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	principal := middleware.MustPrincipal(c)
	profile, err := users.UpdateSelf(principal.ID, req)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}
