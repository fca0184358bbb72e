package controllers

import (
	"github.com/gofiber/fiber/v2"

	"welfare-center-api/src/models"
	"welfare-center-api/src/services/auth"
	"welfare-center-api/src/utils"
)

// SystemAdminLogin godoc
// @Summary System admin login
// @Description Authenticate a platform operator with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.SystemAdminLoginRequest true "Login credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/system-admin/login [post]
func SystemAdminLogin(c *fiber.Ctx) error {
	var req models.SystemAdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	result, err := auth.LoginSystemAdmin(req)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// AdminLogin godoc
// @Summary Admin login
// @Description Authenticate an institution admin or staff member
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.AdminLoginRequest true "Login credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/admin/login [post]
func AdminLogin(c *fiber.Ctx) error {
	var req models.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	result, err := auth.LoginAdmin(req)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// UserLogin godoc
// @Summary Member login
// @Description Authenticate a member with username+password or a temporary login code
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.UserLoginRequest true "Login credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/user/login [post]
func UserLogin(c *fiber.Ctx) error {
	var req models.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	result, err := auth.LoginUser(req)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// RefreshToken godoc
// @Summary Refresh access token
// @Tags auth
// @Accept json
// @Produce json
// @Param token body models.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} models.TokenResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/refresh [post]
func RefreshToken(c *fiber.Ctx) error {
	var req models.RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	result, err := auth.Refresh(req)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// Logout godoc
// @Summary Logout
// @Description Revoke the presented refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param token body models.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func Logout(c *fiber.Ctx) error {
	var req models.RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	if err := auth.Logout(req); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "logged out"})
}
