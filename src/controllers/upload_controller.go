package controllers

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"welfare-center-api/src/middleware"
	"welfare-center-api/src/models"
	"welfare-center-api/src/services/uploads"
	"welfare-center-api/src/utils"
)

// CreateUpload godoc
// @Summary Member upload
// @Description Multipart submission with text content and/or attached files
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param title formData string false "Title"
// @Param content formData string false "Content"
// @Param files formData file false "Attached files"
// @Success 201 {object} models.Upload
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /user/uploads [post]
func CreateUpload(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)

	var headers []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		headers = form.File["files"]
	}

	upload, err := uploads.Create(c, principal.ID, principal.InstitutionID,
		c.FormValue("title"), c.FormValue("content"), headers)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(upload)
}

// GetMyUploads godoc
// @Summary Member's own uploads
// @Tags uploads
// @Produce json
// @Success 200 {array} models.Upload
// @Security BearerAuth
// @Router /user/uploads [get]
func GetMyUploads(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	list, err := uploads.ListByUser(principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetMyUploadByID godoc
// @Summary Get one of the member's uploads
// @Tags uploads
// @Produce json
// @Param id path string true "Upload ID"
// @Success 200 {object} models.Upload
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /user/uploads/{id} [get]
func GetMyUploadByID(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	upload, err := uploads.GetForUser(principal.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(upload)
}

// GetInstitutionUploads godoc
// @Summary Institution upload inbox
// @Tags uploads
// @Produce json
// @Param unreadOnly query bool false "Only unread uploads"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Rows to skip"
// @Success 200 {array} models.UploadListItem
// @Security BearerAuth
// @Router /admin/uploads [get]
func GetInstitutionUploads(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	list, err := uploads.ListForInstitution(principal.InstitutionID,
		c.QueryBool("unreadOnly"), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetInstitutionUploadByID godoc
// @Summary Open an upload
// @Description Opening marks the upload as read
// @Tags uploads
// @Produce json
// @Param id path string true "Upload ID"
// @Success 200 {object} models.Upload
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/uploads/{id} [get]
func GetInstitutionUploadByID(c *fiber.Ctx) error {
	principal := middleware.MustPrincipal(c)
	upload, err := uploads.GetForInstitution(principal.InstitutionID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(upload)
}

// RespondToUpload godoc
// @Summary Reply to an upload
// @Tags uploads
// @Accept json
// @Produce json
// @Param id path string true "Upload ID"
// @Param response body models.AdminResponseRequest true "Reply"
// @Success 200 {object} models.Upload
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/uploads/{id}/response [put]
func RespondToUpload(c *fiber.Ctx) error {
	var req models.AdminResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	principal := middleware.MustPrincipal(c)
	upload, err := uploads.Respond(principal.InstitutionID, c.Params("id"), principal.ID, req)
	if err != nil {
		return err
	}
	return c.JSON(upload)
}

// ServeFile godoc
// @Summary Download an uploaded file
// @Tags uploads
// @Produce octet-stream
// @Param fileId path string true "File ID"
// @Success 200 {file} file
// @Failure 404 {object} models.ErrorResponse
// @Router /files/{fileId} [get]
func ServeFile(c *fiber.Ctx) error {
	file, err := uploads.ResolveFile(c.Params("fileId"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, file.MimeType)
	return c.SendFile(file.FilePath)
}
